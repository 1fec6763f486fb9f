package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	cause := stderrors.New("original error")
	err := Wrap(cause, CodeIO, "/repo/index")

	require.NotNil(t, err)
	require.Equal(t, CodeIO, err.Code())
	require.Equal(t, "/repo/index", err.Message())
	require.Equal(t, cause, err.Unwrap())
}

func TestWrap_NilError(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeNotExist, "test"))
	require.Nil(t, Wrapf(nil, CodeNotExist, "test %s", "arg"))
	require.Nil(t, WrapWithContext(nil, CodeNotExist, "test", nil))
}

func TestWrap_PreservesClassification(t *testing.T) {
	original := New(CodeTimedOut, "deadline")
	require.True(t, original.Classification().IsRetryable())

	wrapped := Wrap(original, CodeNotExist, "/repo")
	require.True(t, wrapped.Classification().IsRetryable())

	permanent := New(CodeNotExist, "/repo")
	wrapped = Wrap(permanent, CodeIO, "/repo")
	require.False(t, wrapped.Classification().IsRetryable())
}

func TestWrap_KeepsCauseChain(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}
	err := Wrap(cause, CodeIO, "x")

	var pathErr *fs.PathError
	require.True(t, stderrors.As(err, &pathErr))
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
}

func TestWrapf(t *testing.T) {
	err := Wrapf(stderrors.New("refused"), CodeIO, "move %s -> %s", "/a", "/b")
	require.Equal(t, "move /a -> /b", err.Message())
}

func TestWrapWithContext(t *testing.T) {
	ctx := map[string]interface{}{"op": "unlink", "uri": "file:///docs/a"}
	err := WrapWithContext(stderrors.New("gone"), CodeNotExist, "/a", ctx)

	ctx["op"] = "mutated"
	assert.Equal(t, "unlink", err.Context()["op"])
	assert.Equal(t, "file:///docs/a", err.Context()["uri"])
}

func TestWithContextMap_ConvertsPlainErrors(t *testing.T) {
	plain := stderrors.New("plain")
	err := WithContextMap(plain, map[string]interface{}{"a": 1})

	assert.Equal(t, CodeUnknown, err.Code())
	assert.Equal(t, "plain", err.Message())
	assert.Equal(t, plain, err.Unwrap())
	assert.Equal(t, 1, err.Context()["a"])
}

func TestWithContextMap_Overrides(t *testing.T) {
	err := WithContext(New(CodeNotExist, "/a"), "op", "stat")
	err = WithContextMap(err, map[string]interface{}{"op": "lstat", "uri": "u"})

	assert.Equal(t, map[string]interface{}{"op": "lstat", "uri": "u"}, err.Context())
	assert.Equal(t, CodeNotExist, err.Code())
}

func TestWithClassification(t *testing.T) {
	err := WithClassification(New(CodeIO, "x"), ClassificationPermanent)
	assert.False(t, err.Classification().IsRetryable())
	assert.Nil(t, WithClassification(nil, ClassificationRetryable))
}
