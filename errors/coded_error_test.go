package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodedError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"code and message", New(CodeNotExist, "/repo/HEAD"), "ENOENT: /repo/HEAD"},
		{"code only", New(CodeExist, ""), "EEXIST"},
		{"with cause", Wrap(stderrors.New("bucket offline"), CodeIO, "/repo"), "EIO: /repo: bucket offline"},
		{"formatted", Newf(CodeInvalid, "unsupported encoding %q", "latin1"), `EINVAL: unsupported encoding "latin1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestCodedError_IsSentinel(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		target error
	}{
		{CodeNotExist, fs.ErrNotExist},
		{CodeExist, fs.ErrExist},
		{CodeInvalid, fs.ErrInvalid},
		{CodeNotSupported, stderrors.ErrUnsupported},
		{CodePermission, fs.ErrPermission},
		{CodeTimedOut, context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New(tt.code, "x")
			assert.True(t, stderrors.Is(err, tt.target))
			assert.Equal(t, tt.target, Sentinel(tt.code))

			// Survives fmt wrapping too.
			wrapped := fmt.Errorf("outer: %w", err)
			assert.True(t, stderrors.Is(wrapped, tt.target))
		})
	}

	assert.False(t, stderrors.Is(New(CodeNotEmpty, "x"), fs.ErrNotExist))
	assert.Nil(t, Sentinel(CodeNotDir))
}

func TestCodedError_Classification(t *testing.T) {
	tests := []struct {
		code          ErrorCode
		wantRetryable bool
	}{
		{CodeTimedOut, true},
		{CodeIO, true},
		{CodeNotExist, false},
		{CodeNotSupported, false},
		{CodeConflict, false},
		{ErrorCode("ESOMETHING"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New(tt.code, "test")
			require.Equal(t, tt.wantRetryable, err.Classification().IsRetryable())
		})
	}
}

func TestCodedError_ContextIsCopied(t *testing.T) {
	err := WithContext(New(CodeNotExist, "/a"), "op", "stat")

	ctx := err.Context()
	ctx["op"] = "mutated"

	assert.Equal(t, "stat", err.Context()["op"])
	assert.Nil(t, New(CodeNotExist, "/a").Context())
}

func TestHelpers(t *testing.T) {
	err := fmt.Errorf("context: %w", New(CodeNotEmpty, "/dir"))

	assert.Equal(t, CodeNotEmpty, GetCode(err))
	assert.True(t, HasCode(err, CodeNotEmpty))
	assert.False(t, HasCode(nil, CodeNotEmpty))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, CodeUnknown, GetCode(nil))
	assert.Equal(t, ClassificationPermanent, GetClassification(nil))
	assert.False(t, IsRetryable(stderrors.New("plain")))
	assert.True(t, IsRetryable(New(CodeTimedOut, "slow")))

	var coded CodedError
	require.True(t, As(err, &coded))
	assert.Equal(t, "/dir", coded.Message())
}
