package platform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		docDir  string
		uri     string
		want    string
		wantErr bool
	}{
		{"root", "file:///data/files/", "file:///data/files/", "", false},
		{"root without slash", "file:///data/files/", "file:///data/files", "", false},
		{"nested", "file:///data/files/", "file:///data/files/repo/.git/HEAD", "repo/.git/HEAD", false},
		{"double slash", "file:///data/files/", "file:///data/files//repo", "repo", false},
		{"dot dot inside", "file:///data/files/", "file:///data/files/a/../b", "b", false},
		{"escape", "file:///data/files/", "file:///data/files/../secret", "", true},
		{"sibling prefix", "file:///data/files/", "file:///data/filesystem/x", "", true},
		{"other scheme", "file:///data/files/", "s3://data/files/x", "", true},
		{"s3 bucket", "s3://bucket/prefix/", "s3://bucket/prefix/repo/config", "repo/config", false},
		{"s3 other bucket", "s3://bucket/prefix/", "s3://other/prefix/repo", "", true},
		{"bucket root", "s3://bucket/", "s3://bucket/a", "a", false},
		{"bare authority", "s3://bucket/", "s3://bucket", "", false},
		{"not a uri", "file:///data/", "/data/x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.docDir, tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsCode(err, ErrInvalidURI))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "file:///docs/a/b", Join("file:///docs/", "a", "b"))
	assert.Equal(t, "file:///docs/a", Join("file:///docs", "a"))
	assert.Equal(t, "file:///docs/", Join("file:///docs/"))
	assert.Equal(t, "file:///docs/a", Join("file:///docs/", "/a/"))
}

func TestEncode(t *testing.T) {
	data := []byte("hello world")

	s, err := Encode(data, ReadOptions{Encoding: EncodingUTF8})
	require.NoError(t, err)
	assert.Equal(t, "hello world", s)

	s, err = Encode(data, ReadOptions{Encoding: EncodingBase64})
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8gd29ybGQ=", s)

	s, err = Encode(data, ReadOptions{Encoding: EncodingBase64, Position: 6, Length: 5})
	require.NoError(t, err)
	assert.Equal(t, "d29ybGQ=", s)

	s, err = Encode(data, ReadOptions{Encoding: EncodingBase64, Position: 6, Length: math.MaxInt64})
	require.NoError(t, err)
	assert.Equal(t, "d29ybGQ=", s)

	s, err = Encode([]byte("hello"), ReadOptions{Encoding: EncodingBase64, Position: 1, Length: math.MaxInt64})
	require.NoError(t, err)
	assert.Equal(t, "ZWxsbw==", s)

	s, err = Encode(data, ReadOptions{Encoding: EncodingBase64, Position: 100})
	require.NoError(t, err)
	assert.Equal(t, "", s)

	_, err = Encode(data, ReadOptions{Encoding: "latin1"})
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	b, err := Decode("aGk=", EncodingBase64)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), b)

	b, err = Decode("hi", EncodingUTF8)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), b)

	_, err = Decode("!!", EncodingBase64)
	require.Error(t, err)
}

func TestError(t *testing.T) {
	err := NewError(ErrNotFound, "file:///docs/a", "no such entry")
	assert.Equal(t, "ERR_FILESYSTEM_NOT_FOUND: no such entry (file:///docs/a)", err.Error())

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrNotFound, code)

	_, ok = CodeOf(assert.AnError)
	assert.False(t, ok)

	assert.Nil(t, WrapError(nil, ErrCannotRead, "u", "m"))
	wrapped := WrapError(assert.AnError, ErrCannotRead, "u", "read failed")
	assert.ErrorIs(t, wrapped, assert.AnError)
	assert.True(t, IsCode(wrapped, ErrCannotRead))
}
