package procmock

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_WriteAndInspect(t *testing.T) {
	s := newStream("stdout")
	assert.Equal(t, "stdout", s.Name())

	n, err := s.WriteString("hello ")
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = s.Write([]byte("world"))
	require.NoError(t, err)

	assert.Equal(t, "hello world", s.String())
	assert.Equal(t, []byte("hello world"), s.Contents())
}

func TestStream_WriteAfterClose(t *testing.T) {
	s := newStream("stderr")
	require.NoError(t, s.Close())

	_, err := s.WriteString("late")
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Empty(t, s.String())
}

func TestStream_CloseIdempotent(t *testing.T) {
	s := newStream("stdin")
	assert.False(t, s.Closed())

	require.NoError(t, s.End())
	require.NoError(t, s.Close())
	assert.True(t, s.Closed())
}

func TestStream_ContentsIsACopy(t *testing.T) {
	s := newStream("stdout")
	_, _ = s.WriteString("abc")

	c := s.Contents()
	c[0] = 'x'
	assert.Equal(t, "abc", s.String())
}
