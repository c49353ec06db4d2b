package flushio

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriteFlusher(t *testing.T) {
	var buf bytes.Buffer
	assert.IsType(t, nopFlusher{}, NewWriteFlusher(&buf))
	assert.IsType(t, nopFlusher{}, NewWriteFlusher(&strings.Builder{}))
	assert.IsType(t, nopFlusher{}, NewWriteFlusher(io.Discard))
	assert.IsType(t, &bufio.Writer{}, NewWriteFlusher(os.Stderr))

	bw := bufio.NewWriter(&buf)
	assert.Same(t, bw, NewWriteFlusher(bw))
}

func TestWriteFlushers(t *testing.T) {
	assert.Nil(t, WriteFlushers())
	assert.Nil(t, WriteFlushers(nil, nil))

	var a, b bytes.Buffer
	one := NewWriteFlusher(&a)
	assert.Equal(t, one, WriteFlushers(nil, one))

	bw := bufio.NewWriter(&b)
	both := WriteFlushers(WriteFlushers(one), bw)
	_, err := io.WriteString(both, "hello\n")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", a.String())
	assert.Equal(t, "", b.String(), "expected buffered until flush")

	require.NoError(t, both.Flush())
	assert.Equal(t, "hello\n", b.String())
}
