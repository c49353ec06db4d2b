package logio

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var out strings.Builder
	log := NewLogger(&out)

	log.Printf("INFO", "hello %v", "world")
	log.Leveledf("TRACE")("no args %v")
	log.Printf("", "bare\n")
	assert.Equal(t, 0, log.ExitCode())

	log.ErrorIf(nil)
	assert.Equal(t, 0, log.ExitCode())
	log.ErrorIf(errors.New("boom"))
	assert.Equal(t, 1, log.ExitCode())

	assert.Equal(t, strings.Join([]string{
		"INFO: hello world",
		"TRACE: no args %v",
		"bare",
		"ERROR: boom",
		"",
	}, "\n"), out.String())
}

func TestWriter(t *testing.T) {
	var lines []string
	lw := Writer{Logf: func(mess string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(mess, args...))
	}}
	fmt.Fprintf(&lw, "one\ntw")
	assert.Equal(t, []string{"one"}, lines)
	fmt.Fprintf(&lw, "o\nthree")
	assert.Equal(t, []string{"one", "two"}, lines)
	assert.NoError(t, lw.Flush())
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}
