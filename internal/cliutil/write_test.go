package cliutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d diagnostics", "NASAImpl.go", 2)
	assert.Equal(t, "NASAImpl.go: 2 diagnostics", buf.String())
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	WriteLines(&buf, "  ", []string{"local", "production"})
	assert.Equal(t, "  local\n  production\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWritef_WriteError(t *testing.T) {
	assert.NotPanics(t, func() { Writef(failingWriter{}, "lost") })
}
