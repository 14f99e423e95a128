package clog

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func recordingLogger(buf *bytes.Buffer) zerolog.Logger {
	return zerolog.New(buf)
}

func TestClogDisabledByDefault(t *testing.T) {
	var buf bytes.Buffer
	c := NewLogger("test")
	c.SetOutput(recordingLogger(&buf))

	c.Error("boom")
	assert.Empty(t, buf.String(), "log output must stay suppressed until LogMode(true)")
}

func TestClogEnabledRoutesToOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewLogger("test")
	c.SetOutput(recordingLogger(&buf))
	c.LogMode(true)

	c.Warn("low battery")
	assert.Contains(t, buf.String(), "low battery")
	assert.Contains(t, buf.String(), `"level":"warn"`)

	buf.Reset()
	c.LogMode(false)
	c.Debug("ignored")
	assert.Empty(t, buf.String())
}

func TestClogSetOutputPreservesLevel(t *testing.T) {
	var buf bytes.Buffer
	c := NewLogger("test")
	c.LogMode(true)
	c.SetOutput(recordingLogger(&buf))

	c.Critical("still routed after the swap")
	assert.Contains(t, buf.String(), "[C]: still routed after the swap")
	assert.Contains(t, buf.String(), `"level":"error"`)
}
