package output

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

// captureOutput captures styled output during test execution
func captureOutput(t *testing.T, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	SetWriter(&buf)
	t.Cleanup(func() { SetWriter(nil) })

	f()
	return buf.String()
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string)
		emoji string
	}{
		{"success", Success, "🔥"},
		{"error", Error, "❌"},
		{"warn", Warn, "⚠️"},
		{"info", Info, "ℹ️"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := captureOutput(t, func() { tt.fn("Test message") })
			assert.Contains(t, got, tt.emoji)
			assert.Contains(t, got, "Test message")
		})
	}
}

func TestStep(t *testing.T) {
	got := captureOutput(t, func() { Step("cd widget") })
	assert.Contains(t, got, "   cd widget")
}

func TestSetWriter_NilRestoresStdout(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	assert.Same(t, &buf, Writer())

	SetWriter(nil)
	assert.NotSame(t, &buf, Writer())
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() { SetupLogging(false) })

	SetupLogging(false)
	assert.Equal(t, log.InfoLevel, Logger.GetLevel())

	SetupLogging(true)
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())
}

func TestDebug_WritesOnlyWhenVerbose(t *testing.T) {
	old := Logger
	t.Cleanup(func() { Logger = old })

	var buf bytes.Buffer
	Logger = newLogger(&buf, false)
	Debug("hidden", "key", "value")
	assert.Empty(t, buf.String())

	Logger = newLogger(&buf, true)
	Debug("shown", "key", "value")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")
}
