package logger

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	oldStdout := os.Stdout

	r, w, _ := os.Pipe()
	os.Stdout = w

	outputChan := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outputChan <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = oldStdout

	return <-outputChan
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	assert.NotNil(t, logger)
	assert.IsType(t, &zerologLogger{}, logger)
}

func TestLevels(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	tests := []struct {
		name  string
		log   func(l Logger)
		msg   string
		level string
	}{
		{"debug", func(l Logger) { l.Debug("debug message") }, "debug message", "debug"},
		{"info", func(l Logger) { l.Info("info message") }, "info message", "info"},
		{"warn", func(l Logger) { l.Warn("warn message") }, "warn message", "warn"},
		{"error", func(l Logger) { l.Error("error message") }, "error message", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(func() {
				tt.log(NewLoggerWithLevel("debug"))
			})
			assert.Contains(t, output, tt.msg)
			assert.Contains(t, output, `"level":"`+tt.level+`"`)
		})
	}
}

func TestNewLoggerWithLevel(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	t.Run("filters below configured level", func(t *testing.T) {
		output := captureOutput(func() {
			logger := NewLoggerWithLevel("warn")
			logger.Info("hidden")
			logger.Warn("shown")
		})
		assert.NotContains(t, output, "hidden")
		assert.Contains(t, output, "shown")
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		output := captureOutput(func() {
			logger := NewLoggerWithLevel("verbose")
			logger.Debug("hidden")
			logger.Info("shown")
		})
		assert.NotContains(t, output, "hidden")
		assert.Contains(t, output, "shown")
	})
}

func TestWithFields(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	output := captureOutput(func() {
		base := NewLogger()
		base.WithField("block_id", "b1").Info("with field")
		base.WithFields(map[string]interface{}{
			"channel": "email",
			"theme":   "dark",
		}).Info("with fields")
		base.Info("plain")
	})

	assert.Contains(t, output, `"block_id":"b1"`)
	assert.Contains(t, output, `"channel":"email"`)
	assert.Contains(t, output, `"theme":"dark"`)
	assert.Contains(t, output, `"message":"plain"`)
}

func TestNewLoggerWithOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithOutput(&buf, "warn")

	l.Info("hidden")
	l.WithField("block_id", "b1").Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"block_id":"b1"`)
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNewConsoleLogger(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, "info", false)
	l.Debug("hidden")
	l.WithField("channel", "in-app").Info("rendered")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "rendered")
	assert.Contains(t, out, "channel=in-app")
	assert.NotContains(t, out, "{", "console output is not JSON")
}
