package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{input: "error", want: LogLevelError},
		{input: "warn", want: LogLevelWarn},
		{input: "info", want: LogLevelInfo},
		{input: "debug", want: LogLevelDebug},
		{input: "trace", want: LogLevelTrace},
		{input: "verbose", want: LogLevelError, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input, got.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "", 0, LogLevelInfo)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.Info("shown %d", 1)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "shown 1", entry["msg"])
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "", 0, LogLevelDebug).With(Fields{"session": "abc"})

	logger.Warn("careful")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "abc", entry["session"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, LogLevelDebug, logger.Level())
}

func TestLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "", 0, LogLevelInfo)
	child := parent.With(Fields{"session": "abc"})

	child.Debug("hidden")
	assert.Empty(t, buf.String())

	parent.SetLevel(LogLevelDebug)
	assert.Equal(t, LogLevelDebug, child.Level())
	child.Debug("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
