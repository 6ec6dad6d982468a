package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelError, levelFromString("ERROR"))
	assert.Equal(t, slog.LevelWarn, levelFromString(" warning "))
	assert.Equal(t, slog.LevelDebug, levelFromString("debug"))
	assert.Equal(t, slog.LevelInfo, levelFromString(""))
}

func TestComponentLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := Component(NewWithWriter(&buf, "info"), "pipeline")
	logger.Debug("hidden")
	logger.Info("run finished", "groups", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "component=pipeline")
	assert.Contains(t, out, "groups=3")

	Component(nil, "noop").Info("dropped")
}
