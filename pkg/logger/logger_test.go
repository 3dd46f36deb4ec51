package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := New("production", "warn")
	require.NoError(t, err)
	require.NotNil(t, l)
	require.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))

	l, err = New("development", "debug")
	require.NoError(t, err)
	require.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("development", "loud")
	require.ErrorContains(t, err, "LOG_LEVEL")
}
