package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Sink(t *testing.T) {
	sink := filepath.Join(t.TempDir(), "library.log")
	log := NewLogger(Log{LogLevel: zapcore.InfoLevel, Sink: sink}, "library")

	log.Debug("hidden")
	log.Named("repo").Info("visible")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(sink)
	require.NoError(t, err)
	require.NotContains(t, string(data), "hidden")
	require.Contains(t, string(data), `"logger":"library.repo"`)
	require.Contains(t, string(data), `"msg":"visible"`)
}
