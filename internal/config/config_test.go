package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobi/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_PORT", "GIN_MODE", "MAX_UPLOAD_MB", "DATA_FILE", "EXPORT_DIR", "PREVIEW_ROWS", "OUTLIER_Z", "TOP_N", "METRICS_ENABLED", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "8081", cfg.Server.APIPort)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, int64(50<<20), cfg.MaxUploadBytes())
	assert.Equal(t, os.TempDir(), cfg.Data.ExportDir)
	assert.Equal(t, 5, cfg.Data.PreviewRows)
	assert.Equal(t, 2.5, cfg.Insights.OutlierZ)
	assert.Equal(t, 5, cfg.Insights.TopN)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("OUTLIER_Z", "3")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, 3.0, cfg.Insights.OutlierZ)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		message string
	}{
		{"gin mode", "GIN_MODE", "loud", "GinMode must be one of: debug, release, test"},
		{"preview rows", "PREVIEW_ROWS", "50", "PreviewRows must be at most 20"},
		{"port", "PORT", "http", "Port must be a number"},
		{"outlier z", "OUTLIER_Z", "-1", "OutlierZ must be greater than 0"},
		{"log level", "LOG_LEVEL", "chatty", "LogLevel must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
