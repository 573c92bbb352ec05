package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobi/app"
	"gobi/internal/config"
	"gobi/internal/errors"
	"gobi/internal/testkit"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Data:     config.DataConfig{ExportDir: t.TempDir(), PreviewRows: 5},
		Insights: config.InsightsConfig{OutlierZ: 2.5, TopN: 5},
		Metrics:  config.MetricsConfig{Enabled: true},
	}
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	cfg := testConfig(t)
	c, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, c.Metrics)
	assert.Same(t, c.Session, c.Explorer.Session())
	assert.Equal(t, cfg.Data.ExportDir, c.Exporter.Dir())

	cfg.Metrics.Enabled = false
	c, err = New(cfg)
	require.NoError(t, err)
	assert.Nil(t, c.Metrics)
}

func TestPreload(t *testing.T) {
	cfg := testConfig(t)
	c, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, c.Preload(context.Background()))
	assert.Nil(t, c.Session.Current())

	cfg.Data.File = testkit.TempCSV(t, "sales.csv", [][]string{{"a", "b"}, {"1", "x"}, {"2", "y"}})
	c, err = New(cfg)
	require.NoError(t, err)
	require.NoError(t, c.Preload(context.Background()))
	assert.Equal(t, 2, c.Session.Current().NumRows())

	cfg.Data.File = filepath.Join(t.TempDir(), "sales.txt")
	c, err = New(cfg)
	require.NoError(t, err)
	err = c.Preload(context.Background())
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(err))
}

func TestShutdownRemovesLastExport(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.File = testkit.TempCSV(t, "sales.csv", [][]string{{"a"}, {"1"}})
	c, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, c.Preload(context.Background()))

	c.Explorer.ApplyFilter(app.FilterRequest{Column: "a"})
	path, err := c.Explorer.DownloadFiltered(context.Background())
	require.NoError(t, err)
	require.FileExists(t, path)

	require.NoError(t, c.Shutdown(context.Background()))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
