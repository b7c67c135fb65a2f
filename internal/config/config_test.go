package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
storage:
  type: minio
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "2020-01-01", cfg.Period.Epoch)
	assert.Equal(t, 6, cfg.Period.LengthMonths)
	assert.Equal(t, 12, cfg.Period.HorizonMonths)
	assert.Equal(t, 8, cfg.Catalog.OptionLookupConcurrency)
	assert.Equal(t, 30*time.Second, cfg.Submission.LockTTL())
}

func TestLoadConfigReadsPeriodSection(t *testing.T) {
	dir := writeConfig(t, `
storage:
  type: minio
period:
  epoch: "2018-09-01"
  length_months: 4
  horizon_months: 8
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "2018-09-01", cfg.Period.Epoch)
	assert.Equal(t, 4, cfg.Period.LengthMonths)
	assert.Equal(t, 8, cfg.Period.HorizonMonths)
}

func TestLoadConfigRejectsBadPeriod(t *testing.T) {
	dir := writeConfig(t, `
storage:
  type: minio
period:
  epoch: "01/01/2020"
`)
	_, err := LoadConfig(dir)
	assert.Error(t, err)

	dir = writeConfig(t, `
storage:
  type: minio
period:
  length_months: 0
`)
	_, err = LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
