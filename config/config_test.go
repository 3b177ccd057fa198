package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeJSON(t, dir, `{
		"buffer_size": 4096,
		"threshold": 65536,
		"linear_growth": 4096,
		"flush_log": 1,
		"backup_addr": "127.0.0.1",
		"backup_port": 9000,
		"thread_count": 4
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.EqualValues(t, 4096, cfg.BufferSize)
	assert.EqualValues(t, 9000, cfg.BackupPort)
	assert.Equal(t, 4, cfg.ThreadCount)
}

func TestLoad_MissingKeysReportedTogether(t *testing.T) {
	dir := t.TempDir()
	path := writeJSON(t, dir, `{"buffer_size": 4096, "threshold": 65536}`)

	_, err := Load(path)
	require.Error(t, err)
	for _, key := range []string{"linear_growth", "flush_log", "backup_addr", "backup_port", "thread_count"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := writeJSON(t, dir, `{
		"buffer_size": 0,
		"threshold": 65536,
		"linear_growth": 4096,
		"flush_log": 9,
		"backup_addr": "",
		"backup_port": 9000,
		"thread_count": 0
	}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buffer_size")
	assert.Contains(t, err.Error(), "flush_log")
	assert.Contains(t, err.Error(), "backup_addr")
	assert.Contains(t, err.Error(), "thread_count")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.json"))
	assert.Error(t, err)
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().validate())
}

func TestLoadErgonomic_FallsBackToDefaultOnMissingFile(t *testing.T) {
	cfg, err := LoadErgonomic(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().BufferSize, cfg.BufferSize)
}
