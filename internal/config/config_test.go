package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, "Jennifer Chen", cfg.Caregiver.Name)
	assert.Equal(t, "Margaret Chen", cfg.Patient.Name)
	assert.Equal(t, "q", cfg.Keys.Quit)

	_, err = os.Stat(path)
	assert.NoError(t, err, "defaults must be written on first run")
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	body := `
data_dir = "/tmp/care-test"
storage_backend = "sqlite"

[caregiver]
name = "Sam Park"
role = "Night Caregiver"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/care-test", cfg.DataDir)
	assert.Equal(t, "sqlite", cfg.StorageBackend)
	assert.Equal(t, "Sam Park", cfg.Caregiver.Name)
}

func TestLoadOrCreateFillsBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`storage_backend = ""`), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.Caregiver.Name)
}

func TestLoadOrCreateBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`data_dir = [`), 0o644))

	_, err := LoadOrCreate(path)
	assert.Error(t, err)
}
