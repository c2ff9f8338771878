package config

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) string {
	t.Helper()
	k := make([]byte, 32)
	_, err := rand.Read(k)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(k)
}

func TestLoadDefaultsFromEnvOnly(t *testing.T) {
	t.Setenv("SAFARA_MASTER_KEY", testKey(t))

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":8080", c.Server.Addr)
	require.Equal(t, "memory", c.Storage.Driver)
	require.Equal(t, "memory", c.Cache.Kind)
	require.Equal(t, "tesseract", c.OCR.Binary)

	key, err := c.MasterKey()
	require.NoError(t, err)
	require.Len(t, key, 32)
}

func TestLoadRejectsMissingMasterKey(t *testing.T) {
	t.Setenv("SAFARA_MASTER_KEY", "")
	_, err := Load("")
	require.Error(t, err)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	t.Setenv("SAFARA_MASTER_KEY", testKey(t))
	t.Setenv("SERVER_ADDR", ":9999")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  addr: ":8081"
storage:
  driver: memory
content:
  dir: blobs
rate:
  enabled: true
  upload:
    limit: 3
    window: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9999", c.Server.Addr, "env wins over yaml")
	require.True(t, c.Rate.Enabled)
	require.Equal(t, 3, c.Rate.Upload.Limit)
	require.Equal(t, filepath.Join(dir, "blobs"), c.Content.Dir)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("SAFARA_MASTER_KEY", testKey(t))
	t.Setenv("STORAGE_DRIVER", "cassandra")
	_, err := Load("")
	require.Error(t, err)
}
