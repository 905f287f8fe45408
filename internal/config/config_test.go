package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 10, cfg.UploadMax)
}

func TestParse_FileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopadmin.yaml")
	yaml := "listen: \":9000\"\napi_url: http://file.test/\nupload_max_files: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("SHOPADMIN_DB_DSN", ":memory:")

	cfg, err := Parse([]string{"--config", path, "--listen", ":9100"})
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Listen)
	assert.Equal(t, "http://file.test", cfg.APIURL)
	assert.Equal(t, ":memory:", cfg.DBDSN)
	assert.Equal(t, 4, cfg.UploadMax)
}

func TestParse_EmptySecretRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopadmin.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session_secret: \"\"\n"), 0o600))

	_, err := Parse([]string{"--config", path})
	require.Error(t, err)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
}
