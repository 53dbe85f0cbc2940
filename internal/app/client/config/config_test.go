package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("TOKEN_PATH", "")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.Equal(t, filepath.Join(dir, "token"), cfg.TokenPath)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server_address: calc.example:443\nenable_tls: true\ntimeout: 5s\n"), 0600))

	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("TOKEN_PATH", filepath.Join(dir, "custom-token"))

	cfg, err := Load(viper.New(), file)
	require.NoError(t, err)

	assert.Equal(t, "https://calc.example:443", cfg.BaseURL())
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, filepath.Join(dir, "custom-token"), cfg.TokenPath)

	t.Setenv("SERVER_ADDRESS", "other:9000")
	cfg, err = Load(viper.New(), file)
	require.NoError(t, err)
	assert.Equal(t, "https://other:9000", cfg.BaseURL())
}

func TestLoad_BrokenFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server_address: [unclosed"), 0600))
	t.Setenv("CONFIG_DIR", t.TempDir())

	_, err := Load(viper.New(), file)
	assert.Error(t, err)
}

func TestConfig_BaseURLWithScheme(t *testing.T) {
	cfg := &Config{ServerAddress: "http://127.0.0.1:1234", EnableTLS: true}
	assert.Equal(t, "http://127.0.0.1:1234", cfg.BaseURL())
}
