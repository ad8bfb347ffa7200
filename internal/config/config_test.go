package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, "file", c.Store.Backend)
	assert.Equal(t, ".virtualide", c.Store.Dir)
	assert.Equal(t, 30*time.Second, c.Store.LockTTL)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "stdio", c.MCP.Transport)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
log:
  level: debug
store:
  backend: redis
  redis:
    prefix: "course:"
    ttl: 1h
server:
  addr: ":9000"
`), 0o644))

	t.Setenv("VIRTUALIDE_STORE_REDIS_URL", "redis://cache:6379/2")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("addr", ":8080", "")
	require.NoError(t, fs.Parse([]string{"--addr", ":7000"}))

	v := New()
	require.NoError(t, Bind(v, fs, map[string]string{
		"server.addr": "addr",
		"log.level":   "log-level", // not defined on fs, skipped
	}))

	c, err := Load(v, cfgFile)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "redis", c.Store.Backend)
	assert.Equal(t, "course:", c.Store.Redis.Prefix)
	assert.Equal(t, time.Hour, c.Store.Redis.TTL)
	assert.Equal(t, "redis://cache:6379/2", c.Store.Redis.URL)
	assert.Equal(t, ":7000", c.Server.Addr, "flags win over the config file")
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(New(), "missing.yaml")
	assert.Error(t, err, "an explicit config file must exist")

	t.Setenv("VIRTUALIDE_STORE_BACKEND", "s3")
	_, err = Load(New(), "")
	assert.ErrorContains(t, err, "invalid store backend")
}
