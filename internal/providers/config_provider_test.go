package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsd/internal/structures"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfigProvider_LoadsYaml(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	path := writeConfigFile(t, `webServer:
  host: localhost
  port: 8081
snapshot:
  dir: `+dir+`
  saveInterval: 300s
  retentionDays: 35
logger:
  level: info
  mode: 420
  dir: `+dir+`
cache:
  enabled: true
  size: 16
`)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "BotStatisticDaemon", conf.AppName)
	assert.Equal(t, path, conf.Path)
	assert.True(t, conf.Debug)
	assert.Equal(t, 8081, conf.WebServer.Port)
	assert.Equal(t, dir, conf.Snapshot.Dir)
	assert.Equal(t, 300*time.Second, conf.Snapshot.SaveInterval)
	assert.Equal(t, 35, conf.Snapshot.RetentionDays)
	assert.Equal(t, 16, conf.Cache.Size)
}

func TestConfigProvider_AnalyticsDefaults(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	path := writeConfigFile(t, `webServer:
  host: localhost
  port: 8081
snapshot:
  dir: `+dir+`
  saveInterval: 60s
logger:
  level: info
  mode: 420
  dir: `+dir+`
`)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, 30, conf.Analytics.WindowDays)
	assert.Equal(t, 7, conf.Analytics.RecentDays)
}

func TestConfigProvider_MissingFile(t *testing.T) {
	viper.Reset()
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestConfigProvider_InvalidConfigRejected(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	path := writeConfigFile(t, `webServer:
  host: localhost
  port: 8081
snapshot:
  dir: `+dir+`
  saveInterval: 60s
logger:
  level: shouting
  mode: 420
  dir: `+dir+`
`)

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
