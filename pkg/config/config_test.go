package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepstack/packman/pkg/verify"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.Settings.PacksDir)
	assert.NotEmpty(t, cfg.Settings.TempDir)
	assert.NotEmpty(t, cfg.Settings.StateFile)
	assert.Equal(t, DefaultHTTPTimeout, cfg.Settings.HTTPTimeout)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Settings.LogLevel, cfg.Settings.LogLevel)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigFromReader(t *testing.T) {
	publicHex, _, err := verify.GenerateKeyPair()
	require.NoError(t, err)

	yaml := `
repositories:
  - name: main
    url: https://packs.example.com/repo
    enabled: true
    priority: 10
    token: repo-token
settings:
  packs_dir: /var/lib/packman/packs
  app_version: 2.5.1
  trusted_keys:
    - ` + publicHex + `
  log_level: debug
`
	cfg, err := LoadConfigFromReader(strings.NewReader(yaml))
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/packman/packs", cfg.Settings.PacksDir)
	assert.Equal(t, "2.5.1", cfg.Settings.AppVersion)
	assert.Equal(t, DefaultHTTPTimeout, cfg.Settings.HTTPTimeout)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	require.Len(t, cfg.Repositories, 1)
	assert.Equal(t, "main", cfg.Repositories[0].Name)
	assert.Equal(t, "repo-token", cfg.Repositories[0].Token)

	// Unset fields fall back to defaults.
	assert.NotEmpty(t, cfg.Settings.TempDir)
	assert.NotEmpty(t, cfg.Settings.StateFile)
}

func TestLoadConfigFromReader_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "malformed yaml",
			yaml: "settings: [not a map",
		},
		{
			name: "bad trusted key",
			yaml: "settings:\n  trusted_keys:\n    - nothex\n",
		},
		{
			name: "bad log level",
			yaml: "settings:\n  log_level: loud\n",
		},
		{
			name: "duplicate repository names",
			yaml: `
repositories:
  - name: main
    url: https://a.example.com
  - name: main
    url: https://b.example.com
`,
		},
		{
			name: "repository without scheme",
			yaml: `
repositories:
  - name: main
    url: packs.example.com/repo
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromReader(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSaveAndReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg := DefaultConfig()
	cfg.Settings.AppVersion = "3.1.4"
	cfg.Repositories = []*RepositoryConfig{{Name: "main", URL: "https://packs.example.com", Enabled: true}}
	require.NoError(t, cfg.SaveConfig(path))

	// No temp file left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "3.1.4", loaded.Settings.AppVersion)
	require.Len(t, loaded.Repositories, 1)
	assert.Equal(t, "main", loaded.Repositories[0].Name)
}

func TestEnabledRepositories(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Repositories = []*RepositoryConfig{
		{Name: "low", URL: "https://low.example.com", Enabled: true, Priority: 1},
		{Name: "disabled", URL: "https://off.example.com", Enabled: false, Priority: 99},
		{Name: "high", URL: "https://high.example.com", Enabled: true, Priority: 10},
	}

	enabled := cfg.EnabledRepositories()
	require.Len(t, enabled, 2)
	assert.Equal(t, "high", enabled[0].Name)
	assert.Equal(t, "low", enabled[1].Name)
}
