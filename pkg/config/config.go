// Package config handles loading, validating and saving the application
// configuration. Configuration lives in a YAML file; missing files yield the
// defaults so a fresh install works without any setup.
package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/prepstack/packman/pkg/errors"
	"github.com/prepstack/packman/pkg/fsutil"
)

// Config represents the application configuration.
type Config struct {
	// Repositories are the pack repositories packs can be fetched from.
	Repositories []*RepositoryConfig `yaml:"repositories"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// RepositoryConfig describes a single pack repository. Token, when set, is
// sent as a bearer token on manifest and archive requests to this repository.
type RepositoryConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Enabled  bool   `yaml:"enabled"`
	Priority uint   `yaml:"priority"`
	Token    string `yaml:"token,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// PacksDir is where installed packs live.
	PacksDir string `yaml:"packs_dir,omitempty"`

	// TempDir holds in-flight downloads and staging directories.
	TempDir string `yaml:"temp_dir,omitempty"`

	// StateFile is the install record database.
	StateFile string `yaml:"state_file,omitempty"`

	// AppVersion is the version packs are checked for compatibility against.
	AppVersion string `yaml:"app_version,omitempty"`

	// TrustedKeys are hex-encoded Ed25519 public keys accepted for pack
	// signatures. Multiple keys allow rotation without breaking old packs.
	TrustedKeys []string `yaml:"trusted_keys"`

	// Network settings
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	LogLevel string `yaml:"log_level"` // error, warn, info, debug
}

// Default configuration values.
const (
	// DefaultHTTPTimeout bounds a single pack download.
	DefaultHTTPTimeout = 5 * time.Minute

	// DefaultAppVersion is used when the build does not inject a version.
	DefaultAppVersion = "0.0.0"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	packsDir, err := fsutil.GetPacksDir()
	if err != nil {
		packsDir = filepath.Join(".", "packs")
	}
	tempDir, err := fsutil.GetTempDir()
	if err != nil {
		tempDir = filepath.Join(".", "tmp")
	}
	dataDir, err := fsutil.GetDataDir()
	if err != nil {
		dataDir = "."
	}

	return &Config{
		Repositories: []*RepositoryConfig{},
		Settings: Settings{
			PacksDir:    packsDir,
			TempDir:     tempDir,
			StateFile:   filepath.Join(dataDir, "installed.json"),
			AppVersion:  DefaultAppVersion,
			TrustedKeys: []string{},
			HTTPTimeout: DefaultHTTPTimeout,
			LogLevel:    "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file is not an
// error; the defaults are returned instead.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig writes the configuration atomically via a temp file rename.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to encode config")
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to replace config file")
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateRepositories(c.Repositories); err != nil {
		return err
	}
	return validateSettings(c.Settings)
}

func validateRepositories(repos []*RepositoryConfig) error {
	names := make(map[string]bool)
	for _, repo := range repos {
		if repo.Name == "" {
			return fmt.Errorf("repository name cannot be empty")
		}
		if names[repo.Name] {
			return fmt.Errorf("duplicate repository name: %s", repo.Name)
		}
		names[repo.Name] = true
		parsed, err := url.Parse(repo.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("repository %s has an invalid URL: %s", repo.Name, repo.URL)
		}
	}
	return nil
}

func validateSettings(settings Settings) error {
	if settings.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout cannot be negative")
	}
	switch settings.LogLevel {
	case "", "error", "warn", "warning", "info", "debug":
	default:
		return fmt.Errorf("invalid log_level: %s", settings.LogLevel)
	}
	for _, key := range settings.TrustedKeys {
		raw, err := hex.DecodeString(key)
		if err != nil || len(raw) != ed25519.PublicKeySize {
			return errors.Wrapf(errors.ErrInvalidPublicKey, "trusted key %q is not a hex-encoded Ed25519 public key", key)
		}
	}
	return nil
}

// applyDefaults fills in zero values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Settings.PacksDir == "" {
		c.Settings.PacksDir = defaults.Settings.PacksDir
	}
	if c.Settings.TempDir == "" {
		c.Settings.TempDir = defaults.Settings.TempDir
	}
	if c.Settings.StateFile == "" {
		c.Settings.StateFile = defaults.Settings.StateFile
	}
	if c.Settings.AppVersion == "" {
		c.Settings.AppVersion = defaults.Settings.AppVersion
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	if c.Settings.TrustedKeys == nil {
		c.Settings.TrustedKeys = []string{}
	}
	if c.Repositories == nil {
		c.Repositories = []*RepositoryConfig{}
	}
}

// EnabledRepositories returns the enabled repositories ordered by priority,
// highest first.
func (c *Config) EnabledRepositories() []*RepositoryConfig {
	enabled := make([]*RepositoryConfig, 0, len(c.Repositories))
	for _, repo := range c.Repositories {
		if repo.Enabled {
			enabled = append(enabled, repo)
		}
	}
	for i := 1; i < len(enabled); i++ {
		for j := i; j > 0 && enabled[j].Priority > enabled[j-1].Priority; j-- {
			enabled[j], enabled[j-1] = enabled[j-1], enabled[j]
		}
	}
	return enabled
}
