package config

import (
	"fmt"
	"time"
)

// Storage drivers.
const (
	DriverFile = "file"
	DriverBolt = "bolt"
)

// Config is the top-level filmshelf configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Remote  RemoteConfig  `mapstructure:"remote" yaml:"remote"`
	Library LibraryConfig `mapstructure:"library" yaml:"library"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
	Barcode BarcodeConfig `mapstructure:"barcode" yaml:"barcode"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// StorageConfig selects the local backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"` // "file" or "bolt"
	Path   string `mapstructure:"path" yaml:"path"`
}

// RemoteConfig holds the GitHub backup target.
type RemoteConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	APIBase  string `mapstructure:"api_base" yaml:"api_base"`
	TokenEnv string `mapstructure:"token_env" yaml:"token_env"`
	Owner    string `mapstructure:"owner" yaml:"owner"`
	Repo     string `mapstructure:"repo" yaml:"repo"`
	Path     string `mapstructure:"path" yaml:"path"`
	Token    string `mapstructure:"-" yaml:"-"` // resolved at runtime, never written
}

// LibraryConfig holds listing defaults.
type LibraryConfig struct {
	PageSize    int    `mapstructure:"page_size" yaml:"page_size"`
	DefaultSort string `mapstructure:"default_sort" yaml:"default_sort"`
}

// SearchConfig bounds the search result cache.
type SearchConfig struct {
	CacheSize int           `mapstructure:"cache_size" yaml:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// BarcodeConfig points at a lookup service. An empty endpoint uses the
// built-in table.
type BarcodeConfig struct {
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LogConfig controls the slog logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"` // empty means stderr
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverBolt:
	default:
		return fmt.Errorf("storage.driver %q: want %q or %q", c.Storage.Driver, DriverFile, DriverBolt)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if c.Library.PageSize < 0 {
		return fmt.Errorf("library.page_size must not be negative")
	}
	return nil
}

// RemoteReady reports whether the GitHub backup is enabled and has
// everything it needs.
func (c *Config) RemoteReady() bool {
	r := c.Remote
	return r.Enabled && r.Token != "" && r.Owner != "" && r.Repo != ""
}

// EffectiveRemotePath returns the catalog path inside the backup repo.
func (r *RemoteConfig) EffectiveRemotePath() string {
	if r.Path != "" {
		return r.Path
	}
	return "films.yml"
}
