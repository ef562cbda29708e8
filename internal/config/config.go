package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/filmshelf/internal/util"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "FILMSHELF"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "filmshelf", "config.yml")
}

// Path returns the config file in effect: FILMSHELF_CONFIG if set,
// otherwise DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return DefaultPath()
}

// Load reads the config from path (or Path() when empty) and the
// environment. A missing file yields the defaults; init creates it.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.path", defaultDataDir())
	v.SetDefault("remote.enabled", false)
	v.SetDefault("remote.api_base", "https://api.github.com")
	v.SetDefault("remote.token_env", "GITHUB_TOKEN")
	v.SetDefault("remote.owner", "")
	v.SetDefault("remote.repo", "")
	v.SetDefault("remote.path", "films.yml")
	v.SetDefault("library.page_size", 12)
	v.SetDefault("library.default_sort", "title")
	v.SetDefault("search.cache_size", 64)
	v.SetDefault("search.cache_ttl", 10*time.Minute)
	v.SetDefault("barcode.endpoint", "")
	v.SetDefault("barcode.timeout", 10*time.Second)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = Path()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the init command creates it.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Resolve token from env (never stored in file).
	tokenEnv := cfg.Remote.TokenEnv
	if tokenEnv == "" {
		tokenEnv = "GITHUB_TOKEN"
	}
	cfg.Remote.Token = os.Getenv(tokenEnv)
	if cfg.Remote.Token == "" {
		cfg.Remote.Token = os.Getenv(EnvPrefix + "_GITHUB_TOKEN")
	}

	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)
	cfg.Log.File = ExpandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to path (or Path() when empty).
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return util.WriteAtomic(path, buf.Bytes(), 0644)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "filmshelf")
}
