// Package config loads the engine configuration from a TOML file, with
// secrets (upstream and OpenAI API keys) overridable from the environment.
// A .env file next to the working directory is honored via godotenv.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/rubiojr/scour/pkg/core"
)

// Duration wraps time.Duration for TOML text (un)marshaling.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// UpstreamConfig configures the search provider client.
type UpstreamConfig struct {
	APIKey  string   `toml:"api_key"`
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// OpenAIConfig configures the intent classifier and summarizer.
type OpenAIConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// LocationConfig configures the location resolver.
type LocationConfig struct {
	// StateCityHint enables the one-way state→major-city enrichment of the
	// upstream location string. See geo.Resolver.
	StateCityHint bool `toml:"state_city_hint"`
}

// SourceInfo is one configured source entry under a [sources.<intent>]
// table. Kind defaults to "web".
type SourceInfo struct {
	ID          string `toml:"id"`
	DisplayName string `toml:"display_name"`
	SiteDomain  string `toml:"site_domain"`
	Kind        string `toml:"kind"`
}

// Config is the full engine configuration.
type Config struct {
	StorageDir   string                  `toml:"storage_dir"`
	Listen       string                  `toml:"listen"`
	CacheTTL     Duration                `toml:"cache_ttl"`
	DefaultLimit int                     `toml:"default_limit"`
	Upstream     UpstreamConfig          `toml:"upstream"`
	OpenAI       OpenAIConfig            `toml:"openai"`
	Location     LocationConfig          `toml:"location"`
	Sources      map[string][]SourceInfo `toml:"sources"`
}

// GetDefaultConfig returns a config with every default filled in.
func GetDefaultConfig() (*Config, error) {
	storageDir, err := GetDefaultStorageDir()
	if err != nil {
		return nil, fmt.Errorf("getting default storage directory: %w", err)
	}
	return &Config{
		StorageDir:   storageDir,
		Listen:       ":8080",
		CacheTTL:     Duration{5 * time.Minute},
		DefaultLimit: 10,
		Upstream: UpstreamConfig{
			Timeout: Duration{15 * time.Second},
		},
		Location: LocationConfig{StateCityHint: true},
		Sources:  make(map[string][]SourceInfo),
	}, nil
}

// LoadConfig reads the config file, applies defaults for anything unset and
// overlays secrets from the environment. A missing file yields the default
// config.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := GetDefaultConfig()
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(configPath); statErr == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshaling config: %w", err)
		}
	}

	if cfg.StorageDir == "" {
		storageDir, err := GetDefaultStorageDir()
		if err != nil {
			return nil, fmt.Errorf("getting default storage directory: %w", err)
		}
		cfg.StorageDir = storageDir
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.CacheTTL.Duration == 0 {
		cfg.CacheTTL = Duration{5 * time.Minute}
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.Upstream.Timeout.Duration == 0 {
		cfg.Upstream.Timeout = Duration{15 * time.Second}
	}
	if cfg.Sources == nil {
		cfg.Sources = make(map[string][]SourceInfo)
	}

	// Secrets from the environment win over the file.
	if key := os.Getenv("SERP_API_KEY"); key != "" {
		cfg.Upstream.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}

	return cfg, nil
}

// SaveConfig writes the config back to disk.
func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(configPath, data, 0644)
}

// Catalog merges the built-in per-intent source catalog with any
// [sources.<intent>] overrides from the file. An override replaces the
// whole list for that intent.
func (c *Config) Catalog() map[core.Intent][]core.Source {
	catalog := core.DefaultCatalog()
	for intentName, infos := range c.Sources {
		intent := core.ParseIntent(intentName)
		var sources []core.Source
		for _, info := range infos {
			kind := core.ResultKind(info.Kind)
			if info.Kind == "" {
				kind = core.KindWeb
			}
			sources = append(sources, core.Source{
				ID:          info.ID,
				DisplayName: info.DisplayName,
				SiteDomain:  info.SiteDomain,
				Kind:        kind,
			})
		}
		if len(sources) > 0 {
			catalog[intent] = sources
		}
	}
	return catalog
}

// GetDefaultStorageDir returns (and creates) the XDG data directory for
// scour.
func GetDefaultStorageDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	scourDir := filepath.Join(dataDir, "scour")
	if err := os.MkdirAll(scourDir, 0755); err != nil {
		return "", fmt.Errorf("creating storage directory %s: %w", scourDir, err)
	}
	return scourDir, nil
}

// GetConfigDir returns the XDG configuration directory for scour.
func GetConfigDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "scour"), nil
}

// GetDefaultConfigPath returns the default config file location.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
