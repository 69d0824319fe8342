package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rubiojr/scour/pkg/core"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("default listen = %q", cfg.Listen)
	}
	if cfg.CacheTTL.Duration != 5*time.Minute {
		t.Errorf("default cache TTL = %v", cfg.CacheTTL.Duration)
	}
	if !cfg.Location.StateCityHint {
		t.Error("state city hint must default on")
	}
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("SERP_API_KEY", "env-key")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
listen = ":9090"
cache_ttl = "1m"
default_limit = 25

[upstream]
api_key = "file-key"

[location]
state_city_hint = false

[[sources.shopping]]
id = "store"
display_name = "Store"
site_domain = "store.example"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Listen != ":9090" || cfg.DefaultLimit != 25 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.CacheTTL.Duration != time.Minute {
		t.Errorf("cache TTL = %v", cfg.CacheTTL.Duration)
	}
	if cfg.Upstream.APIKey != "env-key" {
		t.Errorf("environment must win over file for secrets, got %q", cfg.Upstream.APIKey)
	}
	if cfg.Location.StateCityHint {
		t.Error("state city hint override lost")
	}

	catalog := cfg.Catalog()
	shopping := catalog[core.IntentShopping]
	if len(shopping) != 1 || shopping[0].SiteDomain != "store.example" || shopping[0].Kind != core.KindWeb {
		t.Errorf("configured sources not merged: %+v", shopping)
	}
	if len(catalog[core.IntentGeneral]) == 0 {
		t.Error("untouched intents must keep the built-in catalog")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := GetDefaultConfig()
	if err != nil {
		t.Fatalf("GetDefaultConfig: %v", err)
	}
	cfg.Listen = ":7070"

	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Listen != ":7070" {
		t.Errorf("round trip lost listen address: %q", loaded.Listen)
	}
}
