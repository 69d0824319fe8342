package cmd

import (
	"fmt"

	"github.com/rubiojr/scour/pkg/config"
	"github.com/rubiojr/scour/pkg/geo"
	"github.com/rubiojr/scour/pkg/llm"
	"github.com/rubiojr/scour/pkg/search"
	"github.com/rubiojr/scour/pkg/serp"
	"github.com/rubiojr/scour/pkg/storage"
)

// buildService assembles a search service from the configuration.
func buildService(cfg *config.Config) *search.Service {
	opts := search.Options{
		Upstream:      serp.NewClient(cfg.Upstream.APIKey, cfg.Upstream.BaseURL, cfg.Upstream.Timeout.Duration),
		Catalog:       cfg.Catalog(),
		Locator:       geo.NewProviderChain(),
		CacheTTL:      cfg.CacheTTL.Duration,
		DefaultLimit:  cfg.DefaultLimit,
		StateCityHint: cfg.Location.StateCityHint,
	}
	if cfg.OpenAI.APIKey != "" {
		client := llm.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		opts.Classifier = client
		opts.Summarizer = client
	}
	return search.NewService(opts)
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	store, err := storage.Open(cfg.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("opening storage at %s: %w", cfg.StorageDir, err)
	}
	return store, nil
}
