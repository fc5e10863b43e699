package main

import (
	"fmt"
	"os"

	"github.com/GregoryAshton/autobib/internal/ads"
	"github.com/GregoryAshton/autobib/internal/config"
	"github.com/GregoryAshton/autobib/internal/fetch"
	"github.com/GregoryAshton/autobib/internal/inspire"
)

// mustLoadConfig loads the global configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// buildResolver constructs the fetch resolver from flags and config. A
// missing ADS token is not fatal (INSPIRE lookups still work); it just
// gets a warning since most fallback paths go through ADS.
func buildResolver(apiKeyFlag string, cfg *config.Config) *fetch.Resolver {
	adsClient := ads.NewClient(ads.WithAPIKey(config.ResolveAPIKey(apiKeyFlag, cfg)))
	if !adsClient.HasAPIKey() {
		fmt.Fprintln(os.Stderr, "warning: no ADS API key configured; ADS lookups will fail (set ADS_API_KEY or run 'autobib config set ads_api_key TOKEN')")
	}
	return fetch.NewResolver(inspire.NewClient(), adsClient)
}

// resolveStrategy picks the fetch strategy from the flag, falling back to
// the configured default.
func resolveStrategy(sourceFlag string, cfg *config.Config) fetch.Strategy {
	name := sourceFlag
	if name == "" {
		name = cfg.Source
	}
	return fetch.ParseStrategy(name)
}
