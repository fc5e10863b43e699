package main

import (
	"fmt"
	"strconv"

	"github.com/GregoryAshton/autobib/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global configuration",
	Long: `Manage the global configuration file at ~/.config/autobib/config.yml.

Recognized keys:
  ads_api_key   ADS API token used for all ADS requests
  source        Default fetch strategy: ads, inspire, or auto
  max_authors   Default author-list truncation (0 disables)
  bib_file      Default bibliography file for 'autobib update'`,
}

// ConfigResponse is the JSON response for config get. The API key is
// masked so it does not leak into logs.
type ConfigResponse struct {
	Path       string `json:"path"`
	ADSAPIKey  string `json:"ads_api_key,omitempty"`
	Source     string `json:"source,omitempty"`
	MaxAuthors int    `json:"max_authors,omitempty"`
	BibFile    string `json:"bib_file,omitempty"`
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		resp := ConfigResponse{
			Path:       config.Path(),
			ADSAPIKey:  maskKey(cfg.ADSAPIKey),
			Source:     cfg.Source,
			MaxAuthors: cfg.MaxAuthors,
			BibFile:    cfg.BibFile,
		}

		if humanOutput {
			fmt.Printf("Config file: %s\n", resp.Path)
			fmt.Printf("  ads_api_key: %s\n", orUnset(resp.ADSAPIKey))
			fmt.Printf("  source:      %s\n", orUnset(resp.Source))
			fmt.Printf("  max_authors: %d\n", resp.MaxAuthors)
			fmt.Printf("  bib_file:    %s\n", orUnset(resp.BibFile))
			return nil
		}
		return outputJSON(resp)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		cfg := mustLoadConfig()

		switch key {
		case "ads_api_key":
			cfg.ADSAPIKey = value
		case "source":
			if value != "ads" && value != "inspire" && value != "auto" {
				exitWithError(ExitConfigError, "invalid source %q (want ads, inspire, or auto)", value)
			}
			cfg.Source = value
		case "max_authors":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				exitWithError(ExitConfigError, "invalid max_authors %q (want a non-negative integer)", value)
			}
			cfg.MaxAuthors = n
		case "bib_file":
			cfg.BibFile = value
		default:
			exitWithError(ExitConfigError, "unknown config key %q", key)
		}

		if err := cfg.Save(); err != nil {
			exitWithError(ExitError, "saving config: %v", err)
		}

		if humanOutput {
			fmt.Printf("Set %s\n", key)
			return nil
		}
		return outputJSON(map[string]string{"status": "ok", "key": key})
	},
}

// maskKey hides all but the last four characters of a credential.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
