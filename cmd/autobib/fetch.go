package main

import (
	"errors"
	"fmt"

	"github.com/GregoryAshton/autobib/internal/bibtex"
	"github.com/GregoryAshton/autobib/internal/fetch"
	"github.com/GregoryAshton/autobib/internal/texkey"
	"github.com/spf13/cobra"
)

var (
	fetchSource     string
	fetchAPIKey     string
	fetchMaxAuthors int
	fetchKeepKey    bool
)

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchSource, "source", "", "Source preference: ads, inspire, or auto")
	fetchCmd.Flags().StringVar(&fetchAPIKey, "api-key", "", "ADS API token (overrides ADS_API_KEY and config)")
	fetchCmd.Flags().IntVar(&fetchMaxAuthors, "max-authors", 0, "Truncate author lists longer than N (0 disables)")
	fetchCmd.Flags().BoolVar(&fetchKeepKey, "keep-key", false, "Keep the record's original key instead of rewriting it")
}

var fetchCmd = &cobra.Command{
	Use:   "fetch KEY",
	Short: "Fetch the BibTeX record for a single citation key",
	Long: `Fetch the BibTeX record for one citation key from INSPIRE or ADS.

The key may be an INSPIRE texkey (Maldacena:1997re), an ADS bibcode
(1998AdTMP...2..231M), or anything else; unknown keys are tried as
INSPIRE texkeys first. The record's key is rewritten to the requested
key unless --keep-key is given.

Examples:
  autobib fetch Maldacena:1997re
  autobib fetch 2016PhRvL.116f1102A --source ads --human`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

// FetchResponse is the JSON response for the fetch command.
type FetchResponse struct {
	Key    string `json:"key"`
	Kind   string `json:"kind"`
	Source string `json:"source"`
	Bibtex string `json:"bibtex"`
}

func runFetch(cmd *cobra.Command, args []string) error {
	key := args[0]
	cfg := mustLoadConfig()
	resolver := buildResolver(fetchAPIKey, cfg)
	strategy := resolveStrategy(fetchSource, cfg)

	result, err := resolver.Fetch(cmd.Context(), key, strategy)
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			exitWithError(ExitDataError, "no BibTeX record found for %q (tried strategy %q)", key, strategy)
		}
		exitWithError(ExitError, "fetching %q: %v", key, err)
	}

	record := result.Bibtex
	if !fetchKeepKey {
		record = bibtex.ReplaceKey(record, key)
	}
	if fetchMaxAuthors > 0 {
		record = bibtex.TruncateAuthors(record, fetchMaxAuthors)
	}

	if humanOutput {
		fmt.Printf("%% %s\n%s\n", result.Source, record)
		return nil
	}
	return outputJSON(FetchResponse{
		Key:    key,
		Kind:   texkey.Classify(key).String(),
		Source: result.Source,
		Bibtex: record,
	})
}
