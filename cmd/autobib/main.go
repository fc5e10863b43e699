// Package main provides the autobib CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "autobib",
	Short: "Fetch BibTeX entries from INSPIRE and ADS for LaTeX projects",
	Long: `autobib keeps a LaTeX project's bibliography in sync with INSPIRE-HEP
and NASA ADS.

It extracts citation keys from .tex source, fetches the matching BibTeX
records, rewrites the record keys to the citation keys used in the
document, and appends them to the project .bib file. Keys of unknown
provenance are resolved by cross-referencing INSPIRE metadata (ADS
bibcode, arXiv id) against ADS.

ADS requests need an API token: pass --api-key, set ADS_API_KEY (a .env
file in the working directory is honored), or store it with
'autobib config set ads_api_key TOKEN'.

All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
