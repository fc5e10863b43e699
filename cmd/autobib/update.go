package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GregoryAshton/autobib/internal/aasmacros"
	"github.com/GregoryAshton/autobib/internal/bibtex"
	"github.com/GregoryAshton/autobib/internal/fetch"
	"github.com/GregoryAshton/autobib/internal/texkey"
	"github.com/spf13/cobra"
)

var (
	updateBib        string
	updateSource     string
	updateAPIKey     string
	updateMaxAuthors int
	updateAASSty     string
	updateSanitize   bool
	updateDryRun     bool
	updateWorkers    int
)

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateBib, "bib", "", "Bibliography file to update (default from config, else references.bib)")
	updateCmd.Flags().StringVar(&updateSource, "source", "", "Source preference: ads, inspire, or auto")
	updateCmd.Flags().StringVar(&updateAPIKey, "api-key", "", "ADS API token (overrides ADS_API_KEY and config)")
	updateCmd.Flags().IntVar(&updateMaxAuthors, "max-authors", -1, "Truncate author lists longer than N (0 disables, default from config)")
	updateCmd.Flags().StringVar(&updateAASSty, "aas-sty", "", "Expand AAS journal macros using definitions from this .sty file")
	updateCmd.Flags().BoolVar(&updateSanitize, "sanitize", false, "Replace Unicode characters in fetched records with LaTeX escapes")
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "Show what would be fetched without writing the .bib file")
	updateCmd.Flags().IntVar(&updateWorkers, "workers", fetch.DefaultBatchWorkers, "Concurrent key resolutions")
}

var updateCmd = &cobra.Command{
	Use:   "update [TEX FILES...]",
	Short: "Fetch missing BibTeX entries for a LaTeX project",
	Long: `Update the project .bib file with BibTeX entries for every citation
key found in the given .tex files (all .tex files in the working
directory when none are given).

Keys already present in the .bib file are skipped. Fetched records get
their keys rewritten to the citation keys used in the document, so the
document compiles without editing. Keys that cannot be resolved by any
source are reported so they can be added manually.

Examples:
  autobib update paper.tex
  autobib update --source inspire --max-authors 5
  autobib update --dry-run --human`,
	RunE: runUpdate,
}

// AddedEntry reports one fetched record in the update response.
type AddedEntry struct {
	Key    string `json:"key"`
	Source string `json:"source"`
}

// UpdateResponse is the JSON response for the update command.
type UpdateResponse struct {
	BibFile string       `json:"bib_file"`
	DryRun  bool         `json:"dry_run,omitempty"`
	Added   []AddedEntry `json:"added"`
	Skipped []string     `json:"skipped,omitempty"`
	Failed  []string     `json:"failed,omitempty"`
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	texFiles := args
	if len(texFiles) == 0 {
		var err error
		texFiles, err = filepath.Glob("*.tex")
		if err != nil || len(texFiles) == 0 {
			exitWithError(ExitDataError, "no .tex files found (pass them explicitly or run from the project directory)")
		}
	}

	bibFile := updateBib
	if bibFile == "" {
		bibFile = cfg.BibFile
	}
	if bibFile == "" {
		bibFile = "references.bib"
	}

	maxAuthors := updateMaxAuthors
	if maxAuthors < 0 {
		maxAuthors = cfg.MaxAuthors
	}

	var macros aasmacros.Macros
	if updateAASSty != "" {
		var err error
		macros, err = aasmacros.ParseFile(updateAASSty)
		if err != nil {
			exitWithError(ExitDataError, "parsing AAS macros from %s: %v", updateAASSty, err)
		}
	}

	// Gather citation keys from the LaTeX source.
	var keys []string
	for _, texFile := range texFiles {
		content, err := os.ReadFile(texFile)
		if err != nil {
			exitWithError(ExitDataError, "reading %s: %v", texFile, err)
		}
		fileKeys, warnings := texkey.ExtractCiteKeys(string(content), texFile)
		printWarnings(warnings)
		keys = append(keys, fileKeys...)
	}
	keys = texkey.Unique(keys)

	existing, err := bibtex.ExtractFileKeys(bibFile)
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", bibFile, err)
	}

	var missing, skipped []string
	for _, key := range keys {
		if existing[key] {
			skipped = append(skipped, key)
		} else {
			missing = append(missing, key)
		}
	}

	response := UpdateResponse{BibFile: bibFile, DryRun: updateDryRun, Skipped: skipped}

	if len(missing) == 0 {
		if humanOutput {
			fmt.Printf("All %d citation keys already in %s.\n", len(keys), bibFile)
		} else {
			outputJSON(response)
		}
		return nil
	}

	resolver := buildResolver(updateAPIKey, cfg)
	strategy := resolveStrategy(updateSource, cfg)
	items := resolver.FetchAll(cmd.Context(), missing, strategy, updateWorkers)

	var records []string
	for _, item := range items {
		if item.Err != nil {
			if !errors.Is(item.Err, fetch.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "warning: %s: %v\n", item.Key, item.Err)
			}
			response.Failed = append(response.Failed, item.Key)
			continue
		}

		record := bibtex.ReplaceKey(item.Bibtex, item.Key)
		if maxAuthors > 0 {
			record = bibtex.TruncateAuthors(record, maxAuthors)
		}
		if macros != nil {
			record = macros.Expand(record)
		}
		if updateSanitize {
			record = bibtex.Sanitize(record)
		}

		records = append(records, record)
		response.Added = append(response.Added, AddedEntry{Key: item.Key, Source: item.Source})
	}

	if !updateDryRun && len(records) > 0 {
		if err := appendEntries(bibFile, records); err != nil {
			exitWithError(ExitError, "writing %s: %v", bibFile, err)
		}
	}

	if humanOutput {
		printUpdateResultHuman(response)
	} else {
		outputJSON(response)
	}

	if len(response.Failed) > 0 {
		os.Exit(ExitPartial)
	}
	return nil
}

// appendEntries appends BibTeX records to the .bib file, creating it if
// needed and keeping a blank line between entries.
func appendEntries(path string, records []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, record := range records {
		if _, err := f.WriteString(strings.TrimRight(record, "\n") + "\n\n"); err != nil {
			return err
		}
	}
	return nil
}

// printUpdateResultHuman prints the update result in human-readable format.
func printUpdateResultHuman(r UpdateResponse) {
	if r.DryRun {
		fmt.Println("Dry run - no changes made")
		fmt.Println()
	}

	for _, entry := range r.Added {
		fmt.Printf("  %s  [%s]\n", entry.Key, entry.Source)
	}

	fmt.Printf("\n%d entries added to %s", len(r.Added), r.BibFile)
	if len(r.Skipped) > 0 {
		fmt.Printf(" (%d already present)", len(r.Skipped))
	}
	fmt.Println()

	if len(r.Failed) > 0 {
		fmt.Printf("\nUnresolved keys (%d):\n", len(r.Failed))
		for _, key := range r.Failed {
			fmt.Printf("  %s\n", key)
		}
		fmt.Println("\nAdd these entries manually or check the key spelling.")
	}
}
