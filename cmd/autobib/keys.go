package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/GregoryAshton/autobib/internal/texkey"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keysCmd)
}

var keysCmd = &cobra.Command{
	Use:   "keys [TEX FILES...]",
	Short: "List citation keys found in LaTeX source",
	Long: `Extract and classify the citation keys from the given .tex files
(all .tex files in the working directory when none are given).

Useful for checking what 'autobib update' would try to fetch.`,
	RunE: runKeys,
}

// KeyInfo describes one extracted citation key.
type KeyInfo struct {
	Key  string `json:"key"`
	Kind string `json:"kind"`
}

// KeysResponse is the JSON response for the keys command.
type KeysResponse struct {
	Files []string  `json:"files"`
	Keys  []KeyInfo `json:"keys"`
}

func runKeys(cmd *cobra.Command, args []string) error {
	texFiles := args
	if len(texFiles) == 0 {
		var err error
		texFiles, err = filepath.Glob("*.tex")
		if err != nil || len(texFiles) == 0 {
			exitWithError(ExitDataError, "no .tex files found (pass them explicitly or run from the project directory)")
		}
	}

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

	infos := make([]KeyInfo, len(keys))
	for i, key := range keys {
		infos[i] = KeyInfo{Key: key, Kind: texkey.Classify(key).String()}
	}

	if humanOutput {
		for _, info := range infos {
			fmt.Printf("%-40s %s\n", info.Key, info.Kind)
		}
		fmt.Printf("\n%d keys in %d files\n", len(infos), len(texFiles))
		return nil
	}
	return outputJSON(KeysResponse{Files: texFiles, Keys: infos})
}
