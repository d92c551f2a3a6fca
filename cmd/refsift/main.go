// Package main provides the refsift CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/refsift/refsift/internal/config"
	"github.com/refsift/refsift/internal/record"
	"github.com/refsift/refsift/internal/ris"
	"github.com/refsift/refsift/internal/storage"
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
	Use:   "refsift",
	Short: "RIS reference comparison and deduplication CLI",
	Long: `refsift compares, deduplicates, and searches RIS bibliography exports.

Core features:
  - Pairwise dataset comparison (overlap / unique) with fuzzy title matching
  - N-way deduplication with provenance tracking
  - Boolean search with field scopes, wildcards, and match highlighting
  - Dataset statistics (years, authors, journals, types)
  - SQLite dataset library so large exports are parsed once

Datasets are RIS file paths, or store:NAME references into the library.
All commands output JSON by default for AI agent integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// storeRefPrefix marks a dataset argument as a store library reference.
const storeRefPrefix = "store:"

// mustLoadConfig loads the global configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenStore opens the dataset library, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenStore(cfg *config.Config) *storage.DB {
	path := cfg.Store()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		exitWithError(ExitError, "creating store directory: %v", err)
	}
	db, err := storage.Open(path)
	if err != nil {
		exitWithError(ExitError, "opening store: %v", err)
	}
	return db
}

// datasetName returns the display name for a dataset reference:
// the library name for store:NAME, the base filename otherwise.
func datasetName(ref string) string {
	if name, ok := strings.CutPrefix(ref, storeRefPrefix); ok {
		return name
	}
	return filepath.Base(ref)
}

// loadDataset resolves a dataset reference to its records. store:NAME loads
// from the dataset library; anything else is parsed as an RIS file.
func loadDataset(cfg *config.Config, ref string) ([]record.Record, error) {
	if name, ok := strings.CutPrefix(ref, storeRefPrefix); ok {
		db := mustOpenStore(cfg)
		defer db.Close()
		recs, err := db.LoadDataset(name)
		if err != nil {
			return nil, fmt.Errorf("loading dataset %q: %w", name, err)
		}
		return recs, nil
	}
	recs, err := ris.ParseFile(ref)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	return recs, nil
}

// mustLoadDataset is loadDataset with exit-on-error for command bodies.
func mustLoadDataset(cfg *config.Config, ref string) []record.Record {
	recs, err := loadDataset(cfg, ref)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return recs
}
