package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/refsift/refsift/internal/ris"
	"github.com/spf13/cobra"
)

var storeAddName string

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the dataset library",
	Long: `Manage the SQLite dataset library.

Parsed RIS files are cached under a name so later compare, dedupe, search,
and analyze runs can reference them as store:NAME without reparsing.

The library location is store_path in the config, or the REFSIFT_STORE
environment variable, defaulting to $XDG_DATA_HOME/refsift/store.db.`,
}

func init() {
	// Load .env if present (for REFSIFT_STORE)
	_ = godotenv.Load()

	storeAddCmd.Flags().StringVar(&storeAddName, "name", "", "Dataset name (default: base filename)")
	storeCmd.AddCommand(storeInitCmd)
	storeCmd.AddCommand(storeAddCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeShowCmd)
	storeCmd.AddCommand(storeRemoveCmd)
	rootCmd.AddCommand(storeCmd)
}

var storeInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the dataset library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		db := mustOpenStore(cfg)
		defer db.Close()

		if humanOutput {
			fmt.Printf("Initialized dataset library at %s\n", cfg.Store())
		} else {
			outputJSON(StatusResponse{Status: "initialized", Path: cfg.Store()})
		}
		return nil
	},
}

var storeAddCmd = &cobra.Command{
	Use:   "add <file.ris>",
	Short: "Parse an RIS file and cache it under a name",
	Long: `Parse an RIS file and cache its records in the library.

Adding under an existing name replaces that dataset.

Examples:
  refsift store add screening1.ris
  refsift store add export.ris --name screening2`,
	Args: cobra.ExactArgs(1),
	RunE: runStoreAdd,
}

// StoreAddResponse is the store add command's JSON output.
type StoreAddResponse struct {
	Status  string `json:"status"`
	Name    string `json:"name"`
	Source  string `json:"source"`
	Records int    `json:"records"`
}

func runStoreAdd(cmd *cobra.Command, args []string) error {
	path := args[0]
	name := storeAddName
	if name == "" {
		base := datasetName(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	recs, err := ris.ParseFile(path)
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", path, err)
	}

	cfg := mustLoadConfig()
	db := mustOpenStore(cfg)
	defer db.Close()

	if err := db.AddDataset(name, path, recs); err != nil {
		exitWithError(ExitError, "storing dataset: %v", err)
	}

	if humanOutput {
		fmt.Printf("Stored %d records as %q\n", len(recs), name)
	} else {
		outputJSON(StoreAddResponse{Status: "stored", Name: name, Source: path, Records: len(recs)})
	}
	return nil
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		db := mustOpenStore(cfg)
		defer db.Close()

		datasets, err := db.ListDatasets()
		if err != nil {
			exitWithError(ExitError, "listing datasets: %v", err)
		}

		if humanOutput {
			if len(datasets) == 0 {
				fmt.Println("No datasets stored.")
				return nil
			}
			for _, ds := range datasets {
				fmt.Printf("%-24s %5d records  %s  (from %s)\n", ds.Name, ds.RecordCount, ds.AddedAt, ds.SourcePath)
			}
			return nil
		}
		return outputJSON(map[string]interface{}{"datasets": datasets})
	},
}

var storeShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the records of a cached dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		db := mustOpenStore(cfg)
		defer db.Close()

		recs, err := db.LoadDataset(args[0])
		if err != nil {
			exitWithError(ExitNotFound, "%v", err)
		}

		if humanOutput {
			fmt.Printf("%s: %d records\n", args[0], len(recs))
			printRecordsHuman(recs)
			return nil
		}
		return outputJSON(map[string]interface{}{"name": args[0], "records": recs})
	},
}

var storeRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a cached dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		db := mustOpenStore(cfg)
		defer db.Close()

		if err := db.RemoveDataset(args[0]); err != nil {
			exitWithError(ExitNotFound, "%v", err)
		}

		if humanOutput {
			fmt.Printf("Removed dataset %q\n", args[0])
		} else {
			outputJSON(StatusResponse{Status: "removed"})
		}
		return nil
	},
}
