package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  refsift config                            # Show all config
  refsift config fuzzy-threshold            # Get specific value
  refsift config fuzzy-threshold 0.85       # Set value
  refsift config search-fields title,abstract
  refsift config store-path ~/data/refsift.db

Keys:
  fuzzy-threshold  Similarity cutoff for fuzzy title matching (0-1)
  search-fields    Default fields for search (title,abstract,keywords)
  store-path       Location of the dataset library`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	FuzzyThreshold float64  `json:"fuzzy_threshold"`
	SearchFields   []string `json:"search_fields"`
	StorePath      string   `json:"store_path,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	// No args: show all config (with defaults applied)
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("fuzzy-threshold: %g\n", cfg.Threshold())
			fmt.Printf("search-fields:   %s\n", strings.Join(cfg.Fields(), ","))
			fmt.Printf("store-path:      %s\n", cfg.Store())
		} else {
			outputJSON(ConfigResponse{
				FuzzyThreshold: cfg.Threshold(),
				SearchFields:   cfg.Fields(),
				StorePath:      cfg.Store(),
			})
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		switch key {
		case "fuzzy-threshold":
			if humanOutput {
				fmt.Println(cfg.Threshold())
			} else {
				outputJSON(map[string]float64{"fuzzy_threshold": cfg.Threshold()})
			}
		case "search-fields":
			if humanOutput {
				fmt.Println(strings.Join(cfg.Fields(), ","))
			} else {
				outputJSON(map[string][]string{"search_fields": cfg.Fields()})
			}
		case "store-path":
			if humanOutput {
				fmt.Println(cfg.Store())
			} else {
				outputJSON(map[string]string{"store_path": cfg.Store()})
			}
		default:
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		return nil
	}

	// Two args: set value
	value := args[1]

	switch key {
	case "fuzzy-threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 1 {
			exitWithError(ExitError, "fuzzy-threshold must be a number in [0, 1], got %q", value)
		}
		cfg.FuzzyThreshold = f

	case "search-fields":
		fields := strings.Split(value, ",")
		for i, f := range fields {
			fields[i] = strings.TrimSpace(f)
			if !validSearchField(fields[i]) {
				exitWithError(ExitError, "unknown search field %q (want title, abstract, or keywords)", fields[i])
			}
		}
		cfg.SearchFields = fields

	case "store-path":
		cfg.StorePath = value

	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}

// normalizeKey converts key formats (fuzzy_threshold, FuzzyThreshold) to kebab-case.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
