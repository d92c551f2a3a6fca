package main

import (
	"fmt"

	"github.com/refsift/refsift/internal/stats"
	"github.com/spf13/cobra"
)

var analyzeTopN int

func init() {
	analyzeCmd.Flags().IntVar(&analyzeTopN, "top", stats.DefaultTopN, "How many top authors/journals to report")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dataset>",
	Short: "Summarize a dataset",
	Long: `Summarize a dataset: record counts, year range and histogram,
top authors and journals, and per-type counts.

Examples:
  refsift analyze refs.ris
  refsift analyze store:screening1 --top 5`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

// AnalyzeResponse is the analyze command's JSON output.
type AnalyzeResponse struct {
	Dataset string        `json:"dataset"`
	Summary stats.Summary `json:"summary"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeTopN < 1 {
		return fmt.Errorf("--top must be at least 1")
	}

	cfg := mustLoadConfig()
	recs := mustLoadDataset(cfg, args[0])
	summary := stats.Summarize(recs, analyzeTopN)

	if humanOutput {
		printSummaryHuman(datasetName(args[0]), summary)
		return nil
	}
	return outputJSON(AnalyzeResponse{Dataset: datasetName(args[0]), Summary: summary})
}

func printSummaryHuman(name string, s stats.Summary) {
	fmt.Printf("%s: %d records\n", name, s.Total)
	fmt.Printf("  with DOI:      %d\n", s.WithDOI)
	fmt.Printf("  with abstract: %d\n", s.WithAbstract)
	if s.YearMin != 0 {
		fmt.Printf("  years:         %d-%d\n", s.YearMin, s.YearMax)
	}

	if len(s.TopAuthors) > 0 {
		fmt.Println("\nTop authors:")
		for _, nc := range s.TopAuthors {
			fmt.Printf("  %4d  %s\n", nc.Count, nc.Name)
		}
	}
	if len(s.TopJournals) > 0 {
		fmt.Println("\nTop journals:")
		for _, nc := range s.TopJournals {
			fmt.Printf("  %4d  %s\n", nc.Count, nc.Name)
		}
	}
	if len(s.Types) > 0 {
		fmt.Println("\nTypes:")
		for _, nc := range s.Types {
			fmt.Printf("  %4d  %s\n", nc.Count, nc.Name)
		}
	}
	if len(s.Years) > 0 {
		fmt.Println("\nPer year:")
		for _, yc := range s.Years {
			fmt.Printf("  %d: %d\n", yc.Year, yc.Count)
		}
	}
}
