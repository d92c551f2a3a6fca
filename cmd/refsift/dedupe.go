package main

import (
	"fmt"
	"strings"

	"github.com/refsift/refsift/internal/match"
	"github.com/refsift/refsift/internal/record"
	"github.com/refsift/refsift/internal/ris"
	"github.com/spf13/cobra"
)

var dedupeOut string

func init() {
	dedupeCmd.Flags().StringVar(&dedupeOut, "out", "", "Write the deduplicated records as RIS to this file")
	rootCmd.AddCommand(dedupeCmd)
}

var dedupeCmd = &cobra.Command{
	Use:   "dedupe <dataset>...",
	Short: "Deduplicate records across one or more datasets",
	Long: `Deduplicate records across datasets by fingerprint.

The first occurrence of each fingerprint becomes the master and carries an
occurrence count plus the list of datasets it appears in. Later occurrences
are reported as removed, each pointing at its master's dataset.

Examples:
  refsift dedupe screening1.ris screening2.ris screening3.ris
  refsift dedupe store:round1 round2.ris --out unique.ris`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDedupe,
}

// DedupeResponse is the dedupe command's JSON output.
type DedupeResponse struct {
	Datasets     []string        `json:"datasets"`
	TotalInput   int             `json:"total_input"`
	UniqueCount  int             `json:"unique_count"`
	RemovedCount int             `json:"removed_count"`
	Unique       []record.Record `json:"unique"`
	Removed      []record.Record `json:"removed"`
}

func runDedupe(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	var sources []match.Source
	total := 0
	names := make([]string, 0, len(args))
	for _, ref := range args {
		recs := mustLoadDataset(cfg, ref)
		name := datasetName(ref)
		sources = append(sources, match.Source{Name: name, Records: recs})
		names = append(names, name)
		total += len(recs)
	}

	unique, removed := match.Deduplicate(sources)

	if dedupeOut != "" {
		if err := ris.WriteFile(dedupeOut, unique); err != nil {
			exitWithError(ExitError, "writing %s: %v", dedupeOut, err)
		}
	}

	resp := DedupeResponse{
		Datasets:     names,
		TotalInput:   total,
		UniqueCount:  len(unique),
		RemovedCount: len(removed),
		Unique:       unique,
		Removed:      removed,
	}

	if humanOutput {
		printDedupeHuman(resp)
		return nil
	}
	return outputJSON(resp)
}

func printDedupeHuman(resp DedupeResponse) {
	fmt.Printf("Deduplicated %d records from %d datasets: %d unique, %d removed\n\n",
		resp.TotalInput, len(resp.Datasets), resp.UniqueCount, resp.RemovedCount)

	fmt.Println("Unique:")
	for i, rec := range resp.Unique {
		fmt.Printf("%d. %s\n", i+1, formatRecordLine(rec))
		if rec.OccurrenceCount > 1 {
			fmt.Printf("   seen %d times in: %s\n", rec.OccurrenceCount, strings.Join(rec.AppearsIn, ", "))
		}
	}

	if resp.RemovedCount > 0 {
		fmt.Println("\nRemoved duplicates:")
		for i, rec := range resp.Removed {
			fmt.Printf("%d. %s (duplicate of record in %s)\n", i+1, formatRecordLine(rec), rec.DuplicateOf)
		}
	}

	if dedupeOut != "" {
		fmt.Printf("\nWrote %d unique records to %s\n", resp.UniqueCount, dedupeOut)
	}
}
