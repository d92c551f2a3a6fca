package main

import (
	"fmt"

	"github.com/refsift/refsift/internal/match"
	"github.com/refsift/refsift/internal/record"
	"github.com/refsift/refsift/internal/ris"
	"github.com/spf13/cobra"
)

var (
	compareNoFuzzy    bool
	compareThreshold  float64
	compareConfidence bool
	compareExport     string
	compareOut        string
)

func init() {
	compareCmd.Flags().BoolVar(&compareNoFuzzy, "no-fuzzy", false, "Disable the fuzzy title matching pass")
	compareCmd.Flags().Float64Var(&compareThreshold, "threshold", 0, "Fuzzy similarity threshold (0-1, default from config)")
	compareCmd.Flags().BoolVar(&compareConfidence, "confidence", false, "Score each overlap pair with a match confidence")
	compareCmd.Flags().StringVar(&compareExport, "export", "", "Export a subset as RIS: overlap, unique-a, or unique-b")
	compareCmd.Flags().StringVar(&compareOut, "out", "", "Output file for --export (default stdout)")
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare <dataset-a> <dataset-b>",
	Short: "Compare two RIS datasets",
	Long: `Compare two RIS datasets and report overlapping and unique records.

Records are matched by fingerprint: DOI when present, otherwise normalized
title plus year. A fuzzy pass then promotes near-identical titles from the
unique sets into the overlap; disable it with --no-fuzzy.

Datasets are RIS file paths or store:NAME library references.

Examples:
  refsift compare a.ris b.ris
  refsift compare store:screening1 b.ris --threshold 0.95
  refsift compare a.ris b.ris --confidence
  refsift compare a.ris b.ris --export unique-a --out new-in-a.ris`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

// OverlapEntry pairs an overlap record with its optional confidence score.
type OverlapEntry struct {
	Record     record.Record `json:"record"`
	Confidence float64       `json:"confidence,omitempty"`
	Reason     string        `json:"reason,omitempty"`
}

// CompareResponse is the compare command's JSON output.
type CompareResponse struct {
	DatasetA     string          `json:"dataset_a"`
	DatasetB     string          `json:"dataset_b"`
	TotalA       int             `json:"total_a"`
	TotalB       int             `json:"total_b"`
	OverlapCount int             `json:"overlap_count"`
	Overlap      []OverlapEntry  `json:"overlap"`
	UniqueA      []record.Record `json:"unique_a"`
	UniqueB      []record.Record `json:"unique_b"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	threshold := compareThreshold
	if threshold == 0 {
		threshold = cfg.Threshold()
	}
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("threshold %v out of range [0, 1]", threshold)
	}

	recsA := mustLoadDataset(cfg, args[0])
	recsB := mustLoadDataset(cfg, args[1])

	result := match.Compare(recsA, recsB, match.Options{
		UseFuzzy:  !compareNoFuzzy,
		Threshold: threshold,
	})

	if compareExport != "" {
		return exportSubset(result)
	}

	resp := CompareResponse{
		DatasetA:     datasetName(args[0]),
		DatasetB:     datasetName(args[1]),
		TotalA:       len(recsA),
		TotalB:       len(recsB),
		OverlapCount: len(result.Overlap),
		Overlap:      make([]OverlapEntry, 0, len(result.Overlap)),
		UniqueA:      result.UniqueA,
		UniqueB:      result.UniqueB,
	}
	for _, rec := range result.Overlap {
		entry := OverlapEntry{Record: rec}
		if compareConfidence {
			if other, ok := findCounterpart(rec, recsB, threshold); ok {
				entry.Confidence, entry.Reason = match.Score(rec, other)
			}
		}
		resp.Overlap = append(resp.Overlap, entry)
	}

	if humanOutput {
		printCompareHuman(resp)
		return nil
	}
	return outputJSON(resp)
}

// findCounterpart locates the B-side record that matched rec, by exact
// fingerprint first and fuzzy title otherwise.
func findCounterpart(rec record.Record, recsB []record.Record, threshold float64) (record.Record, bool) {
	key := match.Fingerprint(rec).String()
	for _, b := range recsB {
		if match.Fingerprint(b).String() == key {
			return b, true
		}
	}
	normA := match.NormalizeTitle(rec.Title)
	if normA == "" {
		return record.Record{}, false
	}
	for _, b := range recsB {
		normB := match.NormalizeTitle(b.Title)
		if normB == "" {
			continue
		}
		if match.YearToken(rec.Year, normA) != match.YearToken(b.Year, normB) {
			continue
		}
		if match.Similarity(normA, normB) >= threshold {
			return b, true
		}
	}
	return record.Record{}, false
}

// exportSubset writes the selected comparison bucket as RIS.
func exportSubset(result match.Result) error {
	var recs []record.Record
	switch compareExport {
	case "overlap":
		recs = result.Overlap
	case "unique-a":
		recs = result.UniqueA
	case "unique-b":
		recs = result.UniqueB
	default:
		return fmt.Errorf("unknown export subset %q (want overlap, unique-a, or unique-b)", compareExport)
	}

	if compareOut == "" {
		fmt.Print(ris.String(recs))
		return nil
	}
	if err := ris.WriteFile(compareOut, recs); err != nil {
		exitWithError(ExitError, "writing %s: %v", compareOut, err)
	}
	if humanOutput {
		fmt.Printf("Wrote %d records to %s\n", len(recs), compareOut)
	} else {
		outputJSON(StatusResponse{Status: fmt.Sprintf("exported %d records", len(recs)), Path: compareOut})
	}
	return nil
}

func printCompareHuman(resp CompareResponse) {
	fmt.Printf("%s (%d records) vs %s (%d records)\n\n", resp.DatasetA, resp.TotalA, resp.DatasetB, resp.TotalB)

	fmt.Printf("Overlap (%d):\n", resp.OverlapCount)
	for i, entry := range resp.Overlap {
		marker := ""
		if entry.Record.FuzzyMatch {
			marker = " [fuzzy]"
		}
		fmt.Printf("%d. %s%s\n", i+1, formatRecordLine(entry.Record), marker)
		if entry.Reason != "" {
			fmt.Printf("   confidence %.2f (%s)\n", entry.Confidence, entry.Reason)
		}
	}

	fmt.Printf("\nOnly in %s (%d):\n", resp.DatasetA, len(resp.UniqueA))
	printRecordsHuman(resp.UniqueA)

	fmt.Printf("\nOnly in %s (%d):\n", resp.DatasetB, len(resp.UniqueB))
	printRecordsHuman(resp.UniqueB)
}
