package main

import (
	"fmt"
	"os"

	"github.com/refsift/refsift/internal/match"
	"github.com/refsift/refsift/internal/pdf"
	"github.com/refsift/refsift/internal/record"
	"github.com/spf13/cobra"
)

var lookupPDF string

func init() {
	lookupCmd.Flags().StringVar(&lookupPDF, "pdf", "", "PDF file to identify")
	lookupCmd.MarkFlagRequired("pdf")
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <dataset> --pdf paper.pdf",
	Short: "Find a PDF's record in a dataset",
	Long: `Find the dataset record matching a PDF.

The PDF's front matter is scanned for a DOI; if none is found, the first
substantial line of page one is tried as a title. The best dataset match is
reported with a confidence score.

Examples:
  refsift lookup refs.ris --pdf downloaded.pdf
  refsift lookup store:screening1 --pdf paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

// LookupResponse is the lookup command's JSON output.
type LookupResponse struct {
	PDF        string         `json:"pdf"`
	DOI        string         `json:"doi,omitempty"`
	Title      string         `json:"title,omitempty"`
	Found      bool           `json:"found"`
	Record     *record.Record `json:"record,omitempty"`
	Confidence float64        `json:"confidence,omitempty"`
	Reason     string         `json:"reason,omitempty"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	recs := mustLoadDataset(cfg, args[0])

	doi, err := pdf.ExtractDOI(lookupPDF)
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", lookupPDF, err)
	}

	probe := record.Record{DOI: doi}
	resp := LookupResponse{PDF: lookupPDF, DOI: doi}

	if doi == "" {
		title, err := pdf.ExtractTitle(lookupPDF)
		if err != nil {
			exitWithError(ExitDataError, "reading %s: %v", lookupPDF, err)
		}
		if title == "" {
			exitWithError(ExitNotFound, "no DOI or title found in %s", lookupPDF)
		}
		probe.Title = title
		resp.Title = title
	}

	if best, ok := bestMatch(probe, recs); ok {
		rec := best
		resp.Found = true
		resp.Record = &rec
		resp.Confidence, resp.Reason = match.Score(probe, best)
	}

	if humanOutput {
		printLookupHuman(resp)
	} else {
		outputJSON(resp)
	}
	if !resp.Found {
		os.Exit(ExitNotFound)
	}
	return nil
}

// bestMatch finds the dataset record closest to the probe: exact fingerprint
// first, then the highest-similarity title above the default threshold.
func bestMatch(probe record.Record, recs []record.Record) (record.Record, bool) {
	key := match.Fingerprint(probe).String()
	for _, rec := range recs {
		if match.Fingerprint(rec).String() == key {
			return rec, true
		}
	}

	if probe.DOI != "" {
		// DOI fingerprints only match exactly
		return record.Record{}, false
	}

	normProbe := match.NormalizeTitle(probe.Title)
	if normProbe == "" {
		return record.Record{}, false
	}
	bestSim := 0.0
	var best record.Record
	found := false
	for _, rec := range recs {
		norm := match.NormalizeTitle(rec.Title)
		if norm == "" {
			continue
		}
		if sim := match.Similarity(normProbe, norm); sim >= match.DefaultThreshold && sim > bestSim {
			bestSim, best, found = sim, rec, true
		}
	}
	return best, found
}

func printLookupHuman(resp LookupResponse) {
	if resp.DOI != "" {
		fmt.Printf("Extracted DOI: %s\n", resp.DOI)
	} else {
		fmt.Printf("No DOI in PDF; trying title: %s\n", resp.Title)
	}
	if !resp.Found {
		fmt.Println("No matching record found.")
		return
	}
	fmt.Printf("Match (confidence %.2f, %s):\n", resp.Confidence, resp.Reason)
	fmt.Printf("  %s\n", formatRecordLine(*resp.Record))
	if resp.Record.Journal != "" {
		fmt.Printf("  %s\n", resp.Record.Journal)
	}
}
