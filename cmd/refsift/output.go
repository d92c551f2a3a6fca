package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/refsift/refsift/internal/record"
)

// Constants for output formatting.
const (
	ListTitleMaxLen   = 60 // Used in compare/dedupe listings
	SearchTitleMaxLen = 70 // Used in search result summaries
	MaxAuthorsShown   = 3  // Authors shown before "et al."
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatAuthors joins authors with "et al." past maxCount.
func formatAuthors(authors []string, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}
	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, a)
	}
	return strings.Join(names, ", ")
}

// formatRecordLine renders one record as a single human listing line.
func formatRecordLine(rec record.Record) string {
	year := rec.Year
	if year == "" {
		year = "n.d."
	}
	line := fmt.Sprintf("%s (%s)", truncateString(rec.Title, ListTitleMaxLen), year)
	if authors := formatAuthors(rec.Authors, MaxAuthorsShown); authors != "" {
		line += " - " + authors
	}
	return line
}

// printRecordsHuman prints a numbered record listing.
func printRecordsHuman(recs []record.Record) {
	for i, rec := range recs {
		fmt.Printf("%d. %s\n", i+1, formatRecordLine(rec))
	}
}
