package main

import (
	"fmt"
	"strings"

	"github.com/refsift/refsift/internal/query"
	"github.com/refsift/refsift/internal/record"
	"github.com/spf13/cobra"
)

var searchFields []string

func init() {
	searchCmd.Flags().StringSliceVar(&searchFields, "fields", nil, "Fields to search (title, abstract, keywords; default from config)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <dataset> <query>",
	Short: "Search a dataset with a Boolean query",
	Long: `Search a dataset with a Boolean query.

Queries support AND/OR (AND binds tighter), parentheses, quoted phrases,
* wildcards, and field scopes (term:title, term:abstract, term:keywords).
Adjacent terms combine with an implicit AND.

Examples:
  refsift search refs.ris 'machine AND learning'
  refsift search store:screening1 '("ChatGPT" OR "LLM") AND "Risk Assessment"'
  refsift search refs.ris 'assess*:title'
  refsift search refs.ris 'neural' --fields title,abstract`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

// SearchHit is one matching record with its highlight spans.
type SearchHit struct {
	Index            int                     `json:"index"`
	Record           record.Record           `json:"record"`
	FieldMatches     map[string][]query.Span `json:"field_matches,omitempty"`
	TotalOccurrences int                     `json:"total_occurrences"`
}

// SearchResponse is the search command's JSON output.
type SearchResponse struct {
	Dataset string      `json:"dataset"`
	Query   string      `json:"query"`
	Total   int         `json:"total"`
	Matched int         `json:"matched"`
	Hits    []SearchHit `json:"hits"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	fields := searchFields
	if len(fields) == 0 {
		fields = cfg.Fields()
	}
	for _, f := range fields {
		if !validSearchField(f) {
			return fmt.Errorf("unknown search field %q (want title, abstract, or keywords)", f)
		}
	}

	node, err := query.Parse(args[1])
	if err != nil {
		if serr, ok := err.(*query.SyntaxError); ok {
			exitWithError(ExitQueryError, "query syntax error at position %d: %s", serr.Pos, serr.Msg)
		}
		exitWithError(ExitQueryError, "parsing query: %v", err)
	}

	recs := mustLoadDataset(cfg, args[0])

	resp := SearchResponse{
		Dataset: datasetName(args[0]),
		Query:   args[1],
		Total:   len(recs),
		Hits:    []SearchHit{},
	}
	for i, rec := range recs {
		result := query.Evaluate(node, rec.SearchFields(fields...))
		if !result.Matched {
			continue
		}
		resp.Hits = append(resp.Hits, SearchHit{
			Index:            i,
			Record:           rec,
			FieldMatches:     result.FieldMatches,
			TotalOccurrences: result.TotalOccurrences,
		})
	}
	resp.Matched = len(resp.Hits)

	if humanOutput {
		printSearchHuman(resp, fields)
		return nil
	}
	return outputJSON(resp)
}

func validSearchField(name string) bool {
	for _, f := range record.SearchFieldNames {
		if f == name {
			return true
		}
	}
	return false
}

func printSearchHuman(resp SearchResponse, fields []string) {
	fmt.Printf("%d of %d records match %q\n\n", resp.Matched, resp.Total, resp.Query)
	for i, hit := range resp.Hits {
		fmt.Printf("%d. %s\n", i+1, truncateString(hit.Record.Title, SearchTitleMaxLen))
		if authors := formatAuthors(hit.Record.Authors, MaxAuthorsShown); authors != "" {
			fmt.Printf("   %s (%s)\n", authors, hit.Record.Year)
		}
		for _, field := range fields {
			spans := hit.FieldMatches[field]
			if len(spans) == 0 {
				continue
			}
			fmt.Printf("   %s: %s\n", field, highlightField(hit.Record.SearchField(field), spans))
		}
		fmt.Println()
	}
}

// highlightField wraps matched spans in >>...<< markers.
func highlightField(text string, spans []query.Span) string {
	var b strings.Builder
	last := 0
	for _, s := range spans {
		if s.Start < last || s.End > len(text) {
			continue
		}
		b.WriteString(text[last:s.Start])
		b.WriteString(">>")
		b.WriteString(text[s.Start:s.End])
		b.WriteString("<<")
		last = s.End
	}
	b.WriteString(text[last:])
	return truncateString(b.String(), 160)
}
