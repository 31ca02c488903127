package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/b24docs/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the documentation",
	Long: `Searches the Bitrix24 REST documentation with the configured backend.
The local index is scored by keyword presence in titles and previews;
the github backend uses GitHub code search.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// searchResult is the JSON shape of a match.
type searchResult struct {
	Slug    string  `json:"slug"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	if utf8.RuneCountInString(query) < domain.MinQueryLength {
		return fmt.Errorf("query must contain at least %d characters", domain.MinQueryLength)
	}

	b, err := openBackend(cmd.Context(), currentConfig())
	if err != nil {
		return err
	}

	matches, err := b.docs.Search(cmd.Context(), query, domain.ClampLimit(searchLimit))
	if err != nil {
		printHint(cmd, err)
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, matches)
	}
	outputSearchList(cmd, query, matches)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, matches []domain.Match) error {
	results := make([]searchResult, len(matches))
	for i, m := range matches {
		results[i] = searchResult{Slug: m.Slug, Title: m.Title, URL: m.URL, Snippet: m.Snippet, Score: m.Score}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchList(cmd *cobra.Command, query string, matches []domain.Match) {
	if len(matches) == 0 {
		cmd.Printf("No results for %q.\n", query)
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, m := range matches {
		title := m.Title
		if title == "" {
			title = m.Slug
		}

		cmd.Printf("  [%d] %s %s\n", i+1, titleStyle.Render(title),
			scoreStyle.Render("("+strconv.FormatFloat(m.Score, 'f', -1, 64)+")"))
		cmd.Printf("      %s\n", metaStyle.Render(m.URL))
		if m.Snippet != "" {
			cmd.Printf("      %s\n", m.Snippet)
		}
		cmd.Println()
	}
}
