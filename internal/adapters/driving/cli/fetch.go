package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/b24docs/internal/core/domain"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [slug-or-url]",
	Short: "Print a documentation page",
	Long: `Fetches one document by slug, repository path or GitHub URL
(raw, blob or bare) and prints it as markdown.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	identifier := strings.TrimSpace(args[0])
	if identifier == "" {
		return errors.New("identifier must not be empty")
	}

	b, err := openBackend(cmd.Context(), currentConfig())
	if err != nil {
		return err
	}

	doc, err := b.docs.Fetch(cmd.Context(), identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("document %q not found: %w", identifier, err)
		}
		printHint(cmd, err)
		return fmt.Errorf("fetch failed: %w", err)
	}

	retrieved := doc.RetrievedAt
	if retrieved == "" {
		retrieved = "unknown"
	}

	cmd.Println(titleStyle.Render("# " + doc.DisplayTitle()))
	cmd.Println(metaStyle.Render("Source: " + doc.URL))
	cmd.Println(metaStyle.Render("Retrieved: " + retrieved))
	cmd.Println()
	cmd.Println(doc.Content)
	return nil
}
