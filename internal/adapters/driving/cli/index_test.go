package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/b24docs/internal/core/domain"
)

// checkout writes a small documentation checkout and returns its root.
func checkout(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"api-reference/crm/deal.md":   "# crm.deal.add\n\nAdds a **deal**.",
		"tutorials/first-app.md":      "## First application\n\nStep one.",
		"README.md":                   "# Not indexed",
		"api-reference/crm/notes.txt": "ignored",
	}
	for p, content := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
	return root
}

// indexConfig writes a config file pointing the index into a temp dir and
// returns the config path and the index path.
func indexConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "data", "index", "simple_index.json")
	cfgPath := filepath.Join(dir, "b24docs.toml")
	content := fmt.Sprintf("index_path = '%s'\n\n[github]\nbranch = 'master'\n", indexPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	return cfgPath, indexPath
}

func TestIndexBuildCmd_Flags(t *testing.T) {
	for _, name := range []string{"source", "watch", "dry-run", "include"} {
		assert.NotNil(t, indexBuildCmd.Flags().Lookup(name), name)
	}
}

func TestIndexBuildCmd_FromLocalCheckout(t *testing.T) {
	root := checkout(t)
	cfgPath, indexPath := indexConfig(t)

	out, err := execute(t, "--config", cfgPath, "index", "build", "--source", root)

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 2 documents into "+indexPath)

	raw, err := os.ReadFile(indexPath)
	require.NoError(t, err)

	var entries []domain.Entry
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "api-reference_crm_deal", entries[0].Slug)
	assert.Equal(t, "crm.deal.add", entries[0].Title)
	assert.Equal(t,
		"https://github.com/bitrix24/b24restdocs/blob/master/api-reference/crm/deal.md",
		entries[0].URL)
	assert.Equal(t, "processed/markdown/api-reference_crm_deal.md", entries[0].MarkdownPath)
	assert.NotEmpty(t, entries[0].RetrievedAt)

	assert.Equal(t, "tutorials_first-app", entries[1].Slug)

	body, err := os.ReadFile(filepath.Join(filepath.Dir(filepath.Dir(indexPath)),
		"processed", "markdown", "api-reference_crm_deal.md"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "Adds a **deal**.")
}

func TestIndexBuildCmd_Include(t *testing.T) {
	root := checkout(t)
	cfgPath, _ := indexConfig(t)

	out, err := execute(t, "--config", cfgPath, "index", "build", "--source", root, "--include", "tutorials")

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 1 documents")
}

func TestIndexBuildCmd_DryRun(t *testing.T) {
	root := checkout(t)
	cfgPath, indexPath := indexConfig(t)

	out, err := execute(t, "--config", cfgPath, "index", "build", "--source", root, "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 2 documents into memory (dry run)")
	assert.NoFileExists(t, indexPath)
}

func TestIndexBuildCmd_WatchRequiresSource(t *testing.T) {
	_, err := execute(t, "index", "build", "--watch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch requires --source")
}

func TestIndexBuildCmd_MissingSource(t *testing.T) {
	cfgPath, indexPath := indexConfig(t)

	_, err := execute(t, "--config", cfgPath, "index", "build", "--source", filepath.Join(t.TempDir(), "absent"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLocalIO)
	assert.NoFileExists(t, indexPath)
}
