package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/b24docs/internal/core/domain"
)

func newTestIndexService(t *testing.T, entries []domain.Entry, store *mockMarkdownStore) *IndexService {
	t.Helper()
	catalog, err := domain.NewCatalog(entries)
	require.NoError(t, err)
	if store == nil {
		store = &mockMarkdownStore{}
	}
	return NewIndexService(catalog, store)
}

func leadAndDeal() []domain.Entry {
	return []domain.Entry{
		{
			Slug:         "crm_lead",
			URL:          "https://apidocs.bitrix24.ru/crm_lead",
			Title:        "CRM Lead",
			TextPreview:  "manage leads fast",
			MarkdownPath: "processed/markdown/crm_lead.md",
			RetrievedAt:  "2025-01-01T00:00:00Z",
		},
		{
			Slug:         "crm_deal",
			URL:          "https://apidocs.bitrix24.ru/crm_deal",
			Title:        "CRM Deal",
			TextPreview:  "manage deals",
			MarkdownPath: "processed/markdown/crm_deal.md",
		},
	}
}

func TestIndexService_Search_SingleTitleHit(t *testing.T) {
	svc := newTestIndexService(t, leadAndDeal(), nil)

	matches, err := svc.Search(context.Background(), "lead", 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	// "leads" in the preview is a different word; only the title scores.
	assert.Equal(t, "crm_lead", matches[0].Slug)
	assert.Equal(t, "CRM Lead", matches[0].Title)
	assert.Equal(t, "https://apidocs.bitrix24.ru/crm_lead", matches[0].URL)
	assert.Equal(t, float64(3), matches[0].Score)
	assert.Equal(t, "manage leads fast", matches[0].Snippet)
}

func TestIndexService_Search_TitleOnlyScoresThree(t *testing.T) {
	entries := []domain.Entry{
		{Slug: "crm_lead", URL: "u1", Title: "CRM Lead", TextPreview: "lead preview"},
		{Slug: "crm_deal", URL: "u2", Title: "CRM Deal", TextPreview: "deal preview"},
	}
	svc := newTestIndexService(t, entries, nil)

	matches, err := svc.Search(context.Background(), "crm", 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, float64(3), matches[0].Score)
	assert.Equal(t, float64(3), matches[1].Score)

	matches, err = svc.Search(context.Background(), "deal", 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "crm_deal", matches[0].Slug)
	assert.Equal(t, float64(4), matches[0].Score)
}

func TestIndexService_Search_ExampleLeadOnly(t *testing.T) {
	entries := []domain.Entry{
		{Slug: "crm_lead", URL: "u1", Title: "CRM Lead", TextPreview: "manage leads fast"},
		{Slug: "crm_deal", URL: "u2", Title: "CRM Deal", TextPreview: "manage deals"},
	}
	svc := newTestIndexService(t, entries, nil)

	matches, err := svc.Search(context.Background(), "Lead", 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "crm_lead", matches[0].Slug)
	assert.Equal(t, float64(3), matches[0].Score)
}

func TestIndexService_Search_PreviewOnlyScore(t *testing.T) {
	entries := []domain.Entry{
		{Slug: "only_title", URL: "u1", Title: "Webhooks"},
		{Slug: "only_preview", URL: "u2", Title: "Events", TextPreview: "outgoing webhooks are sent"},
	}
	svc := newTestIndexService(t, entries, nil)

	matches, err := svc.Search(context.Background(), "webhooks", 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "only_title", matches[0].Slug)
	assert.Equal(t, float64(3), matches[0].Score)
	assert.Empty(t, matches[0].Snippet)
	assert.Equal(t, "only_preview", matches[1].Slug)
	assert.Equal(t, float64(1), matches[1].Score)
}

func TestIndexService_Search_ZeroOverlapOmitted(t *testing.T) {
	svc := newTestIndexService(t, leadAndDeal(), nil)

	matches, err := svc.Search(context.Background(), "invoice", 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.NotNil(t, matches)
}

func TestIndexService_Search_EmptyQuery(t *testing.T) {
	svc := newTestIndexService(t, leadAndDeal(), nil)

	for _, q := range []string{"", "   ", "\n\t"} {
		matches, err := svc.Search(context.Background(), q, 5)
		require.NoError(t, err)
		assert.Empty(t, matches)
	}
}

func TestIndexService_Search_TokenOrderIndependent(t *testing.T) {
	svc := newTestIndexService(t, leadAndDeal(), nil)

	a, err := svc.Search(context.Background(), "crm lead manage", 20)
	require.NoError(t, err)
	b, err := svc.Search(context.Background(), "manage lead crm", 20)
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Slug, b[i].Slug)
		assert.Equal(t, a[i].Score, b[i].Score)
	}
}

func TestIndexService_Search_SortedByScoreStable(t *testing.T) {
	entries := []domain.Entry{
		{Slug: "a", URL: "ua", Title: "Other", TextPreview: "deal"},
		{Slug: "b", URL: "ub", Title: "Deal"},
		{Slug: "c", URL: "uc", Title: "Other", TextPreview: "deal again"},
		{Slug: "d", URL: "ud", Title: "Deal", TextPreview: "deal"},
	}
	svc := newTestIndexService(t, entries, nil)

	matches, err := svc.Search(context.Background(), "deal", 20)
	require.NoError(t, err)
	require.Len(t, matches, 4)

	slugs := make([]string, len(matches))
	for i, m := range matches {
		slugs[i] = m.Slug
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, slugs)
}

func TestIndexService_Search_Limits(t *testing.T) {
	entries := make([]domain.Entry, 30)
	for i := range entries {
		entries[i] = domain.Entry{
			Slug:        fmt.Sprintf("doc_%02d", i),
			URL:         fmt.Sprintf("https://example.com/%d", i),
			Title:       "Method reference",
			TextPreview: "method",
		}
	}
	svc := newTestIndexService(t, entries, nil)

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, domain.DefaultSearchLimit},
		{"one", 1, 1},
		{"ten", 10, 10},
		{"max", 20, 20},
		{"capped", 50, domain.MaxSearchLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := svc.Search(context.Background(), "method", tt.limit)
			require.NoError(t, err)
			assert.Len(t, matches, tt.want)
		})
	}
}

func TestIndexService_Fetch_BySlug(t *testing.T) {
	store := &mockMarkdownStore{files: map[string]string{
		"processed/markdown/crm_lead.md": "# CRM Lead\n\nbody",
	}}
	svc := newTestIndexService(t, leadAndDeal(), store)

	doc, err := svc.Fetch(context.Background(), "crm_lead")
	require.NoError(t, err)
	assert.Equal(t, "crm_lead", doc.Slug)
	assert.Equal(t, "CRM Lead", doc.Title)
	assert.Equal(t, "https://apidocs.bitrix24.ru/crm_lead", doc.URL)
	assert.Equal(t, "# CRM Lead\n\nbody", doc.Content)
	assert.Equal(t, "2025-01-01T00:00:00Z", doc.RetrievedAt)
	assert.Equal(t, "processed/markdown/crm_lead.md", doc.Path)
}

func TestIndexService_Fetch_ByURL(t *testing.T) {
	store := &mockMarkdownStore{files: map[string]string{
		"processed/markdown/crm_deal.md": "deal body",
	}}
	svc := newTestIndexService(t, leadAndDeal(), store)

	doc, err := svc.Fetch(context.Background(), " https://apidocs.bitrix24.ru/crm_deal ")
	require.NoError(t, err)
	assert.Equal(t, "crm_deal", doc.Slug)
	assert.Equal(t, "deal body", doc.Content)
	assert.Empty(t, doc.RetrievedAt)
}

func TestIndexService_Fetch_NotFound(t *testing.T) {
	store := &mockMarkdownStore{}
	svc := newTestIndexService(t, leadAndDeal(), store)

	doc, err := svc.Fetch(context.Background(), "crm_contact")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "crm_contact")
	assert.Empty(t, store.reads, "no file read for unknown identifiers")
}

func TestIndexService_Fetch_LocalIOError(t *testing.T) {
	store := &mockMarkdownStore{files: map[string]string{}}
	svc := newTestIndexService(t, leadAndDeal(), store)

	doc, err := svc.Fetch(context.Background(), "crm_lead")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrLocalIO)
}

func TestIndexService_EntriesAndRead(t *testing.T) {
	store := &mockMarkdownStore{files: map[string]string{
		"processed/markdown/crm_deal.md": "deal body",
	}}
	svc := newTestIndexService(t, leadAndDeal(), store)

	entries := svc.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "crm_lead", entries[0].Slug)

	doc, err := svc.Read(context.Background(), "crm_deal")
	require.NoError(t, err)
	assert.Equal(t, "deal body", doc.Content)

	_, err = svc.Read(context.Background(), "https://apidocs.bitrix24.ru/crm_deal")
	assert.ErrorIs(t, err, domain.ErrNotFound, "Read accepts slugs only")
}
