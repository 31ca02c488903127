package mcp

import (
	"context"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/b24docs/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestResourceURI(t *testing.T) {
	assert.Equal(t, "bitrix24-docs://docs/crm_lead_add", ResourceURI("crm_lead_add"))
}

func TestServer_resourceHandler(t *testing.T) {
	ctx := context.Background()
	entry := domain.Entry{Slug: "crm_lead", Title: "CRM Lead", URL: "https://x/lead"}

	t.Run("returns formatted document", func(t *testing.T) {
		catalog := &mockCatalogService{
			entries: []domain.Entry{entry},
			docs: map[string]*domain.Document{
				"crm_lead": {Slug: "crm_lead", Title: "CRM Lead", URL: "https://x/lead", Content: "body", RetrievedAt: "2025-01-01T00:00:00Z"},
			},
		}
		server, err := NewServer(&Ports{Docs: &mockDocsService{}, Catalog: catalog}, Options{})
		require.NoError(t, err)

		result, err := server.resourceHandler(entry)(ctx, makeReadResourceRequest(ResourceURI("crm_lead")))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "bitrix24-docs://docs/crm_lead", result.Contents[0].URI)
		assert.Equal(t, "text/markdown", result.Contents[0].MIMEType)
		assert.Equal(t, "# CRM Lead\nSource: https://x/lead\nRetrieved: 2025-01-01T00:00:00Z\n\nbody", result.Contents[0].Text)
	})

	t.Run("read failure is reported as text", func(t *testing.T) {
		catalog := &mockCatalogService{
			entries: []domain.Entry{entry},
			err:     fmt.Errorf("%w: open x.md: permission denied", domain.ErrLocalIO),
		}
		server, err := NewServer(&Ports{Docs: &mockDocsService{}, Catalog: catalog}, Options{})
		require.NoError(t, err)

		result, err := server.resourceHandler(entry)(ctx, makeReadResourceRequest(ResourceURI("crm_lead")))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "Failed to read resource: local file unreadable: open x.md: permission denied", result.Contents[0].Text)
	})

	t.Run("panic is reported as text", func(t *testing.T) {
		catalog := &mockCatalogService{entries: []domain.Entry{entry}, panic: "boom"}
		server, err := NewServer(&Ports{Docs: &mockDocsService{}, Catalog: catalog}, Options{})
		require.NoError(t, err)

		result, err := server.resourceHandler(entry)(ctx, makeReadResourceRequest(ResourceURI("crm_lead")))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "Internal server error", result.Contents[0].Text)
	})
}

func TestServer_registerResources(t *testing.T) {
	t.Run("one resource per entry", func(t *testing.T) {
		catalog := &mockCatalogService{entries: []domain.Entry{
			{Slug: "a", Title: "Alpha", URL: "https://x/a"},
			{Slug: "b", URL: "https://x/b"},
		}}
		server, err := NewServer(&Ports{Docs: &mockDocsService{}, Catalog: catalog}, Options{})
		require.NoError(t, err)

		session := connect(t, server)
		list, err := session.ListResources(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, list.Resources, 2)

		byURI := map[string]*mcp.Resource{}
		for _, r := range list.Resources {
			byURI[r.URI] = r
		}
		a := byURI["bitrix24-docs://docs/a"]
		require.NotNil(t, a)
		assert.Equal(t, "bitrix24-doc-a", a.Name)
		assert.Equal(t, "Alpha", a.Title)
		assert.Equal(t, "Bitrix24 documentation. Source URL: https://x/a", a.Description)
		assert.Equal(t, "text/markdown", a.MIMEType)

		b := byURI["bitrix24-docs://docs/b"]
		require.NotNil(t, b)
		assert.Equal(t, "b", b.Title, "title falls back to the slug")
	})

	t.Run("no catalog means no resources", func(t *testing.T) {
		server, err := NewServer(&Ports{Docs: &mockDocsService{}}, Options{Backend: "github"})
		require.NoError(t, err)

		session := connect(t, server)
		list, err := session.ListResources(context.Background(), nil)
		if err == nil {
			assert.Empty(t, list.Resources)
		}
	})
}
