package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_DisplayTitle(t *testing.T) {
	doc := &Document{Slug: "crm_lead", Title: "CRM Lead"}
	assert.Equal(t, "CRM Lead", doc.DisplayTitle())

	doc.Title = ""
	assert.Equal(t, "crm_lead", doc.DisplayTitle())
}

func TestEntry_DisplayTitle(t *testing.T) {
	assert.Equal(t, "CRM Deal", Entry{Slug: "crm_deal", Title: "CRM Deal"}.DisplayTitle())
	assert.Equal(t, "crm_deal", Entry{Slug: "crm_deal"}.DisplayTitle())
}

func TestLocator_String(t *testing.T) {
	loc := Locator{Repo: "bitrix24/b24restdocs", Path: "api-reference/crm/index.md"}
	assert.Equal(t, "bitrix24/b24restdocs:api-reference/crm/index.md", loc.String())
}
