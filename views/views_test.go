package views

import (
	"bytes"
	"testing"

	"github.com/kevinke3/loket/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, page Page) string {
	t.Helper()
	engine, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, engine.Render(&buf, PageTemplate, page))
	return buf.String()
}

func TestRenderHome(t *testing.T) {
	html := render(t, Page{
		Title:   "Home",
		Missing: []models.MissingPerson{{ID: 1, Name: "Sarah Johnson", Age: models.IntPtr(28), Region: "Northeast"}},
		Found:   []models.FoundPerson{{ID: 1, Name: "Emily Rodriguez", ReunitedWith: "Family in Miami"}},
	})

	assert.Contains(t, html, "Sarah Johnson")
	assert.Contains(t, html, "Age 28")
	assert.Contains(t, html, `data-person-id="1"`)
	assert.Contains(t, html, "Reunited with Family in Miami")
	assert.Contains(t, html, `id="volunteerForm"`)
	assert.NotContains(t, html, `id="regionFilter"`)
}

func TestRenderBrowse(t *testing.T) {
	html := render(t, Page{
		Title:      "Browse",
		Regions:    []string{"Northeast", "Northwest"},
		BrowsePage: true,
	})

	assert.Contains(t, html, `<option value="Northwest">Northwest</option>`)
	assert.Contains(t, html, "No cases reported.")
}

func TestRenderReportEscapes(t *testing.T) {
	html := render(t, Page{Title: "<Report>", ReportPage: true})

	assert.Contains(t, html, `id="missingPersonForm"`)
	assert.Contains(t, html, "&lt;Report&gt;")
}

func TestRenderUnknownTemplate(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, engine.Render(&buf, "missing", Page{}))
}
