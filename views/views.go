// path: views/views.go

// Package views holds the embedded page templates and the fiber view engine
// that renders them.
package views

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"

	"github.com/kevinke3/loket/models"
)

// PageTemplate is the template every page is rendered through. The section
// templates (home, browse, report, modals) are included by it.
const PageTemplate = "index"

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data behind every rendered page. The mode flags pick the main
// section; with neither set the home page is shown.
type Page struct {
	Title      string
	Missing    []models.MissingPerson
	Found      []models.FoundPerson
	Regions    []string
	BrowsePage bool
	ReportPage bool
}

// New returns the view engine for fiber.Config.Views. Templates are parsed
// up front so a broken template fails at startup instead of on a request.
func New() (*html.Engine, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return engine, nil
}
