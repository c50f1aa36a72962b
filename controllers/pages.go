// path: controllers/pages.go
package controllers

import (
	"github.com/kevinke3/loket/models"
	"github.com/kevinke3/loket/views"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// HandleHome renders the landing page with the most recent cases.
func (h *Handler) HandleHome(c *fiber.Ctx) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	var (
		missing []models.MissingPerson
		found   []models.FoundPerson
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		missing, err = h.store.LoadMissing(gctx)
		return err
	})
	g.Go(func() (err error) {
		found, err = h.store.LoadFound(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return h.serverErr(c, err)
	}

	return h.render(c, views.Page{
		Title:   "Home",
		Missing: Head(missing, homeMissingLimit),
		Found:   Head(found, homeFoundLimit),
	})
}

// HandleBrowse renders every case plus the region filter options.
func (h *Handler) HandleBrowse(c *fiber.Ctx) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	missing, err := h.store.LoadMissing(ctx)
	if err != nil {
		return h.serverErr(c, err)
	}
	return h.render(c, views.Page{
		Title:      "Browse cases",
		Missing:    missing,
		Regions:    DistinctRegions(missing),
		BrowsePage: true,
	})
}

// HandleReportForm renders the empty report form.
func (h *Handler) HandleReportForm(c *fiber.Ctx) error {
	return h.render(c, views.Page{Title: "Report a missing person", ReportPage: true})
}
