// path: routes/routes.go
package routes

import (
	"github.com/kevinke3/loket/controllers"

	"github.com/gofiber/fiber/v2"
)

// Register attaches all page and API endpoints to the app.
func Register(app *fiber.App, h *controllers.Handler) {
	app.Get("/", h.HandleHome)
	app.Get("/browse", h.HandleBrowse)

	app.Get("/report-missing", h.HandleReportForm)
	app.Post("/report-missing", h.HandleReportMissing)

	app.Post("/report-sighting", h.HandleReportSighting)
	app.Post("/volunteer-signup", h.HandleVolunteerSignup)

	app.Get("/search", h.HandleSearch)
	app.Get("/missing/:id", h.HandleGetMissing)

	// Health
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
}
