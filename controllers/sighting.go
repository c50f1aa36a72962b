// path: controllers/sighting.go
package controllers

import (
	"github.com/kevinke3/loket/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sightings and volunteer sign-ups are acknowledged and logged only. The
// reference ties the client's receipt to the log line.

func (h *Handler) HandleReportSighting(c *fiber.Ctx) error {
	var report models.SightingReport
	if err := decodeJSON(c, &report); err != nil {
		return badReq(c, "invalid JSON")
	}

	ref := uuid.NewString()
	h.logger.Info("sighting reported",
		zap.String("reference", ref),
		zap.String("person_id", report.PersonID),
		zap.String("location", report.Location),
		zap.String("date", report.Date),
		zap.String("details", report.Details),
		zap.String("reporter_name", report.ReporterName),
		zap.String("reporter_contact", report.ReporterContact),
	)
	return c.JSON(models.Result{Success: true, Message: "Sighting report received", Reference: ref})
}

func (h *Handler) HandleVolunteerSignup(c *fiber.Ctx) error {
	var signup map[string]any
	if err := decodeJSON(c, &signup); err != nil {
		return badReq(c, "invalid JSON")
	}
	if signup == nil {
		return badReq(c, models.ErrMissingPayload.Error())
	}

	ref := uuid.NewString()
	h.logger.Info("volunteer signed up",
		zap.String("reference", ref),
		zap.Any("volunteer", signup),
	)
	return c.JSON(models.Result{Success: true, Message: "Thank you for signing up as a volunteer", Reference: ref})
}
