// path: controllers/report.go
package controllers

import (
	"strings"

	"github.com/kevinke3/loket/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HandleReportMissing accepts the report form as urlencoded, multipart or
// JSON, validates it and appends the record.
func (h *Handler) HandleReportMissing(c *fiber.Ctx) error {
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))

	var form models.MissingPersonForm
	switch {
	case strings.HasPrefix(ct, fiber.MIMEApplicationJSON):
		if err := decodeJSON(c, &form); err != nil {
			return badReq(c, "invalid JSON")
		}
	case strings.HasPrefix(ct, fiber.MIMEApplicationForm), strings.HasPrefix(ct, fiber.MIMEMultipartForm):
		if err := c.BodyParser(&form); err != nil {
			return badReq(c, "invalid form")
		}
	default:
		return c.Status(fiber.StatusUnsupportedMediaType).
			JSON(models.Result{Success: false, Message: "unsupported content type"})
	}

	person, err := form.ToMissingPerson(h.now())
	if err != nil {
		return badReq(c, err.Error())
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()
	stored, err := h.store.AppendMissing(ctx, person)
	if err != nil {
		return h.serverErr(c, err)
	}

	h.logger.Info("missing person reported",
		zap.Int("id", stored.ID),
		zap.String("region", stored.Region),
	)
	return c.Status(fiber.StatusOK).JSON(models.Result{Success: true, Message: "Report submitted successfully"})
}
