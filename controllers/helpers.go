// path: controllers/helpers.go
package controllers

import (
	"context"
	"errors"
	"strings"

	"github.com/kevinke3/loket/models"
	"github.com/kevinke3/loket/views"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func badReq(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.Result{Success: false, Message: msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(models.Result{Success: false, Message: msg})
}

// serverErr logs the cause and hides it from the client.
func (h *Handler) serverErr(c *fiber.Ctx, err error) error {
	h.logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(models.Result{Success: false, Message: "internal error"})
}

// storeCtx bounds one storage call by the configured timeout.
func (h *Handler) storeCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), h.timeout)
}

func (h *Handler) render(c *fiber.Ctx, page views.Page) error {
	if err := c.Render(views.PageTemplate, page); err != nil {
		return h.serverErr(c, err)
	}
	return nil
}

// decodeJSON reads the request body with the app's JSON decoder regardless
// of the declared content type.
func decodeJSON(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return models.ErrMissingPayload
	}
	return c.App().Config().JSONDecoder(body, v)
}

// ErrorHandler renders errors that escape a handler, including recovered
// panics and fiber's own routing errors, as the JSON envelope.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "internal error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(models.Result{Success: false, Message: msg})
	}
}
