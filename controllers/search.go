// path: controllers/search.go
package controllers

import (
	"errors"

	"github.com/kevinke3/loket/database"

	"github.com/gofiber/fiber/v2"
)

// HandleSearch filters the missing collection by ?q= and ?region=.
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	missing, err := h.store.LoadMissing(ctx)
	if err != nil {
		return h.serverErr(c, err)
	}
	return c.JSON(FilterMissing(missing, c.Query("q"), c.Query("region")))
}

// HandleGetMissing returns one case by id for the details view.
func (h *Handler) HandleGetMissing(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badReq(c, "invalid id")
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	person, err := database.FindMissing(ctx, h.store, id)
	if errors.Is(err, database.ErrNotFound) {
		return notFound(c, "case not found")
	}
	if err != nil {
		return h.serverErr(c, err)
	}
	return c.JSON(person)
}
