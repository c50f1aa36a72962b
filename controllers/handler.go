// path: controllers/handler.go
package controllers

import (
	"time"

	"github.com/kevinke3/loket/database"

	"go.uber.org/zap"
)

const (
	homeMissingLimit = 6
	homeFoundLimit   = 3
)

// Handler holds what every route needs. It keeps no request state.
type Handler struct {
	store   database.Store
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

// New builds the handler set. Pages render through the view engine set on
// the fiber app.
func New(store database.Store, logger *zap.Logger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Handler{
		store:   store,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
	}
}
