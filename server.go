// path: server.go
package main

import (
	"time"

	"github.com/kevinke3/loket/config"
	"github.com/kevinke3/loket/controllers"
	"github.com/kevinke3/loket/database"
	"github.com/kevinke3/loket/logging"
	"github.com/kevinke3/loket/routes"
	"github.com/kevinke3/loket/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// newApp wires middleware, static assets and routes around store.
func newApp(cfg config.Config, store database.Store, logger *zap.Logger) (*fiber.App, error) {
	engine, err := views.New()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "loket",
		DisableStartupMessage: true,
		Views:                 engine,
		ErrorHandler:          controllers.ErrorHandler(logger),
	})
	app.Use(requestid.New())
	app.Use(logging.Requests(logger))
	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins(),
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "*",
		AllowCredentials: false,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}))

	app.Static("/static", cfg.StaticDir)

	routes.Register(app, controllers.New(store, logger, cfg.StoreTimeout))
	return app, nil
}
