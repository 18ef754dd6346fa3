// Package server exposes the patch finder and the duration tools over HTTP.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vulnboard/vulnboard/pkg/db"
	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/types"
)

type Server struct {
	dbc    db.Operation
	filter types.Filter
	logger *log.Logger
}

// New builds the HTTP application. filter applies to the patch endpoints
// when a request does not carry its own.
func New(dbc db.Operation, filter types.Filter) *fiber.App {
	s := Server{dbc: dbc, filter: filter, logger: log.WithPrefix("server")}

	app := fiber.New(fiber.Config{
		AppName:               "vulnboard",
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
	})
	app.Use(fiberrecover.New())
	app.Use(s.requestLogger)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
		})
	})

	api := app.Group("/api/v1")
	api.Get("/patches", s.getPatches)
	api.Get("/patches/:package/versions", s.getVersions)
	api.Post("/durations", postDuration)
	api.Post("/estimates", postEstimate)
	api.Put("/estimates/:vuln", s.putEstimate)
	api.Get("/estimates/:vuln", s.getEstimate)

	return app
}

func (s Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Debug("Request", log.String("method", c.Method()), log.String("path", c.Path()),
		log.Int("status", c.Response().StatusCode()), log.String("elapsed", time.Since(start).String()))
	return err
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func internalError(c *fiber.Ctx, err error) error {
	log.Error("Request failed", log.String("path", c.Path()), log.Err(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}
