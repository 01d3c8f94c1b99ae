package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewApp builds the fiber application with all routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "schedsim",
		DisableStartupMessage: true,
	})
	SetupRoutes(app, h)
	return app
}

func SetupRoutes(app *fiber.App, h *Handler) {
	app.Use(loggerMiddleware)

	app.Get("/health", h.Health)

	v1 := app.Group("/api/v1")
	{
		v1.Get("/policies", h.ListPolicies)
		v1.Post("/schedule/:policy", h.Schedule)
		v1.Post("/compare", h.Compare)
	}

	logrus.Debug("Endpoints:")
	logrus.Debug("  GET  /api/v1/policies          - List scheduling policies")
	logrus.Debug("  POST /api/v1/schedule/:policy  - Simulate one policy (?trace=true for the dispatch trace)")
	logrus.Debug("  POST /api/v1/compare           - Simulate every policy on one workload")
	logrus.Debug("  GET  /health                   - Health check")
}

// Serve listens on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h *Handler) error {
	app := NewApp(h)
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()
	logrus.Infof("schedsim api listening on %s", addr)

	select {
	case err := <-errCh:
		return errors.Wrapf(err, "listen %s", addr)
	case <-ctx.Done():
		logrus.Info("shutting down api server")
		return errors.Wrap(app.Shutdown(), "shutdown")
	}
}
