package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	headerRequestID = "X-Request-ID"
	localRequestID  = "request_id"
)

// Register wires all HTTP routes onto the given Fiber app.
func Register(app *fiber.App, log zerolog.Logger, store *StoreHandler, editor *EditorHandler, health *HealthHandler) {
	app.Use(recover.New())
	app.Use(requestID())
	app.Use(accessLog(log))

	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Get("/load-resume", store.LoadResume)
	api.Post("/save-resume", store.SaveResume)
	api.Get("/revisions", store.Revisions)

	if editor == nil {
		return
	}
	ed := api.Group("/editor")
	ed.Get("/", editor.State)
	ed.Put("/text", editor.SetText)
	ed.Post("/save", editor.Save)
	ed.Post("/format", editor.Format)
	ed.Post("/toggle", editor.Toggle)

	api.Get("/preview", editor.PreviewJSON)
	app.Get("/preview", editor.PreviewHTML)
	app.Get("/preview.pdf", editor.PreviewPDF)
}

func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(localRequestID, id)
		c.Set(headerRequestID, id)
		return c.Next()
	}
}

func accessLog(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		requestLog(c, log).Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("took", time.Since(start)).
			Msg("request")
		return err
	}
}

func requestLog(c *fiber.Ctx, log zerolog.Logger) *zerolog.Logger {
	l := log
	if id, ok := c.Locals(localRequestID).(string); ok {
		l = log.With().Str("request_id", id).Logger()
	}
	return &l
}
