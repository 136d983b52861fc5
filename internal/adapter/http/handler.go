package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"resume-editor/internal/adapter/repository"
	"resume-editor/internal/domain"
)

// StoreHandler serves the raw document slot: the load and save endpoints the
// editor and resumectl talk to.
type StoreHandler struct {
	backend repository.Backend
	history repository.HistoryReader
	timeout time.Duration
	log     zerolog.Logger
}

// NewStoreHandler serves b. history may be nil when the backend keeps no
// revisions.
func NewStoreHandler(b repository.Backend, history repository.HistoryReader, timeout time.Duration, log zerolog.Logger) *StoreHandler {
	return &StoreHandler{backend: b, history: history, timeout: timeout, log: log.With().Str("component", "store_http").Logger()}
}

// LoadResume returns the stored bytes untouched.
func (h *StoreHandler) LoadResume(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	body, err := h.backend.Load(ctx)
	switch {
	case err == nil:
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusOK).Send(body)
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resume file not found"})
	default:
		requestLog(c, h.log).Error().Stack().Err(err).Msg("load failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load resume"})
	}
}

// SaveResume replaces the slot with the request body. Only JSON syntax is
// checked here; content validation belongs to the editor.
func (h *StoreHandler) SaveResume(c *fiber.Ctx) error {
	// fiber reuses the request buffer once the handler returns.
	body := append([]byte(nil), c.Body()...)

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	err := h.backend.Replace(ctx, body)
	switch {
	case err == nil:
		requestLog(c, h.log).Info().Int("bytes", len(body)).Msg("document replaced")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
	case errors.Is(err, domain.ErrValidationRejected):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	default:
		requestLog(c, h.log).Error().Stack().Err(err).Msg("save failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save resume"})
	}
}

// Revisions lists recent accepted writes, newest first.
func (h *StoreHandler) Revisions(c *fiber.Ctx) error {
	if h.history == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Revision history not available"})
	}
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	revs, err := h.history.History(ctx, limit)
	if err != nil {
		requestLog(c, h.log).Error().Stack().Err(err).Msg("list revisions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list revisions"})
	}
	return c.JSON(fiber.Map{"revisions": revs})
}
