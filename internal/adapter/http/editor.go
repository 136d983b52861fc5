package http

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"resume-editor/internal/domain"
	"resume-editor/internal/model"
	"resume-editor/internal/usecase"
	"resume-editor/internal/view"
)

// EditorHandler exposes the edit buffer and the live preview.
type EditorHandler struct {
	editor   *usecase.Editor
	exporter *usecase.Exporter
	timeout  time.Duration
	log      zerolog.Logger
}

func NewEditorHandler(e *usecase.Editor, x *usecase.Exporter, timeout time.Duration, log zerolog.Logger) *EditorHandler {
	return &EditorHandler{editor: e, exporter: x, timeout: timeout, log: log.With().Str("component", "editor_http").Logger()}
}

type validationErrorResponse struct {
	Kind    string   `json:"kind"`
	Field   string   `json:"field,omitempty"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type editorStateResponse struct {
	Status    domain.Status            `json:"status"`
	Text      string                   `json:"text"`
	SavedText string                   `json:"savedText"`
	Dirty     bool                     `json:"dirty"`
	Collapsed bool                     `json:"collapsed"`
	Version   uint64                   `json:"version"`
	Error     *validationErrorResponse `json:"error"`
}

type editResponse struct {
	Status  domain.Status            `json:"status"`
	Dirty   bool                     `json:"dirty"`
	Applied bool                     `json:"applied"`
	Version uint64                   `json:"version"`
	Error   *validationErrorResponse `json:"error"`
}

func toValidationResponse(e *model.ValidationError) *validationErrorResponse {
	if e == nil {
		return nil
	}
	return &validationErrorResponse{Kind: e.Kind.String(), Field: e.Field, Message: e.Message(), Details: e.Details}
}

func toEditResponse(r usecase.EditResult) editResponse {
	return editResponse{Status: r.Status, Dirty: r.Dirty, Applied: r.Applied, Version: r.Version, Error: toValidationResponse(r.Error)}
}

func (h *EditorHandler) State(c *fiber.Ctx) error {
	s := h.editor.Snapshot()
	return c.JSON(editorStateResponse{
		Status:    s.Status,
		Text:      s.RawText,
		SavedText: s.SavedText,
		Dirty:     s.Dirty,
		Collapsed: s.Collapsed,
		Version:   s.Version,
		Error:     toValidationResponse(s.Error),
	})
}

// SetText takes the raw request body as the new editor text.
func (h *EditorHandler) SetText(c *fiber.Ctx) error {
	res, err := h.editor.OnTextChanged(string(c.Body()))
	if err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(toEditResponse(res))
}

func (h *EditorHandler) Format(c *fiber.Ctx) error {
	res, err := h.editor.Format()
	if err != nil {
		return lifecycleError(c, err)
	}
	return c.JSON(toEditResponse(res))
}

func (h *EditorHandler) Save(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	res, err := h.editor.Save(ctx)
	switch {
	case err == nil:
		return c.JSON(res)
	case errors.Is(err, usecase.ErrInvalidText):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"outcome": res.Outcome,
			"status":  res.Status,
			"dirty":   res.Dirty,
			"error":   toValidationResponse(res.Error),
		})
	case errors.Is(err, usecase.ErrSaveFailed):
		requestLog(c, h.log).Error().Stack().Err(err).Msg("save failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"outcome": res.Outcome,
			"status":  res.Status,
			"dirty":   res.Dirty,
			"error":   fiber.Map{"kind": storeErrorKind(err), "message": "Failed to save resume"},
		})
	default:
		return lifecycleError(c, err)
	}
}

func (h *EditorHandler) Toggle(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"collapsed": h.editor.ToggleCollapsed()})
}

// PreviewJSON returns the projected page. The document version doubles as
// the ETag.
func (h *EditorHandler) PreviewJSON(c *fiber.Ctx) error {
	doc, version, ok := h.document()
	if !ok {
		return noDocument(c)
	}
	if notModified(c, version) {
		return nil
	}
	page, err := h.exporter.Page(doc)
	if err != nil {
		return noDocument(c)
	}
	return c.JSON(page)
}

func (h *EditorHandler) PreviewHTML(c *fiber.Ctx) error {
	doc, version, ok := h.document()
	if !ok {
		return noDocument(c)
	}
	if notModified(c, version) {
		return nil
	}
	out, err := h.exporter.HTML(doc)
	if err != nil {
		requestLog(c, h.log).Error().Stack().Err(err).Msg("render html")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to render preview"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(out)
}

func (h *EditorHandler) PreviewPDF(c *fiber.Ctx) error {
	doc, _, ok := h.document()
	if !ok {
		return noDocument(c)
	}
	pdf, err := h.exporter.PDF(c.UserContext(), doc)
	if err != nil {
		requestLog(c, h.log).Error().Stack().Err(err).Msg("render pdf")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to render PDF"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", view.DocumentTitle(doc.Contact.Name)+".pdf"))
	return c.Send(pdf)
}

func (h *EditorHandler) document() (*model.Resume, uint64, bool) {
	doc, version := h.editor.Document()
	return doc, version, doc != nil
}

func notModified(c *fiber.Ctx, version uint64) bool {
	etag := `"v` + strconv.FormatUint(version, 10) + `"`
	c.Set(fiber.HeaderETag, etag)
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		c.Status(fiber.StatusNotModified)
		return true
	}
	return false
}

func noDocument(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No document loaded"})
}

func lifecycleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrCorruptDocument):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Stored resume is corrupt"})
	case errors.Is(err, usecase.ErrNotInitialized):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Editor not initialized"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func storeErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidationRejected):
		return "validation_rejected"
	case domain.IsTransport(err):
		return "transport"
	default:
		return "unknown"
	}
}
