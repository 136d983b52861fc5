package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"resume-editor/internal/model"
	"resume-editor/internal/view"
)

// Renderer turns a complete HTML page into PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

var (
	ErrNoDocument = errors.New("no document to export")
	errNotPDF     = errors.New("renderer output is not a PDF")
)

// Exporter produces the printable forms of a resume: the projected page, its
// HTML and, given a Renderer, a PDF.
type Exporter struct {
	renderer Renderer
	log      zerolog.Logger

	Attempts       uint64
	InitialBackoff time.Duration
}

func NewExporter(r Renderer, log zerolog.Logger) *Exporter {
	return &Exporter{
		renderer:       r,
		log:            log.With().Str("component", "exporter").Logger(),
		Attempts:       3,
		InitialBackoff: 500 * time.Millisecond,
	}
}

func (x *Exporter) Page(doc *model.Resume) (view.Page, error) {
	if doc == nil {
		return view.Page{}, ErrNoDocument
	}
	return view.Project(doc), nil
}

func (x *Exporter) HTML(doc *model.Resume) ([]byte, error) {
	page, err := x.Page(doc)
	if err != nil {
		return nil, err
	}
	return view.RenderHTML(page)
}

// PDF renders the HTML page through the browser. Browser start-up is flaky
// under load, so failed attempts are retried with exponential backoff until
// Attempts is exhausted or ctx ends.
func (x *Exporter) PDF(ctx context.Context, doc *model.Resume) ([]byte, error) {
	if x.renderer == nil {
		return nil, errors.New("pdf export: no renderer configured")
	}
	html, err := x.HTML(doc)
	if err != nil {
		return nil, err
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = x.InitialBackoff
	var policy backoff.BackOff = eb
	if x.Attempts > 0 {
		policy = backoff.WithMaxRetries(eb, x.Attempts-1)
	}

	var pdf []byte
	attempt := 0
	op := func() error {
		attempt++
		out, err := x.renderer.RenderHTMLToPDF(ctx, string(html))
		if err != nil {
			return err
		}
		if !bytes.HasPrefix(out, []byte("%PDF")) {
			return errNotPDF
		}
		pdf = out
		return nil
	}
	notify := func(err error, wait time.Duration) {
		x.log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("pdf render failed")
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(policy, ctx), notify); err != nil {
		pdfRendersTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("pdf export after %d attempt(s): %w", attempt, err)
	}
	pdfRendersTotal.WithLabelValues("ok").Inc()
	x.log.Info().Int("bytes", len(pdf)).Int("attempts", attempt).Msg("pdf rendered")
	return pdf, nil
}
