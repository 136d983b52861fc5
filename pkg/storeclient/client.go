// Package storeclient talks to a remote resume store over HTTP: the
// load-resume and save-resume endpoints served by cmd/server or any
// compatible host.
//
// Responses are classified the way the rest of the codebase expects:
// 404 on load is domain.ErrNotFound, 400 on save is
// domain.ErrValidationRejected, anything else is a *domain.TransportError.
// Network failures, 408, 429 and 5xx are retried with exponential backoff;
// other statuses fail at once.
package storeclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"resume-editor/internal/domain"
)

const (
	LoadPath   = "/api/load-resume"
	SavePath   = "/api/save-resume"
	HealthPath = "/health"
)

type Options struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	BaseBackoff time.Duration
	MaxInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.BaseBackoff <= 0 {
		o.BaseBackoff = 200 * time.Millisecond
	}
	if o.MaxInterval <= 0 {
		o.MaxInterval = 2 * time.Second
	}
	return o
}

type Client struct {
	http *resty.Client
	opts Options
}

func New(opts Options) *Client {
	opts = opts.withDefaults()
	c := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(opts.Timeout)
	return &Client{http: c, opts: opts}
}

func (c *Client) Name() string { return "remote" }

// Load fetches the stored document bytes exactly as the server sent them.
func (c *Client) Load(ctx context.Context) ([]byte, error) {
	var body []byte
	err := c.do(ctx, "load", func() error {
		resp, err := c.http.R().SetContext(ctx).Get(LoadPath)
		if err != nil {
			return networkError("load", err)
		}
		switch resp.StatusCode() {
		case http.StatusOK:
			body = resp.Body()
			return nil
		case http.StatusNotFound:
			return backoff.Permanent(domain.ErrNotFound)
		default:
			return httpError("load", resp)
		}
	})
	return body, err
}

// Replace overwrites the stored document with body. The full-document
// replace is idempotent, so retrying after an ambiguous failure is safe.
func (c *Client) Replace(ctx context.Context, body []byte) error {
	return c.do(ctx, "replace", func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			Post(SavePath)
		if err != nil {
			return networkError("replace", err)
		}
		switch resp.StatusCode() {
		case http.StatusOK, http.StatusNoContent:
			return nil
		case http.StatusBadRequest:
			return backoff.Permanent(domain.ErrValidationRejected)
		default:
			return httpError("replace", resp)
		}
	})
}

func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get(HealthPath)
	if err != nil {
		return domain.NewTransportError("ping", err)
	}
	if resp.IsError() {
		return domain.NewTransportError("ping", fmt.Errorf("HTTP %d", resp.StatusCode()))
	}
	return nil
}

func (c *Client) do(ctx context.Context, op string, fn func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.opts.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = c.opts.MaxInterval
	exp.Reset()

	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(c.opts.MaxAttempts-1)), ctx)
	return domain.NewTransportError(op, backoff.Retry(fn, policy))
}
