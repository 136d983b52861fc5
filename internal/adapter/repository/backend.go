package repository

import (
	"context"

	"github.com/tidwall/gjson"

	"resume-editor/internal/domain"
)

// Backend is a single-slot document store. Load and Replace satisfy
// usecase.Store; Ping and Name serve health checks and metrics.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Replace(ctx context.Context, body []byte) error
	Ping(ctx context.Context) error
	Name() string
}

// checkSyntax is the store-side guard run before any write: payloads that
// are not JSON are refused and never persisted.
func checkSyntax(body []byte) error {
	if !gjson.ValidBytes(body) {
		return domain.ErrValidationRejected
	}
	return nil
}
