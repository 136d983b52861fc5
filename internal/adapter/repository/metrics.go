package repository

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"resume-editor/internal/domain"
)

var storeOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "resume_editor",
		Name:      "store_operations_total",
		Help:      "Document store operations by backend, operation and outcome.",
	},
	[]string{"backend", "op", "outcome"},
)

type instrumented struct {
	Backend
}

// WithMetrics counts every Load and Replace on b.
func WithMetrics(b Backend) Backend {
	return &instrumented{Backend: b}
}

func (i *instrumented) Load(ctx context.Context) ([]byte, error) {
	b, err := i.Backend.Load(ctx)
	storeOpsTotal.WithLabelValues(i.Name(), "load", outcome(err)).Inc()
	return b, err
}

func (i *instrumented) Replace(ctx context.Context, body []byte) error {
	err := i.Backend.Replace(ctx, body)
	storeOpsTotal.WithLabelValues(i.Name(), "replace", outcome(err)).Inc()
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidationRejected):
		return "rejected"
	default:
		return "error"
	}
}
