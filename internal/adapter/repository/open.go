package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"resume-editor/internal/domain"
	"resume-editor/internal/infrastructure/migration"
	infra "resume-editor/pkg/infrastructure"
)

// HistoryReader lists the most recent accepted writes, newest first.
type HistoryReader interface {
	History(ctx context.Context, limit int) ([]domain.Revision, error)
}

type Options struct {
	Driver       string
	DocumentPath string
	DatabaseURL  string
	SQLitePath   string
	Slot         string
}

// Opened is a ready backend plus whatever it holds open. History is nil for
// backends that keep no revisions.
type Opened struct {
	Backend Backend
	History HistoryReader
	Close   func()
}

// Open builds the backend named by opts.Driver, wrapped with metrics. The
// postgres driver connects and migrates before returning.
func Open(ctx context.Context, opts Options, log zerolog.Logger) (*Opened, error) {
	slot := opts.Slot
	if slot == "" {
		slot = domain.DefaultSlot
	}

	switch opts.Driver {
	case "", "file":
		fs := NewFileStore(opts.DocumentPath)
		return &Opened{Backend: WithMetrics(fs), Close: func() {}}, nil

	case "postgres":
		pool, err := infra.NewPool(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := migration.RunMigrations(ctx, pool, log); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		ps := NewPostgresStore(pool, slot)
		return &Opened{Backend: WithMetrics(ps), History: ps, Close: pool.Close}, nil

	case "sqlite":
		db, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		ss, err := NewSQLiteStore(db, slot)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Opened{Backend: WithMetrics(ss), History: ss, Close: func() { _ = db.Close() }}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", opts.Driver)
	}
}
