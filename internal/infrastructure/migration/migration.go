package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
)

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists the schema steps for the Postgres document store, in
// order. Every step is idempotent.
var Migrations = []Migration{
	{Name: "create_resume_documents", Up: createResumeDocuments},
	{Name: "create_resume_revisions", Up: createResumeRevisions},
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	log.Info().Msg("Starting database migrations")

	for _, m := range Migrations {
		if err := m.Up(ctx, pool); err != nil {
			log.Error().Err(err).Str("name", m.Name).Msg("Migration failed")
			return err
		}
		log.Info().Str("name", m.Name).Msg("Migration completed")
	}

	log.Info().Msg("All migrations completed successfully")
	return nil
}

func createResumeDocuments(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS resume_documents (
			slot       TEXT PRIMARY KEY,
			body       TEXT NOT NULL,
			revision   UUID NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

func createResumeRevisions(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS resume_revisions (
			id         UUID PRIMARY KEY,
			slot       TEXT NOT NULL,
			size       INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS resume_revisions_slot_created_idx
			ON resume_revisions (slot, created_at DESC);
	`)
	return err
}
