package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"resume-editor/internal/domain"
)

// PostgresStore keeps the document slot in resume_documents and appends every
// accepted write to resume_revisions.
type PostgresStore struct {
	pool *pgxpool.Pool
	slot string
}

func NewPostgresStore(pool *pgxpool.Pool, slot string) *PostgresStore {
	if slot == "" {
		slot = domain.DefaultSlot
	}
	return &PostgresStore{pool: pool, slot: slot}
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var body string
	err := s.pool.QueryRow(ctx, `SELECT body FROM resume_documents WHERE slot = $1`, s.slot).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.NewTransportError("load", pkgerrors.Wrap(err, "select resume_documents"))
	}
	return []byte(body), nil
}

func (s *PostgresStore) Replace(ctx context.Context, body []byte) error {
	if err := checkSyntax(body); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "begin"))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rev := uuid.New()
	now := time.Now().UTC()

	_, err = tx.Exec(ctx, `INSERT INTO resume_documents (slot, body, revision, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (slot) DO UPDATE SET body = EXCLUDED.body, revision = EXCLUDED.revision, updated_at = EXCLUDED.updated_at`,
		s.slot, string(body), rev, now)
	if err != nil {
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "upsert resume_documents"))
	}

	_, err = tx.Exec(ctx, `INSERT INTO resume_revisions (id, slot, size, created_at) VALUES ($1,$2,$3,$4)`,
		rev, s.slot, len(body), now)
	if err != nil {
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "insert resume_revisions"))
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "commit"))
	}
	return nil
}

// History lists the most recent revisions of the slot, newest first.
func (s *PostgresStore) History(ctx context.Context, limit int) ([]domain.Revision, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `SELECT id, slot, size, created_at FROM resume_revisions
		WHERE slot = $1 ORDER BY created_at DESC LIMIT $2`, s.slot, limit)
	if err != nil {
		return nil, domain.NewTransportError("history", pkgerrors.Wrap(err, "select resume_revisions"))
	}
	defer rows.Close()

	var out []domain.Revision
	for rows.Next() {
		var r domain.Revision
		if err := rows.Scan(&r.ID, &r.Slot, &r.Size, &r.UpdatedAt); err != nil {
			return nil, domain.NewTransportError("history", pkgerrors.Wrap(err, "scan revision"))
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewTransportError("history", err)
	}
	return out, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
