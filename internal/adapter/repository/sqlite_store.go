package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"resume-editor/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS resume_documents (
	slot       TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	revision   TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS resume_revisions (
	id         TEXT PRIMARY KEY,
	slot       TEXT NOT NULL,
	size       INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS resume_revisions_slot_created_idx ON resume_revisions (slot, created_at);
`

// OpenSQLite opens (or creates) a SQLite database at the given path with WAL
// journaling.
func OpenSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// SQLiteStore is the local single-file SQL backend. It shares the Postgres
// store's layout: one row per slot plus an append-only revision log.
type SQLiteStore struct {
	db   *sql.DB
	slot string
}

// NewSQLiteStore wires an existing connection and ensures the schema.
func NewSQLiteStore(db *sql.DB, slot string) (*SQLiteStore, error) {
	if slot == "" {
		slot = domain.DefaultSlot
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, pkgerrors.Wrap(err, "ensure sqlite schema")
	}
	return &SQLiteStore{db: db, slot: slot}, nil
}

func (s *SQLiteStore) Name() string { return "sqlite" }

// DB exposes the underlying connection.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM resume_documents WHERE slot = ?`, s.slot).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.NewTransportError("load", pkgerrors.Wrap(err, "select resume_documents"))
	}
	return body, nil
}

func (s *SQLiteStore) Replace(ctx context.Context, body []byte) error {
	if err := checkSyntax(body); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "begin"))
	}
	defer func() { _ = tx.Rollback() }()

	rev := uuid.New().String()
	now := time.Now().UTC().UnixNano()

	if _, err := tx.ExecContext(ctx, `INSERT INTO resume_documents (slot, body, revision, updated_at) VALUES (?,?,?,?)
		ON CONFLICT(slot) DO UPDATE SET body = excluded.body, revision = excluded.revision, updated_at = excluded.updated_at`,
		s.slot, body, rev, now); err != nil {
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "upsert resume_documents"))
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO resume_revisions (id, slot, size, created_at) VALUES (?,?,?,?)`,
		rev, s.slot, len(body), now); err != nil {
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "insert resume_revisions"))
	}
	if err := tx.Commit(); err != nil {
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "commit"))
	}
	return nil
}

// History lists the most recent revisions of the slot, newest first.
func (s *SQLiteStore) History(ctx context.Context, limit int) ([]domain.Revision, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, slot, size, created_at FROM resume_revisions
		WHERE slot = ? ORDER BY created_at DESC LIMIT ?`, s.slot, limit)
	if err != nil {
		return nil, domain.NewTransportError("history", pkgerrors.Wrap(err, "select resume_revisions"))
	}
	defer rows.Close()

	var out []domain.Revision
	for rows.Next() {
		var (
			id   string
			r    domain.Revision
			nano int64
		)
		if err := rows.Scan(&id, &r.Slot, &r.Size, &nano); err != nil {
			return nil, domain.NewTransportError("history", pkgerrors.Wrap(err, "scan revision"))
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, domain.NewTransportError("history", pkgerrors.Wrapf(err, "parse revision id %q", id))
		}
		r.UpdatedAt = time.Unix(0, nano).UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewTransportError("history", err)
	}
	return out, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
