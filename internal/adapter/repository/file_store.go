package repository

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"resume-editor/internal/domain"
)

// FileStore keeps the document in one file on disk. Writes go to a temp file
// in the same directory and are renamed over the target, so readers never
// see a partially written document.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Name() string { return "file" }

// Path returns the file backing the slot.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewTransportError("load", err)
	}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.NewTransportError("load", pkgerrors.Wrapf(err, "read %s", s.path))
	}
	return b, nil
}

func (s *FileStore) Replace(ctx context.Context, body []byte) error {
	if err := checkSyntax(body); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.NewTransportError("replace", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewTransportError("replace", pkgerrors.Wrapf(err, "create %s", dir))
	}

	tmp, err := os.CreateTemp(dir, ".resume-*.json")
	if err != nil {
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "create temp file"))
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		cleanup()
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "write temp file"))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "sync temp file"))
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "close temp file"))
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return domain.NewTransportError("replace", pkgerrors.Wrap(err, "chmod temp file"))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return domain.NewTransportError("replace", pkgerrors.Wrapf(err, "rename to %s", s.path))
	}
	return nil
}

// Ping checks that the directory holding the document is reachable.
func (s *FileStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return pkgerrors.Wrapf(err, "stat %s", dir)
	}
	return nil
}
