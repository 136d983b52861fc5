package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-editor/internal/domain"
)

// runBackendContract checks the behaviour every Backend must share.
func runBackendContract(t *testing.T, b Backend) {
	ctx := context.Background()

	t.Run("load before any write is not found", func(t *testing.T) {
		_, err := b.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("replace rejects non-json and persists nothing", func(t *testing.T) {
		err := b.Replace(ctx, []byte("not json"))
		assert.ErrorIs(t, err, domain.ErrValidationRejected)
		_, err = b.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("round trip is byte for byte", func(t *testing.T) {
		body := []byte("{\n  \"contact\": {\"name\": \"A\"},\n  \"summaries\": [\"é ü\"]\n}\n")
		require.NoError(t, b.Replace(ctx, body))
		got, err := b.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, body, got)
	})

	t.Run("replace overwrites the slot", func(t *testing.T) {
		require.NoError(t, b.Replace(ctx, []byte(`{"contact":{"name":"B"}}`)))
		got, err := b.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, `{"contact":{"name":"B"}}`, string(got))
	})

	t.Run("store only checks syntax", func(t *testing.T) {
		require.NoError(t, b.Replace(ctx, []byte(`{"contact":{}}`)))
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, b.Ping(ctx))
	})
}

func TestFileStore_Contract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content", "resume.json")
	runBackendContract(t, NewFileStore(path))
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "resume.json"))
	require.NoError(t, s.Replace(context.Background(), []byte(`{"contact":{"name":"A"}}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "resume.json", entries[0].Name())
}

func TestFileStore_CancelledContext(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "resume.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Load(ctx)
	assert.True(t, domain.IsTransport(err))
	err = s.Replace(ctx, []byte(`{}`))
	assert.True(t, domain.IsTransport(err))
}

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "resume.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	s, err := NewSQLiteStore(db, "")
	require.NoError(t, err)
	return s
}

func TestSQLiteStore_Contract(t *testing.T) {
	runBackendContract(t, newTestSQLite(t))
}

func TestSQLiteStore_HistoryRecordsAcceptedWrites(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	require.NoError(t, s.Replace(ctx, []byte(`{"a":1}`)))
	require.ErrorIs(t, s.Replace(ctx, []byte(`{`)), domain.ErrValidationRejected)
	require.NoError(t, s.Replace(ctx, []byte(`{"a":22}`)))

	revs, err := s.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.NotEqual(t, revs[0].ID, revs[1].ID)
	for _, r := range revs {
		assert.Equal(t, domain.DefaultSlot, r.Slot)
	}
}

func TestWithMetrics_PassesThrough(t *testing.T) {
	ctx := context.Background()
	b := WithMetrics(NewFileStore(filepath.Join(t.TempDir(), "resume.json")))
	assert.Equal(t, "file", b.Name())

	_, err := b.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, b.Replace(ctx, []byte(`{"contact":{"name":"A"}}`)))
	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"contact":{"name":"A"}}`, string(got))
}

func TestOpen_FileAndSQLite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	file, err := Open(ctx, Options{Driver: "file", DocumentPath: filepath.Join(dir, "resume.json")}, zerolog.Nop())
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, "file", file.Backend.Name())
	assert.Nil(t, file.History)

	lite, err := Open(ctx, Options{Driver: "sqlite", SQLitePath: filepath.Join(dir, "resume.db")}, zerolog.Nop())
	require.NoError(t, err)
	defer lite.Close()
	assert.Equal(t, "sqlite", lite.Backend.Name())
	require.NotNil(t, lite.History)

	require.NoError(t, lite.Backend.Replace(ctx, []byte(`{"contact":{"name":"A"}}`)))
	revs, err := lite.History.History(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, revs, 1)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "redis"}, zerolog.Nop())
	assert.Error(t, err)
}
