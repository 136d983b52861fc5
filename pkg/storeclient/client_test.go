package storeclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-editor/internal/domain"
)

func newTestClient(url string) *Client {
	return New(Options{BaseURL: url, Timeout: 2 * time.Second, MaxAttempts: 3, BaseBackoff: time.Millisecond, MaxInterval: 5 * time.Millisecond})
}

func TestClient_LoadReturnsBodyVerbatim(t *testing.T) {
	body := "{\n  \"contact\": {\"name\": \"Ada\"}\n}\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, LoadPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}

func TestClient_LoadNotFound(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Resume file not found"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, domain.IsTransport(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_ReplaceSendsBody(t *testing.T) {
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, SavePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		got, _ = io.ReadAll(r.Body)
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	body := []byte(`{"contact":{"name":"Ada"}}`)
	require.NoError(t, newTestClient(srv.URL).Replace(context.Background(), body))
	assert.Equal(t, body, got)
}

func TestClient_ReplaceRejected(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"Invalid JSON"}`)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Replace(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, domain.ErrValidationRejected)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(srv.URL).Replace(context.Background(), []byte(`{}`)))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_GivesUpAsTransportError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Load(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsTransport(err))
	assert.True(t, IsRecoverable(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Replace(context.Background(), []byte(`{}`))
	require.Error(t, err)
	assert.True(t, domain.IsTransport(err))
	assert.True(t, IsIrrecoverable(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Load(context.Background())
	assert.True(t, domain.IsTransport(err))
	assert.Error(t, newTestClient(url).Ping(context.Background()))
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, Recoverable, categoryFor(http.StatusTooManyRequests))
	assert.Equal(t, Recoverable, categoryFor(http.StatusRequestTimeout))
	assert.Equal(t, Recoverable, categoryFor(http.StatusBadGateway))
	assert.Equal(t, Irrecoverable, categoryFor(http.StatusUnauthorized))
}
