package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &payload))
	return payload
}

func TestLogger_IncludesStackAndServiceOnError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "test-service", zerolog.InfoLevel)
	log.Error().Stack().Err(errors.New("boom")).Msg("something failed")

	payload := lastLine(t, &buf)
	assert.Equal(t, "test-service", payload["service"])
	assert.Equal(t, "error", payload["level"])
	assert.Equal(t, "boom", payload["error"])
	assert.Contains(t, payload, "stack")
}

func TestLogger_KeepsExistingStack(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "svc", zerolog.InfoLevel)
	log.Error().Stack().Err(pkgerrors.Wrap(errors.New("disk full"), "write temp file")).Msg("save failed")

	payload := lastLine(t, &buf)
	assert.Equal(t, "write temp file: disk full", payload["error"])
	assert.Contains(t, payload, "stack")
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "svc", zerolog.WarnLevel)
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
