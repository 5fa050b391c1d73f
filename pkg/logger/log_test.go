package logger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_WritesStructuredEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	log, err := NewLogger(
		WithOutputPaths([]string{path}),
		WithLoggingLevel(DebugLevel),
		WithTimeKey("timestamp"),
	)
	require.NoError(t, err)

	ctx := util.WithRequestID(context.Background(), "req-42")
	log.InfoContext(ctx, "loaded log", NewField("rows", 3))
	log.Debug("dropped rows", NewField("table", "Trades"))
	require.NoError(t, log.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 2)

	assert.Equal(t, "loaded log", entries[0]["message"])
	assert.Equal(t, "req-42", entries[0]["request_id"])
	assert.EqualValues(t, 3, entries[0]["rows"])
	assert.Contains(t, entries[0], "timestamp")

	assert.Equal(t, "dropped rows", entries[1]["message"])
	assert.Equal(t, "Trades", entries[1]["table"])
	assert.NotContains(t, entries[1], "request_id")
}

func TestLogger_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	log, err := NewLogger(WithOutputPaths([]string{path}), WithLoggingLevel(WarnLevel))
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("visible")
	require.NoError(t, log.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0]["message"])
}

func TestLogger_ErrorUsesTracerStack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	log, err := NewLogger(WithOutputPaths([]string{path}))
	require.NoError(t, err)

	tracer := errors.TracerFromError(errors.NewErrorDetails("boom", string(errors.SerializationFailure), "pdf"))
	log.WithFields(NewField("format", "pdf")).Error(tracer)
	require.NoError(t, log.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0]["message"])
	assert.Equal(t, "pdf", entries[0]["format"])
	assert.Contains(t, entries[0]["stacktrace"], "TestLogger_ErrorUsesTracerStack")
}

func TestLogger_ErrorAddsTracerContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	log, err := NewLogger(WithOutputPaths([]string{path}))
	require.NoError(t, err)

	cause := errors.NewErrorDetails("row has 2 cells, table has 1 columns", string(errors.SerializationFailure), "Broken")
	tracer := errors.NewTracer("failed to serialize Broken as pdf").ForTable("Broken").ForFormat("pdf").Wrap(cause)
	log.Error(errors.TracerFromError(tracer), NewField("format", "caller"))
	require.NoError(t, log.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "failed to serialize Broken as pdf", entries[0]["message"])
	assert.Equal(t, "serialization_failure", entries[0]["error_code"])
	assert.Equal(t, "Broken", entries[0]["table"])
	assert.Equal(t, "caller", entries[0]["format"])
}

func TestNewNopLogger(t *testing.T) {
	log := NewNopLogger()

	assert.NotPanics(t, func() {
		log.Info("ignored")
		log.Error(errors.NewTracer("ignored"))
	})
	assert.NotNil(t, log.GetZap())
}
