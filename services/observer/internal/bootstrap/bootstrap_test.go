package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/pkg/config"
)

func TestBootstrap_Init(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VENUE_WORK_DIR", dir)
	t.Setenv("VENUE_TIME_LOCATION", "UTC")

	log := "Timestamp,Type,Details\n" +
		"2025-05-01 09:30:00,ORDER PLACED,\"ID#1 | BUY LIMIT | Price: 100 | Qty: 5\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "all_info.csv"), []byte(log), 0o600))

	cfg, err := config.Load()
	require.NoError(t, err)

	b := &Bootstrap{}
	app, err := b.Init(BootstrapConfig{Config: cfg, Logger: logger.NewNopLogger()})
	require.NoError(t, err)

	assert.Nil(t, app.Usecase.Sink)
	assert.Nil(t, app.Repository.Publisher)
	assert.Nil(t, app.Repository.ArchiveCache)
	assert.NotNil(t, app.Hub)
	assert.Empty(t, app.HealthChecks())

	handler := app.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tables", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data     []string `json:"data"`
		Warnings []struct {
			Code string `json:"code"`
		} `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Orders", "Trades", "Modifications", "Cancellations", "Raw Logs"}, body.Data)
	require.Len(t, body.Warnings, 2)
	assert.Equal(t, "source_unavailable", body.Warnings[0].Code)
	assert.Equal(t, "source_unavailable", body.Warnings[1].Code)
}
