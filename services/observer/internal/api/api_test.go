package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	archiveMock "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/mock"
	archivev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
	bookMock "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book/mock"
	bookv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book/v1"
	commandMock "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/command/mock"
	commandv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/command/v1"
	eventlogv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
	statsMock "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/stats/mock"
	statsv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/stats/v1"
	tablesMock "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/tables/mock"
	venuev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/venue/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/hub"
)

type mocks struct {
	tables   *tablesMock.MockUsecase
	books    *bookMock.MockUsecase
	stats    *statsMock.MockUsecase
	archive  *archiveMock.MockUsecase
	commands *commandMock.MockUsecase
}

type envelope struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Code     string          `json:"code"`
	Data     json.RawMessage `json:"data"`
	Warnings []Warning       `json:"warnings"`
}

func newTestRouter(ctrl *gomock.Controller, h *hub.Hub) (http.Handler, mocks) {
	m := mocks{
		tables:   tablesMock.NewMockUsecase(ctrl),
		books:    bookMock.NewMockUsecase(ctrl),
		stats:    statsMock.NewMockUsecase(ctrl),
		archive:  archiveMock.NewMockUsecase(ctrl),
		commands: commandMock.NewMockUsecase(ctrl),
	}
	log := logger.NewNopLogger()

	handlers := Handlers{
		Logs:     NewLogAPI(m.tables, log),
		Books:    NewBookAPI(m.books, log),
		Stats:    NewStatsAPI(m.stats, log),
		Archives: NewArchiveAPI(m.tables, m.archive, log),
		Commands: NewCommandAPI(m.commands, log),
	}
	if h != nil {
		handlers.Changes = NewChangeAPI(h, log)
	}

	checks := map[string]func(ctx context.Context) error{
		"venue": func(ctx context.Context) error { return nil },
	}
	return NewHandler(NewRouter(handlers, log), checks), m
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func missing(message string) *errors.BaseError {
	return errors.NewBaseError(errors.NewErrorDetails(message, string(errors.SourceUnavailable), ""))
}

func TestAPI_Routes(t *testing.T) {
	ts := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	tradeTable := archivev1.Table{
		Name:    archivev1.TableTrades,
		Columns: []string{"Timestamp", "Buy ID", "Sell ID", "Price", "Qty"},
		Rows:    [][]any{{ts, int64(1), int64(2), decimal.RequireFromString("100.50"), int64(3)}},
	}

	testCases := []struct {
		name     string
		method   string
		target   string
		body     string
		mockFn   func(m mocks)
		assertFn func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "raw log with type filter",
			method: http.MethodGet,
			target: "/api/v1/logs?type=TRADE,ORDER%20PLACED",
			mockFn: func(m mocks) {
				m.tables.EXPECT().
					RawLog(gomock.Any(), eventlogv1.Filter{Types: []string{"TRADE", "ORDER PLACED"}}).
					Return([]eventlogv1.LogEvent{{Seq: 4, Timestamp: ts, Type: "TRADE", Details: "Buy ID: 1 | Sell ID: 2 | Price: 100 | Qty: 3"}}, nil, nil)
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				env := decode(t, rec)
				assert.Equal(t, "success", env.Status)
				assert.Empty(t, env.Warnings)

				var events []LogEventView
				require.NoError(t, json.Unmarshal(env.Data, &events))
				assert.Equal(t, []LogEventView{{Seq: 4, Timestamp: "2025-05-01 09:30:00", Type: "TRADE", Details: "Buy ID: 1 | Sell ID: 2 | Price: 100 | Qty: 3"}}, events)
			},
		},
		{
			name:   "table in display form",
			method: http.MethodGet,
			target: "/api/v1/tables/trades",
			mockFn: func(m mocks) {
				m.tables.EXPECT().Build(gomock.Any(), eventlogv1.Filter{}).
					Return(archivev1.TableSet{tradeTable}, missing("Sell book not found"), nil)
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				env := decode(t, rec)
				assert.Equal(t, []Warning{{Code: "source_unavailable", Message: "Sell book not found"}}, env.Warnings)

				var table TableView
				require.NoError(t, json.Unmarshal(env.Data, &table))
				assert.Equal(t, "Trades", table.Name)
				assert.Equal(t, [][]string{{"2025-05-01 09:30:00", "1", "2", "100.5", "3"}}, table.Rows)
			},
		},
		{
			name:   "unknown table",
			method: http.MethodGet,
			target: "/api/v1/tables/Buy%20Book",
			mockFn: func(m mocks) {
				m.tables.EXPECT().Build(gomock.Any(), eventlogv1.Filter{}).Return(archivev1.TableSet{tradeTable}, nil, nil)
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
				env := decode(t, rec)
				assert.Equal(t, "general_not_found_error", env.Code)
				assert.Equal(t, "table not found: Buy Book", env.Message)
			},
		},
		{
			name:   "unknown book side",
			method: http.MethodGet,
			target: "/api/v1/books/up",
			mockFn: func(m mocks) {},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, "general_bad_request_error", decode(t, rec).Code)
			},
		},
		{
			name:   "missing book snapshot",
			method: http.MethodGet,
			target: "/api/v1/books/BUY",
			mockFn: func(m mocks) {
				m.books.EXPECT().Levels(gomock.Any(), bookv1.Buy).Return(nil, missing("Buy book not found"), nil)
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				env := decode(t, rec)
				assert.JSONEq(t, "[]", string(env.Data))
				assert.Len(t, env.Warnings, 1)
			},
		},
		{
			name:   "depth failure",
			method: http.MethodGet,
			target: "/api/v1/depth",
			mockFn: func(m mocks) {
				m.books.EXPECT().Depth(gomock.Any()).Return(nil, nil, stderrors.New("disk on fire"))
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				env := decode(t, rec)
				assert.Equal(t, "general_internal_server_error", env.Code)
				assert.Equal(t, "internal server error", env.Message)
			},
		},
		{
			name:   "stats",
			method: http.MethodGet,
			target: "/api/v1/stats",
			mockFn: func(m mocks) {
				m.stats.EXPECT().Compute(gomock.Any()).Return(statsv1.Stats{
					EventTypes: []statsv1.Count{{Key: "TRADE", Count: 2}},
				}, nil, nil)
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				var result statsv1.Stats
				require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
				assert.Equal(t, []statsv1.Count{{Key: "TRADE", Count: 2}}, result.EventTypes)
			},
		},
		{
			name:   "unknown archive format",
			method: http.MethodGet,
			target: "/api/v1/archives/tar",
			mockFn: func(m mocks) {},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			},
		},
		{
			name:   "archive download",
			method: http.MethodGet,
			target: "/api/v1/archives/CSV",
			mockFn: func(m mocks) {
				set := archivev1.TableSet{tradeTable}
				m.tables.EXPECT().Build(gomock.Any(), eventlogv1.Filter{}).Return(set, missing("Buy book not found"), nil)
				m.archive.EXPECT().Build(gomock.Any(), set, archivev1.FormatCSV).Return([]byte("PK\x03\x04"), nil)
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
				assert.Equal(t, `attachment; filename="all_csv_files.zip"`, rec.Header().Get("Content-Disposition"))
				assert.Equal(t, "source_unavailable", rec.Header().Get(WarningsHeader))
				assert.Equal(t, []byte("PK\x03\x04"), rec.Body.Bytes())
			},
		},
		{
			name:   "archive serialization failure",
			method: http.MethodGet,
			target: "/api/v1/archives/pdf",
			mockFn: func(m mocks) {
				m.tables.EXPECT().Build(gomock.Any(), eventlogv1.Filter{}).Return(archivev1.TableSet{tradeTable}, nil, nil)
				m.archive.EXPECT().Build(gomock.Any(), gomock.Any(), archivev1.FormatPDF).
					Return(nil, errors.NewTracer("failed to serialize Trades as pdf").ForTable("Trades").ForFormat("pdf").Wrap(
						errors.NewErrorDetails("row too wide", string(errors.SerializationFailure), "Trades")))
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				body := decode(t, rec)
				assert.Equal(t, "serialization_failure", body.Code)
				assert.Equal(t, "failed to serialize Trades as pdf", body.Message)
			},
		},
		{
			name:   "command line",
			method: http.MethodPost,
			target: "/api/v1/commands",
			body:   `{"line":"place buy limit 100 5"}`,
			mockFn: func(m mocks) {
				m.commands.EXPECT().Execute(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req commandv1.Request) (commandv1.Result, error) {
						assert.Equal(t, "PLACE BUY LIMIT 100 5", req.String())
						return commandv1.Result{Status: commandv1.StatusSuccess, Command: req.String(), Message: "Command executed successfully"}, nil
					})
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				var result commandv1.Result
				require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
				assert.Equal(t, commandv1.StatusSuccess, result.Status)
			},
		},
		{
			name:   "typed command",
			method: http.MethodPost,
			target: "/api/v1/commands",
			body:   `{"action":"MODIFY","orderId":7,"field":"PRICE","value":"101.25"}`,
			mockFn: func(m mocks) {
				m.commands.EXPECT().Execute(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req commandv1.Request) (commandv1.Result, error) {
						assert.Equal(t, "MODIFY 7 PRICE 101.25", req.String())
						return commandv1.Result{Status: commandv1.StatusSuccess}, nil
					})
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
			},
		},
		{
			name:   "unparseable command line",
			method: http.MethodPost,
			target: "/api/v1/commands",
			body:   `{"line":"BUY 5"}`,
			mockFn: func(m mocks) {},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, "command_invalid", decode(t, rec).Code)
			},
		},
		{
			name:   "rejected clear",
			method: http.MethodPost,
			target: "/api/v1/commands",
			body:   `{"line":"CLEAR wrong"}`,
			mockFn: func(m mocks) {
				m.commands.EXPECT().Execute(gomock.Any(), gomock.Any()).
					Return(commandv1.Result{}, errors.NewErrorDetails("invalid admin secret", string(errors.CommandUnauthorized), "secret"))
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusForbidden, rec.Code)
				assert.Equal(t, "invalid admin secret", decode(t, rec).Message)
			},
		},
		{
			name:   "engine runtime failure",
			method: http.MethodPost,
			target: "/api/v1/commands",
			body:   `{"line":"CANCEL 3"}`,
			mockFn: func(m mocks) {
				m.commands.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(commandv1.Result{
					Status:  commandv1.StatusRuntimeFailure,
					Command: "CANCEL 3",
					Message: "Runtime error: segfault",
				}, nil)
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadGateway, rec.Code)
				env := decode(t, rec)
				assert.Equal(t, "external_process_failure", env.Code)
				assert.Equal(t, "Runtime error: segfault", env.Message)
			},
		},
		{
			name:   "console output",
			method: http.MethodGet,
			target: "/api/v1/console",
			mockFn: func(m mocks) {
				m.commands.EXPECT().Console(gomock.Any()).Return("Order 3 canceled\n", nil)
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, `{"output":"Order 3 canceled\n"}`, string(decode(t, rec).Data))
			},
		},
		{
			name:   "health",
			method: http.MethodGet,
			target: "/health",
			mockFn: func(m mocks) {},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "ok\n", rec.Body.String())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, m := newTestRouter(ctrl, nil)
			tc.mockFn(m)

			var body *bytes.Reader
			if tc.body != "" {
				body = bytes.NewReader([]byte(tc.body))
			} else {
				body = bytes.NewReader(nil)
			}
			req := httptest.NewRequest(tc.method, tc.target, body)
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			tc.assertFn(t, rec)
		})
	}
}

func TestAPI_RequestID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, m := newTestRouter(ctrl, nil)
	m.stats.EXPECT().Compute(gomock.Any()).Return(statsv1.Stats{}, nil, nil).Times(2)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestAPI_WebSocketStreamsChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := hub.New(nil, logger.NewNopLogger())
	handler, _ := newTestRouter(ctrl, h)
	server := httptest.NewServer(handler)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	at := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	h.Broadcast(context.Background(), venuev1.Change{Source: venuev1.SourceLog, Path: "/venue/all_info.csv", At: at})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var change venuev1.Change
	require.NoError(t, conn.ReadJSON(&change))
	assert.Equal(t, venuev1.SourceLog, change.Source)
	assert.Equal(t, "/venue/all_info.csv", change.Path)
	assert.True(t, at.Equal(change.At))
}
