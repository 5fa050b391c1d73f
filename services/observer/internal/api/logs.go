package api

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	archivev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
	eventlogv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/tables"
)

// LogAPI serves the raw log and the derived tables.
type LogAPI struct {
	usecase tables.Usecase
	logger  logger.Interface
}

// NewLogAPI creates a new LogAPI.
func NewLogAPI(usecase tables.Usecase, logger logger.Interface) *LogAPI {
	return &LogAPI{
		usecase: usecase,
		logger:  logger,
	}
}

// LogEventView is a raw log row.
type LogEventView struct {
	Seq       int64  `json:"seq"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Details   string `json:"details"`
}

// TableView is a table in display form.
type TableView struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func tableView(t archivev1.Table) TableView {
	return TableView{Name: t.Name, Columns: t.Columns, Rows: t.TextRows()}
}

// filterOf reads repeated or comma separated ?type= values.
func filterOf(c *gin.Context) eventlogv1.Filter {
	var types []string
	for _, v := range c.QueryArray("type") {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}
	return eventlogv1.Filter{Types: types}
}

// GetLogs handles GET /logs.
func (a *LogAPI) GetLogs(c *gin.Context) {
	events, warnings, err := a.usecase.RawLog(c.Request.Context(), filterOf(c))
	if err != nil {
		failure(c, a.logger, err)
		return
	}

	views := make([]LogEventView, len(events))
	for i, e := range events {
		views[i] = LogEventView{
			Seq:       e.Seq,
			Timestamp: e.Timestamp.Format(time.DateTime),
			Type:      e.Type,
			Details:   e.Details,
		}
	}
	success(c, views, warnings)
}

// ListTables handles GET /tables.
func (a *LogAPI) ListTables(c *gin.Context) {
	set, warnings, err := a.usecase.Build(c.Request.Context(), filterOf(c))
	if err != nil {
		failure(c, a.logger, err)
		return
	}
	success(c, set.Names(), warnings)
}

// GetTable handles GET /tables/:name.
func (a *LogAPI) GetTable(c *gin.Context) {
	set, warnings, err := a.usecase.Build(c.Request.Context(), filterOf(c))
	if err != nil {
		failure(c, a.logger, err)
		return
	}

	name := c.Param("name")
	table, ok := set.Get(name)
	if !ok {
		failure(c, a.logger, errors.NewErrorDetails("table not found: "+name, string(errors.GeneralNotFoundError), "name"))
		return
	}
	success(c, tableView(table), warnings)
}
