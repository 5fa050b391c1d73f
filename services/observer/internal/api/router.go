package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhammadchandra19/orderbook-observer/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
)

// Handlers groups the route handlers.
type Handlers struct {
	Logs     *LogAPI
	Books    *BookAPI
	Stats    *StatsAPI
	Archives *ArchiveAPI
	Commands *CommandAPI
	Changes  *ChangeAPI
}

// NewRouter registers every route under /api/v1 plus /ws.
func NewRouter(h Handlers, log logger.Interface) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), AccessLog(log))

	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	v1 := engine.Group("/api/v1")
	v1.GET("/logs", h.Logs.GetLogs)
	v1.GET("/tables", h.Logs.ListTables)
	v1.GET("/tables/:name", h.Logs.GetTable)
	v1.GET("/books/:side", h.Books.GetBook)
	v1.GET("/depth", h.Books.GetDepth)
	v1.GET("/stats", h.Stats.GetStats)
	v1.GET("/archives/:format", h.Archives.GetArchive)
	v1.POST("/commands", h.Commands.PostCommand)
	v1.GET("/console", h.Commands.GetConsole)

	if h.Changes != nil {
		engine.GET("/ws", h.Changes.Stream)
	}

	return engine
}

// NewHandler puts the /health probe in front of engine.
func NewHandler(engine http.Handler, checks map[string]func(ctx context.Context) error) http.Handler {
	hc := healthcheck.HealthCheck{
		Checks:  make(map[string]healthcheck.Checker, len(checks)),
		Timeout: 2 * time.Second,
	}
	for name, check := range checks {
		hc.Checks[name] = check
	}
	return hc.Handler(engine)
}
