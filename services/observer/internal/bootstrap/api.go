package bootstrap

import (
	"net/http"

	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/api"
)

// API holds the HTTP handlers.
type API struct {
	Handlers api.Handlers
}

// registerAPI registers the HTTP handlers.
func (b *Bootstrap) registerAPI() {
	b.API.Handlers = api.Handlers{
		Logs:     api.NewLogAPI(b.Usecase.Tables, b.Logger),
		Books:    api.NewBookAPI(b.Usecase.Book, b.Logger),
		Stats:    api.NewStatsAPI(b.Usecase.Stats, b.Logger),
		Archives: api.NewArchiveAPI(b.Usecase.Tables, b.Usecase.Archive, b.Logger),
		Commands: api.NewCommandAPI(b.Usecase.Command, b.Logger),
		Changes:  api.NewChangeAPI(b.Hub, b.Logger),
	}
}

// Handler is the full HTTP handler, /health included.
func (b *Bootstrap) Handler() http.Handler {
	return api.NewHandler(api.NewRouter(b.API.Handlers, b.Logger), b.HealthChecks())
}
