package api

import (
	"github.com/gin-gonic/gin"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/stats"
)

// StatsAPI serves the dashboard distributions.
type StatsAPI struct {
	usecase stats.Usecase
	logger  logger.Interface
}

// NewStatsAPI creates a new StatsAPI.
func NewStatsAPI(usecase stats.Usecase, logger logger.Interface) *StatsAPI {
	return &StatsAPI{
		usecase: usecase,
		logger:  logger,
	}
}

// GetStats handles GET /stats.
func (a *StatsAPI) GetStats(c *gin.Context) {
	result, warnings, err := a.usecase.Compute(c.Request.Context())
	if err != nil {
		failure(c, a.logger, err)
		return
	}
	success(c, result, warnings)
}
