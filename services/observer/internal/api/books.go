package api

import (
	"github.com/gin-gonic/gin"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book"
	bookv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book/v1"
)

// BookAPI serves the order book snapshots.
type BookAPI struct {
	usecase book.Usecase
	logger  logger.Interface
}

// NewBookAPI creates a new BookAPI.
func NewBookAPI(usecase book.Usecase, logger logger.Interface) *BookAPI {
	return &BookAPI{
		usecase: usecase,
		logger:  logger,
	}
}

// GetBook handles GET /books/:side.
func (a *BookAPI) GetBook(c *gin.Context) {
	side, err := bookv1.ParseSide(c.Param("side"))
	if err != nil {
		failure(c, a.logger, badRequest(err.Error(), "side"))
		return
	}

	levels, warnings, err := a.usecase.Levels(c.Request.Context(), side)
	if err != nil {
		failure(c, a.logger, err)
		return
	}
	if levels == nil {
		levels = []bookv1.BookLevel{}
	}
	success(c, levels, warnings)
}

// GetDepth handles GET /depth.
func (a *BookAPI) GetDepth(c *gin.Context) {
	points, warnings, err := a.usecase.Depth(c.Request.Context())
	if err != nil {
		failure(c, a.logger, err)
		return
	}
	if points == nil {
		points = []bookv1.DepthPoint{}
	}
	success(c, points, warnings)
}
