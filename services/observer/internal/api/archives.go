package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive"
	archivev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/tables"
)

// WarningsHeader lists the codes of the warnings raised while building a download.
const WarningsHeader = "X-Observer-Warnings"

// ArchiveAPI serves the zip downloads.
type ArchiveAPI struct {
	tables  tables.Usecase
	archive archive.Usecase
	logger  logger.Interface
}

// NewArchiveAPI creates a new ArchiveAPI.
func NewArchiveAPI(tables tables.Usecase, archive archive.Usecase, logger logger.Interface) *ArchiveAPI {
	return &ArchiveAPI{
		tables:  tables,
		archive: archive,
		logger:  logger,
	}
}

// GetArchive handles GET /archives/:format.
func (a *ArchiveAPI) GetArchive(c *gin.Context) {
	format, err := archivev1.ParseFormat(c.Param("format"))
	if err != nil {
		failure(c, a.logger, badRequest(err.Error(), "format"))
		return
	}

	ctx := c.Request.Context()
	set, warnings, err := a.tables.Build(ctx, filterOf(c))
	if err != nil {
		failure(c, a.logger, err)
		return
	}

	data, err := a.archive.Build(ctx, set, format)
	if err != nil {
		failure(c, a.logger, err)
		return
	}

	if warnings.HasDetails() {
		codes := make([]string, 0, len(warnings.GetDetails()))
		for _, d := range warnings.GetDetails() {
			codes = append(codes, d.Code)
		}
		c.Header(WarningsHeader, strings.Join(codes, ","))
	}
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(format.ArchiveName()))
	c.Data(http.StatusOK, "application/zip", data)
}
