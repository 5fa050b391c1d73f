package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/command"
	commandv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/command/v1"
)

// CommandAPI forwards commands to the matching engine.
type CommandAPI struct {
	usecase command.Usecase
	logger  logger.Interface
}

// NewCommandAPI creates a new CommandAPI.
func NewCommandAPI(usecase command.Usecase, logger logger.Interface) *CommandAPI {
	return &CommandAPI{
		usecase: usecase,
		logger:  logger,
	}
}

// CommandBody is either a command line in the engine grammar or the typed
// fields of a request. Line wins when both are given.
type CommandBody struct {
	Line string `json:"line"`
	commandv1.Request
}

// PostCommand handles POST /commands.
func (a *CommandAPI) PostCommand(c *gin.Context) {
	var body CommandBody
	if err := c.ShouldBindJSON(&body); err != nil {
		failure(c, a.logger, errors.NewErrorDetails("invalid command body: "+err.Error(), string(errors.CommandInvalid), "body"))
		return
	}

	req := body.Request
	if body.Line != "" {
		parsed, err := commandv1.ParseRequest(body.Line)
		if err != nil {
			failure(c, a.logger, errors.NewErrorDetails(err.Error(), string(errors.CommandInvalid), "line"))
			return
		}
		req = parsed
	}

	result, err := a.usecase.Execute(c.Request.Context(), req)
	if err != nil {
		failure(c, a.logger, err)
		return
	}

	if !result.OK() {
		c.JSON(http.StatusBadGateway, Response{
			Status:    "error",
			Message:   result.Message,
			Code:      string(errors.ExternalProcessFailure),
			Timestamp: time.Now().UTC(),
			Data:      result,
			Warnings:  []Warning{},
		})
		return
	}
	success(c, result, nil)
}

// GetConsole handles GET /console.
func (a *CommandAPI) GetConsole(c *gin.Context) {
	output, err := a.usecase.Console(c.Request.Context())
	if err != nil {
		failure(c, a.logger, err)
		return
	}
	success(c, gin.H{"output": output}, nil)
}
