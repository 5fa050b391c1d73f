package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
	// Warnings lists non-fatal source problems, e.g. a missing snapshot file.
	Warnings []Warning `json:"warnings"`
}

// Warning is one ErrorDetails in wire form.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func warningsOf(warnings *errors.BaseError) []Warning {
	out := []Warning{}
	if !warnings.HasDetails() {
		return out
	}
	for _, d := range warnings.GetDetails() {
		out = append(out, Warning{Code: d.Code, Message: d.Message, Field: d.Field})
	}
	return out
}

func success(c *gin.Context, data any, warnings *errors.BaseError) {
	c.JSON(http.StatusOK, Response{
		Status:    "success",
		Message:   "success",
		Code:      "ok",
		Timestamp: time.Now().UTC(),
		Data:      data,
		Warnings:  warningsOf(warnings),
	})
}

// failure answers with the status mapped from the error code. Server side
// failures are logged, client mistakes are not. Internal details are hidden
// except for a failed export, whose message names the table and format.
func failure(c *gin.Context, log logger.Interface, err error) {
	status := statusOf(err)
	code := errors.CodeOf(err)
	if code == "" {
		code = string(errors.GeneralInternalServerError)
	}

	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.ErrorContext(c.Request.Context(), err,
			logger.NewField("method", c.Request.Method),
			logger.NewField("path", c.FullPath()),
		)
		if code != string(errors.SerializationFailure) {
			message = "internal server error"
		}
	}

	c.AbortWithStatusJSON(status, Response{
		Status:    "error",
		Message:   message,
		Code:      code,
		Timestamp: time.Now().UTC(),
		Warnings:  []Warning{},
	})
}

func statusOf(err error) int {
	switch errors.ErrorCode(errors.CodeOf(err)) {
	case errors.CommandInvalid, errors.GeneralBadRequestError:
		return http.StatusBadRequest
	case errors.CommandUnauthorized:
		return http.StatusForbidden
	case errors.GeneralNotFoundError:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func badRequest(message, field string) error {
	return errors.NewErrorDetails(message, string(errors.GeneralBadRequestError), field)
}
