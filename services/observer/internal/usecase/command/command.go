package command

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	v1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/command/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog"
	recordv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/record/v1"
)

// Usecase validates commands and hands them to the engine.
type Usecase struct {
	engine      v1.Engine
	loader      eventlog.Loader
	adminSecret string
	logger      logger.Interface
}

// NewUsecase creates a new command usecase. An empty adminSecret disables CLEAR.
func NewUsecase(engine v1.Engine, loader eventlog.Loader, adminSecret string, logger logger.Interface) *Usecase {
	return &Usecase{
		engine:      engine,
		loader:      loader,
		adminSecret: adminSecret,
		logger:      logger,
	}
}

// Execute validates req, runs it and drops the cached log so the next read
// sees the rows the engine appended.
func (u *Usecase) Execute(ctx context.Context, req v1.Request) (v1.Result, error) {
	req, err := u.validate(ctx, req)
	if err != nil {
		return v1.Result{}, err
	}

	result, err := u.engine.Execute(ctx, req.String())
	if err != nil {
		return v1.Result{}, errors.TracerFromError(err)
	}
	result.Command = req.Redacted()
	u.loader.Invalidate()

	fields := []logger.Field{
		logger.NewField("command", req.Redacted()),
		logger.NewField("status", string(result.Status)),
		logger.NewField("duration", result.Duration.String()),
	}
	if !result.OK() {
		u.logger.WarnContext(ctx, "engine command failed", append(fields, logger.NewField("message", result.Message))...)
		return result, nil
	}
	u.logger.InfoContext(ctx, "engine command executed", fields...)
	return result, nil
}

// Console returns the last engine output.
func (u *Usecase) Console(ctx context.Context) (string, error) {
	output, err := u.engine.ReadConsole(ctx)
	if err != nil {
		return "", errors.TracerFromError(err)
	}
	return output, nil
}

func (u *Usecase) validate(ctx context.Context, req v1.Request) (v1.Request, error) {
	switch req.Action {
	case v1.ActionPlace:
		if req.Side != recordv1.SideBuy && req.Side != recordv1.SideSell {
			return req, invalid("side", "side must be BUY or SELL, got %q", req.Side)
		}
		switch req.OrderType {
		case recordv1.OrderTypeMarket:
			req.Price = decimal.Zero
		case recordv1.OrderTypeLimit:
			if req.Price.IsNegative() {
				return req, invalid("price", "price must not be negative")
			}
		default:
			return req, invalid("orderType", "order type must be LIMIT or MARKET, got %q", req.OrderType)
		}
		if req.Quantity <= 0 {
			return req, invalid("quantity", "quantity must be positive")
		}
	case v1.ActionCancel:
		if req.OrderID <= 0 {
			return req, invalid("orderId", "order id must be positive")
		}
	case v1.ActionModify:
		if req.OrderID <= 0 {
			return req, invalid("orderId", "order id must be positive")
		}
		switch req.Field {
		case recordv1.FieldPrice:
			if req.Value.IsNegative() {
				return req, invalid("value", "price must not be negative")
			}
		case recordv1.FieldQty:
			if !req.Value.IsPositive() || !req.Value.IsInteger() {
				return req, invalid("value", "quantity must be a positive integer")
			}
		default:
			return req, invalid("field", "field must be PRICE or QTY, got %q", req.Field)
		}
	case v1.ActionClear:
		if u.adminSecret == "" || subtle.ConstantTimeCompare([]byte(req.Secret), []byte(u.adminSecret)) != 1 {
			u.logger.WarnContext(ctx, "rejected clear command", logger.NewField("command", req.Redacted()))
			return req, errors.NewErrorDetails("invalid admin secret", string(errors.CommandUnauthorized), "secret")
		}
	default:
		return req, invalid("action", "unknown command %q", req.Action)
	}
	return req, nil
}

func invalid(field, format string, args ...any) *errors.ErrorDetails {
	return errors.NewErrorDetails(fmt.Sprintf(format, args...), string(errors.CommandInvalid), field)
}
