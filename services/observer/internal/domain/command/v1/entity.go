package v1

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Action is the leading keyword of an engine command.
type Action string

const (
	ActionPlace  Action = "PLACE"
	ActionCancel Action = "CANCEL"
	ActionModify Action = "MODIFY"
	ActionClear  Action = "CLEAR"
)

// Request is a typed engine command.
type Request struct {
	Action    Action          `json:"action"`
	Side      string          `json:"side,omitempty"`
	OrderType string          `json:"orderType,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity,omitempty"`
	OrderID   int64           `json:"orderId,omitempty"`
	Field     string          `json:"field,omitempty"`
	Value     decimal.Decimal `json:"value"`
	Secret    string          `json:"secret,omitempty"`
}

// String renders the request in the engine grammar:
//
//	PLACE <BUY|SELL> <LIMIT|MARKET> <price> <quantity>
//	CANCEL <orderId>
//	MODIFY <orderId> <PRICE|QTY> <newValue>
//	CLEAR <adminSecret>
func (r Request) String() string {
	switch r.Action {
	case ActionPlace:
		return fmt.Sprintf("PLACE %s %s %s %d", r.Side, r.OrderType, r.Price.String(), r.Quantity)
	case ActionCancel:
		return fmt.Sprintf("CANCEL %d", r.OrderID)
	case ActionModify:
		return fmt.Sprintf("MODIFY %d %s %s", r.OrderID, r.Field, r.Value.String())
	case ActionClear:
		return "CLEAR " + r.Secret
	}
	return string(r.Action)
}

// Redacted is String with the admin secret masked, for logs.
func (r Request) Redacted() string {
	if r.Action == ActionClear {
		return "CLEAR ***"
	}
	return r.String()
}

// ParseRequest reads a command line in the engine grammar. Tokens are
// case-insensitive except the admin secret. Semantic checks are left to the caller.
func ParseRequest(line string) (Request, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Request{}, fmt.Errorf("empty command")
	}

	req := Request{Action: Action(strings.ToUpper(tokens[0]))}
	args := tokens[1:]

	var err error
	switch req.Action {
	case ActionPlace:
		if len(args) != 4 {
			return Request{}, fmt.Errorf("PLACE expects 4 arguments, got %d", len(args))
		}
		req.Side = strings.ToUpper(args[0])
		req.OrderType = strings.ToUpper(args[1])
		if req.Price, err = decimal.NewFromString(args[2]); err != nil {
			return Request{}, fmt.Errorf("invalid price %q", args[2])
		}
		if req.Quantity, err = strconv.ParseInt(args[3], 10, 64); err != nil {
			return Request{}, fmt.Errorf("invalid quantity %q", args[3])
		}
	case ActionCancel:
		if len(args) != 1 {
			return Request{}, fmt.Errorf("CANCEL expects 1 argument, got %d", len(args))
		}
		if req.OrderID, err = strconv.ParseInt(args[0], 10, 64); err != nil {
			return Request{}, fmt.Errorf("invalid order id %q", args[0])
		}
	case ActionModify:
		if len(args) != 3 {
			return Request{}, fmt.Errorf("MODIFY expects 3 arguments, got %d", len(args))
		}
		if req.OrderID, err = strconv.ParseInt(args[0], 10, 64); err != nil {
			return Request{}, fmt.Errorf("invalid order id %q", args[0])
		}
		req.Field = strings.ToUpper(args[1])
		if req.Value, err = decimal.NewFromString(args[2]); err != nil {
			return Request{}, fmt.Errorf("invalid value %q", args[2])
		}
	case ActionClear:
		if len(args) != 1 {
			return Request{}, fmt.Errorf("CLEAR expects the admin secret")
		}
		req.Secret = args[0]
	default:
		return Request{}, fmt.Errorf("unknown command %q", tokens[0])
	}

	return req, nil
}

// Status is the outcome class of one engine invocation.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusCompileFailure Status = "compile_failure"
	StatusRuntimeFailure Status = "runtime_failure"
	StatusTimeout        Status = "timeout"
)

// Result is the typed outcome of Execute.
type Result struct {
	Status  Status `json:"status"`
	Command string `json:"command"`
	Message string `json:"message"`
	// Stderr of the failing build or run step.
	Stderr string `json:"stderr,omitempty"`
	// Output is the console file written by the engine, empty when absent.
	Output   string        `json:"output"`
	Duration time.Duration `json:"duration"`
}

// OK reports a successful run.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}
