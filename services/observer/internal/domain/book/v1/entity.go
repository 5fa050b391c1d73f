package v1

import (
	"fmt"
	"strings"
)

// Side identifies one half of the order book.
type Side string

const (
	// Buy is the bid side.
	Buy Side = "buy"
	// Sell is the ask side.
	Sell Side = "sell"
)

// ParseSide accepts "buy" or "sell" in any case.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	}
	return "", fmt.Errorf("unknown book side %q", s)
}

// BookLevel is one resting order of a snapshot.
type BookLevel struct {
	OrderID  int64 `json:"orderId"`
	Quantity int64 `json:"quantity"`
	Price    int64 `json:"price"`
}

// String renders the level in the snapshot line format.
func (l BookLevel) String() string {
	return fmt.Sprintf("ID#%d | Qty: %d | Price: %d", l.OrderID, l.Quantity, l.Price)
}

// DepthPoint is the resting quantity of both sides at one price.
type DepthPoint struct {
	Price        int64 `json:"price"`
	BuyQuantity  int64 `json:"buyQuantity"`
	SellQuantity int64 `json:"sellQuantity"`
}

// Snapshot is the raw text of one side, with Found false when the file is absent.
type Snapshot struct {
	Side  Side
	Path  string
	Text  string
	Found bool
}
