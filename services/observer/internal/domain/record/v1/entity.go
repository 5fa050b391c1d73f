package v1

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side and order type tokens of the engine log.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"

	OrderTypeLimit   = "LIMIT"
	OrderTypeMarket  = "MARKET"
	OrderTypeUnknown = "UNKNOWN"

	FieldPrice = "PRICE"
	FieldQty   = "QTY"
)

// Kind names a reconstructed record category.
type Kind string

const (
	KindOrder        Kind = "order"
	KindTrade        Kind = "trade"
	KindModification Kind = "modification"
	KindCancellation Kind = "cancellation"
)

// OrderPlaced is an ORDER PLACED row.
type OrderPlaced struct {
	Seq       int64           `json:"seq"`
	Timestamp time.Time       `json:"timestamp"`
	ID        int64           `json:"id"`
	Side      string          `json:"side"`
	OrderType string          `json:"orderType"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// Trade is a TRADE row.
type Trade struct {
	Seq       int64           `json:"seq"`
	Timestamp time.Time       `json:"timestamp"`
	BuyID     int64           `json:"buyId"`
	SellID    int64           `json:"sellId"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// Modification is an ORDER MODIFIED row.
type Modification struct {
	Seq           int64           `json:"seq"`
	Timestamp     time.Time       `json:"timestamp"`
	ID            int64           `json:"id"`
	ModifiedField string          `json:"modifiedField"`
	NewValue      decimal.Decimal `json:"newValue"`
}

// Cancellation is an ORDER CANCELED row.
type Cancellation struct {
	Seq        int64     `json:"seq"`
	Timestamp  time.Time `json:"timestamp"`
	ID         int64     `json:"id"`
	Side       string    `json:"side"`
	OrderType  string    `json:"orderType"`
	Quantity   int64     `json:"quantity"`
	Reason     string    `json:"reason"`
	CancelType string    `json:"cancelType"`
}

// Dropped counts rows of a category whose details did not match its grammar.
type Dropped struct {
	Orders        int `json:"orders"`
	Trades        int `json:"trades"`
	Modifications int `json:"modifications"`
	Cancellations int `json:"cancellations"`
}

// Total sums every category.
func (d Dropped) Total() int {
	return d.Orders + d.Trades + d.Modifications + d.Cancellations
}

// Set holds the four reconstructed tables of one log pass, each in log order.
type Set struct {
	Orders        []OrderPlaced
	Trades        []Trade
	Modifications []Modification
	Cancellations []Cancellation
	Dropped       Dropped
}

// Len is the number of records in the set.
func (s Set) Len() int {
	return len(s.Orders) + len(s.Trades) + len(s.Modifications) + len(s.Cancellations)
}

// MaxSeq is the largest Seq of any record, 0 for an empty set.
func (s Set) MaxSeq() int64 {
	var top int64
	for _, r := range s.Orders {
		top = max(top, r.Seq)
	}
	for _, r := range s.Trades {
		top = max(top, r.Seq)
	}
	for _, r := range s.Modifications {
		top = max(top, r.Seq)
	}
	for _, r := range s.Cancellations {
		top = max(top, r.Seq)
	}
	return top
}
