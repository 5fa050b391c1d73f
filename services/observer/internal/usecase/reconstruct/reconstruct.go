package reconstruct

import (
	eventlogv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
	recordv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/record/v1"
)

// Orders extracts ORDER PLACED rows. A missing order type token becomes UNKNOWN.
func Orders(events []eventlogv1.LogEvent) ([]recordv1.OrderPlaced, int) {
	return orderRule.extract(events)
}

// Trades extracts TRADE rows.
func Trades(events []eventlogv1.LogEvent) ([]recordv1.Trade, int) {
	return tradeRule.extract(events)
}

// Modifications extracts ORDER MODIFIED rows with the field name uppercased.
func Modifications(events []eventlogv1.LogEvent) ([]recordv1.Modification, int) {
	return modificationRule.extract(events)
}

// Cancellations extracts ORDER CANCELED rows. A missing order type token becomes UNKNOWN.
func Cancellations(events []eventlogv1.LogEvent) ([]recordv1.Cancellation, int) {
	return cancellationRule.extract(events)
}

// All runs the four extractors over events.
func All(events []eventlogv1.LogEvent) recordv1.Set {
	var set recordv1.Set
	set.Orders, set.Dropped.Orders = Orders(events)
	set.Trades, set.Dropped.Trades = Trades(events)
	set.Modifications, set.Dropped.Modifications = Modifications(events)
	set.Cancellations, set.Dropped.Cancellations = Cancellations(events)
	return set
}
