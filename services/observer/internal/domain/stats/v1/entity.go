package v1

import "time"

// Count is one bar of a distribution.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// TimeCount is the number of events sharing one timestamp.
type TimeCount struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
}

// Stats are the dashboard distributions over the event log.
type Stats struct {
	// EventTypes counts rows per type, most frequent first.
	EventTypes []Count `json:"eventTypes"`
	// Sides counts BUY and SELL placements.
	Sides []Count `json:"sides"`
	// OrderTypes counts LIMIT and MARKET placements.
	OrderTypes []Count `json:"orderTypes"`
	// Modifications counts Price, Quantity and Other modifications.
	Modifications       []Count     `json:"modifications"`
	CancellationReasons []Count     `json:"cancellationReasons"`
	CancellationTypes   []Count     `json:"cancellationTypes"`
	TradesTimeline      []TimeCount `json:"tradesTimeline"`
}
