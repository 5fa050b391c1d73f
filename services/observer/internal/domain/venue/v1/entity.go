package v1

import "time"

// Source names a venue file.
type Source string

const (
	SourceLog      Source = "log"
	SourceBuyBook  Source = "buy_book"
	SourceSellBook Source = "sell_book"
	SourceConsole  Source = "console"
)

// Change is emitted when a venue file is written, created or removed.
type Change struct {
	Source Source    `json:"source"`
	Path   string    `json:"path"`
	At     time.Time `json:"at"`
}
