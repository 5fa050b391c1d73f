package v1

// Report summarises one synchronisation pass.
type Report struct {
	// From is the high-water mark the pass started at.
	From int64 `json:"from"`
	// To is the high-water mark after the pass.
	To        int64 `json:"to"`
	Stored    int   `json:"stored"`
	Published int   `json:"published"`
	// Reset is true when the log was cleared since the last pass and the sink
	// was emptied.
	Reset bool `json:"reset"`
}
