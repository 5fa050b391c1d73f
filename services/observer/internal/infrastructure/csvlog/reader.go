package csvlog

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	eventlogv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
)

const (
	columnTimestamp = "timestamp"
	columnType      = "type"
	columnDetails   = "details"

	// ctxCheckEvery is how many rows are read between context checks.
	ctxCheckEvery = 1024
)

// Reader reads the engine's CSV event log. The engine may be appending while
// we read, so rows that cannot be decoded are skipped and counted, and a last
// row without its trailing newline is never decoded.
type Reader struct {
	path     string
	location *time.Location
}

var _ eventlogv1.Source = (*Reader)(nil)

// NewReader creates a reader for path. Naive timestamps are read in location.
func NewReader(path string, location *time.Location) *Reader {
	if location == nil {
		location = time.Local
	}
	return &Reader{path: path, location: location}
}

// Path returns the file being read.
func (r *Reader) Path() string {
	return r.path
}

// Read returns every decodable row in file order.
func (r *Reader) Read(ctx context.Context) ([]eventlogv1.LogEvent, eventlogv1.ReadStats, error) {
	var stats eventlogv1.ReadStats

	f, err := os.Open(r.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, stats, errors.NewErrorDetails(
				"File not found: "+filepath.Base(r.path), string(errors.SourceUnavailable), "log")
		}
		return nil, stats, errors.NewErrorDetails(err.Error(), string(errors.SourceUnavailable), "log")
	}
	defer f.Close()

	lines := newCompleteLines(f)
	cr := csv.NewReader(lines)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, stats, malformed("no columns to parse from file")
		}
		return nil, stats, malformed(err.Error())
	}
	columns, err := locate(header)
	if err != nil {
		return nil, stats, err
	}

	events := make([]eventlogv1.LogEvent, 0)
	for {
		record, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		stats.Rows++
		if stats.Rows%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		if err != nil {
			var parseErr *csv.ParseError
			if stderrors.As(err, &parseErr) {
				stats.Skipped++
				continue
			}
			return nil, stats, malformed(err.Error())
		}

		event, ok := r.decode(record, columns)
		if !ok {
			stats.Skipped++
			continue
		}
		event.Seq = int64(stats.Rows)
		events = append(events, event)
	}

	if lines.partial() {
		stats.Rows++
		stats.Skipped++
	}

	return events, stats, nil
}

type columnIndex struct {
	timestamp, typ, details int
}

// locate finds the required columns by name, ignoring case and surrounding space.
func locate(header []string) (columnIndex, error) {
	index := map[string]int{}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
		}
		return i
	}
	columns := columnIndex{
		timestamp: lookup(columnTimestamp),
		typ:       lookup(columnType),
		details:   lookup(columnDetails),
	}
	if len(missing) > 0 {
		return columnIndex{}, malformed(fmt.Sprintf("missing column(s): %s", strings.Join(missing, ", ")))
	}
	return columns, nil
}

func (r *Reader) decode(record []string, columns columnIndex) (eventlogv1.LogEvent, bool) {
	if len(record) <= max(columns.timestamp, columns.typ, columns.details) {
		return eventlogv1.LogEvent{}, false
	}

	ts, ok := r.parseTime(strings.TrimSpace(record[columns.timestamp]))
	if !ok {
		return eventlogv1.LogEvent{}, false
	}

	return eventlogv1.LogEvent{
		Timestamp: ts,
		Type:      strings.TrimSpace(record[columns.typ]),
		Details:   record[columns.details],
	}, true
}

func (r *Reader) parseTime(s string) (time.Time, bool) {
	if ts, err := time.ParseInLocation("2006-01-02 15:04:05", s, r.location); err == nil {
		return ts, true
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

func malformed(reason string) error {
	return errors.NewErrorDetails("Error loading log file: "+reason, string(errors.MalformedSource), "log")
}
