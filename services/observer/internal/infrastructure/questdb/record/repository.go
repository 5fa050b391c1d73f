package record

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/muhammadchandra19/orderbook-observer/pkg/questdb"
	recordv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/record/v1"
	sinkv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/sink/v1"
)

const highWaterMarkQuery = `SELECT coalesce(max(seq), 0) FROM (
	SELECT max(seq) seq FROM orders
	UNION ALL SELECT max(seq) seq FROM trades
	UNION ALL SELECT max(seq) seq FROM modifications
	UNION ALL SELECT max(seq) seq FROM cancellations
)`

const (
	anchorTable = "sync_anchor"
	anchorQuery = "SELECT fingerprint FROM sync_anchor ORDER BY ts DESC LIMIT 1"
	anchorSQL   = "INSERT INTO sync_anchor (ts, fingerprint) VALUES (now(), $1)"
)

// Repository stores reconstructed records in QuestDB.
type Repository struct {
	client questdb.QuestDBClient
}

var _ sinkv1.RecordStore = (*Repository)(nil)

// NewRepository creates a new record repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// HighWaterMark returns the largest stored seq across the record tables.
func (r *Repository) HighWaterMark(ctx context.Context) (int64, error) {
	var mark int64
	if err := r.client.QueryRow(ctx, highWaterMarkQuery).Scan(&mark); err != nil {
		return 0, fmt.Errorf("failed to query high-water mark: %w", err)
	}
	return mark, nil
}

// Anchor returns the latest stored log fingerprint, empty when none was stored.
func (r *Repository) Anchor(ctx context.Context) (string, error) {
	var anchor string
	if err := r.client.QueryRow(ctx, anchorQuery).Scan(&anchor); err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query sync anchor: %w", err)
	}
	return anchor, nil
}

// SetAnchor records the fingerprint of the log being synced.
func (r *Repository) SetAnchor(ctx context.Context, anchor string) error {
	if err := r.client.Exec(ctx, anchorSQL, anchor); err != nil {
		return fmt.Errorf("failed to store sync anchor: %w", err)
	}
	return nil
}

// Store inserts every record of set, one multi-row insert per table, in a
// single transaction.
func (r *Repository) Store(ctx context.Context, set recordv1.Set) error {
	return questdb.WithinTx(ctx, r.client, func(ctx context.Context) error {
		for _, batch := range []struct {
			table   string
			columns []string
			rows    [][]any
		}{
			{"orders", orderColumns, orderRows(set.Orders)},
			{"trades", tradeColumns, tradeRows(set.Trades)},
			{"modifications", modificationColumns, modificationRows(set.Modifications)},
			{"cancellations", cancellationColumns, cancellationRows(set.Cancellations)},
		} {
			if len(batch.rows) == 0 {
				continue
			}
			query, args := insertQuery(batch.table, batch.columns, batch.rows)
			if err := r.client.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to store %s: %w", batch.table, err)
			}
		}
		return nil
	})
}

// Reset empties every record table and the anchor.
func (r *Repository) Reset(ctx context.Context) error {
	for _, table := range append(Tables[:len(Tables):len(Tables)], anchorTable) {
		if err := r.client.Exec(ctx, "TRUNCATE TABLE "+table); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// insertQuery builds INSERT INTO t (c1, c2) VALUES ($1, $2), ($3, $4).
func insertQuery(table string, columns []string, rows [][]any) (string, []any) {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", "))

	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			args = append(args, v)
			fmt.Fprintf(&b, "$%d", len(args))
		}
		b.WriteByte(')')
	}
	return b.String(), args
}
