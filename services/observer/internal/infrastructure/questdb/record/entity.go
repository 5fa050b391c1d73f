package record

import recordv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/record/v1"

// Tables written by the repository.
var Tables = []string{"orders", "trades", "modifications", "cancellations"}

var (
	orderColumns        = []string{"seq", "ts", "order_id", "side", "order_type", "price", "qty"}
	tradeColumns        = []string{"seq", "ts", "buy_id", "sell_id", "price", "qty"}
	modificationColumns = []string{"seq", "ts", "order_id", "field", "new_value"}
	cancellationColumns = []string{"seq", "ts", "order_id", "side", "order_type", "qty", "reason", "cancel_type"}
)

// Prices are stored as DOUBLE.
func orderRows(records []recordv1.OrderPlaced) [][]any {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.Seq, r.Timestamp, r.ID, r.Side, r.OrderType, r.Price.InexactFloat64(), r.Quantity}
	}
	return rows
}

func tradeRows(records []recordv1.Trade) [][]any {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.Seq, r.Timestamp, r.BuyID, r.SellID, r.Price.InexactFloat64(), r.Quantity}
	}
	return rows
}

func modificationRows(records []recordv1.Modification) [][]any {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.Seq, r.Timestamp, r.ID, r.ModifiedField, r.NewValue.InexactFloat64()}
	}
	return rows
}

func cancellationRows(records []recordv1.Cancellation) [][]any {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.Seq, r.Timestamp, r.ID, r.Side, r.OrderType, r.Quantity, r.Reason, r.CancelType}
	}
	return rows
}
