package tables

import (
	archivev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/archive/v1"
	bookv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/book/v1"
	eventlogv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/eventlog/v1"
	recordv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/record/v1"
)

var (
	orderColumns        = []string{"Timestamp", "ID", "Side", "Order Type", "Price", "Qty"}
	tradeColumns        = []string{"Timestamp", "Buy ID", "Sell ID", "Price", "Qty"}
	modificationColumns = []string{"Timestamp", "ID", "Modified Field", "New Value"}
	cancellationColumns = []string{"Timestamp", "ID", "Side", "Order Type", "Qty", "Reason", "Cancel Type"}
	rawLogColumns       = []string{"Timestamp", "Type", "Details"}
	bookColumns         = []string{"ID", "Qty", "Price"}
)

func orderTable(records []recordv1.OrderPlaced) archivev1.Table {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.Timestamp, r.ID, r.Side, r.OrderType, r.Price, r.Quantity}
	}
	return archivev1.Table{Name: archivev1.TableOrders, Columns: orderColumns, Rows: rows}
}

func tradeTable(records []recordv1.Trade) archivev1.Table {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.Timestamp, r.BuyID, r.SellID, r.Price, r.Quantity}
	}
	return archivev1.Table{Name: archivev1.TableTrades, Columns: tradeColumns, Rows: rows}
}

func modificationTable(records []recordv1.Modification) archivev1.Table {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.Timestamp, r.ID, r.ModifiedField, r.NewValue}
	}
	return archivev1.Table{Name: archivev1.TableModifications, Columns: modificationColumns, Rows: rows}
}

func cancellationTable(records []recordv1.Cancellation) archivev1.Table {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.Timestamp, r.ID, r.Side, r.OrderType, r.Quantity, r.Reason, r.CancelType}
	}
	return archivev1.Table{Name: archivev1.TableCancellations, Columns: cancellationColumns, Rows: rows}
}

func rawLogTable(events []eventlogv1.LogEvent) archivev1.Table {
	rows := make([][]any, len(events))
	for i, e := range events {
		rows[i] = []any{e.Timestamp, e.Type, e.Details}
	}
	return archivev1.Table{Name: archivev1.TableRawLogs, Columns: rawLogColumns, Rows: rows}
}

func bookTable(name string, levels []bookv1.BookLevel) archivev1.Table {
	rows := make([][]any, len(levels))
	for i, l := range levels {
		rows[i] = []any{l.OrderID, l.Quantity, l.Price}
	}
	return archivev1.Table{Name: name, Columns: bookColumns, Rows: rows}
}
