package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	recordv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/record/v1"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ts := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	set := recordv1.Set{
		Orders: []recordv1.OrderPlaced{{Seq: 1, Timestamp: ts, ID: 7, Side: "BUY", OrderType: "LIMIT", Price: decimal.NewFromInt(100), Quantity: 5}},
		Trades: []recordv1.Trade{{Seq: 2, Timestamp: ts, BuyID: 7, SellID: 9, Price: decimal.RequireFromString("100.50"), Quantity: 2}},
	}

	writer := &fakeWriter{}
	p := &Publisher{writer: writer, logger: logger.NewNopLogger()}

	n, err := p.Publish(context.Background(), set)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, writer.msgs, 2)

	trade := writer.msgs[1]
	assert.Equal(t, []byte("2"), trade.Key)
	assert.Equal(t, []kafka.Header{{Key: "kind", Value: []byte("trade")}}, trade.Headers)

	var envelope struct {
		Kind           string         `json:"kind"`
		GrammarVersion int            `json:"grammarVersion"`
		Record         map[string]any `json:"record"`
	}
	require.NoError(t, json.Unmarshal(trade.Value, &envelope))
	assert.Equal(t, "trade", envelope.Kind)
	assert.Equal(t, 1, envelope.GrammarVersion)
	assert.Equal(t, "100.5", envelope.Record["price"])
	assert.Equal(t, "2025-05-01T09:30:00Z", envelope.Record["timestamp"])

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestPublisher_PublishEmpty(t *testing.T) {
	writer := &fakeWriter{err: errors.New("unreachable")}
	p := &Publisher{writer: writer, logger: logger.NewNopLogger()}

	n, err := p.Publish(context.Background(), recordv1.Set{})
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestPublisher_PublishFailure(t *testing.T) {
	writer := &fakeWriter{err: errors.New("leader not available")}
	p := &Publisher{writer: writer, logger: logger.NewNopLogger()}

	n, err := p.Publish(context.Background(), recordv1.Set{
		Cancellations: []recordv1.Cancellation{{Seq: 4, ID: 4, Side: "BUY", OrderType: "UNKNOWN"}},
	})
	assert.Zero(t, n)
	assert.EqualError(t, err, "failed to publish records")
	assert.ErrorContains(t, errors.Unwrap(err), "leader not available")
}
