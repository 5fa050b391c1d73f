package kafka

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	recordv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/record/v1"
	sinkv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/sink/v1"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/internal/usecase/reconstruct"
	"github.com/muhammadchandra19/orderbook-observer/services/observer/pkg/config"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope is the JSON value of every message.
type Envelope struct {
	Kind           recordv1.Kind `json:"kind"`
	GrammarVersion int           `json:"grammarVersion"`
	Record         any           `json:"record"`
}

// Publisher streams reconstructed records to a Kafka topic, keyed by seq.
type Publisher struct {
	writer messageWriter
	logger logger.Interface
}

var _ sinkv1.Publisher = (*Publisher)(nil)

// NewPublisher creates a Kafka publisher for reconstructed records.
func NewPublisher(cfg config.KafkaConfig, logger logger.Interface) *Publisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Topic,
		BatchTimeout: cfg.BatchTimeout,
		Balancer:     &kafka.Hash{},
	})

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// Publish writes one message per record, in log order within each kind.
func (p *Publisher) Publish(ctx context.Context, set recordv1.Set) (int, error) {
	msgs := make([]kafka.Message, 0, set.Len())
	add := func(kind recordv1.Kind, seq int64, record any) error {
		value, err := json.Marshal(Envelope{Kind: kind, GrammarVersion: reconstruct.GrammarVersion, Record: record})
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:     []byte(strconv.FormatInt(seq, 10)),
			Value:   value,
			Headers: []kafka.Header{{Key: "kind", Value: []byte(kind)}},
		})
		return nil
	}

	for _, r := range set.Orders {
		if err := add(recordv1.KindOrder, r.Seq, r); err != nil {
			return 0, errors.TracerFromError(err)
		}
	}
	for _, r := range set.Trades {
		if err := add(recordv1.KindTrade, r.Seq, r); err != nil {
			return 0, errors.TracerFromError(err)
		}
	}
	for _, r := range set.Modifications {
		if err := add(recordv1.KindModification, r.Seq, r); err != nil {
			return 0, errors.TracerFromError(err)
		}
	}
	for _, r := range set.Cancellations {
		if err := add(recordv1.KindCancellation, r.Seq, r); err != nil {
			return 0, errors.TracerFromError(err)
		}
	}

	if len(msgs) == 0 {
		return 0, nil
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.ErrorContext(ctx, err, logger.NewField("messages", len(msgs)))
		return 0, errors.NewTracer("failed to publish records").Wrap(err)
	}
	return len(msgs), nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
