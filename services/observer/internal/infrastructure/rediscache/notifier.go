package rediscache

import (
	"context"
	"encoding/json"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/pkg/redis"
	venuev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/venue/v1"
)

// Notifier publishes venue changes on the <prefix>changes channel so other
// observer instances can refresh.
type Notifier struct {
	client redis.Client
	logger logger.Interface
}

var _ venuev1.Notifier = (*Notifier)(nil)

// NewNotifier creates a redis change notifier.
func NewNotifier(client redis.Client, logger logger.Interface) *Notifier {
	return &Notifier{client: client, logger: logger}
}

// Channel is the pub/sub channel changes are published on.
func (n *Notifier) Channel() string {
	return n.client.Key("changes")
}

// Notify publishes change as JSON.
func (n *Notifier) Notify(ctx context.Context, change venuev1.Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}

	receivers, err := n.client.Publish(ctx, n.Channel(), payload)
	if err != nil {
		return err
	}
	n.logger.DebugContext(ctx, "venue change published",
		logger.NewField("source", string(change.Source)),
		logger.NewField("receivers", receivers),
	)
	return nil
}
