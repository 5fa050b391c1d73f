//go:build integration

package record

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/muhammadchandra19/orderbook-observer/pkg/questdb"
	recordv1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/record/v1"
)

type RepositorySuite struct {
	suite.Suite
	container *questdb.TestContainer
	repo      *Repository
}

func (s *RepositorySuite) SetupSuite() {
	config := questdb.DefaultTestContainerConfig()
	config.MigrationsPath = "../../../../migrations"

	container, err := questdb.NewTestContainer(context.Background(), config)
	s.Require().NoError(err)

	s.container = container
	s.repo = NewRepository(container.Client)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.container != nil {
		s.NoError(s.container.Close())
	}
}

func (s *RepositorySuite) SetupTest() {
	s.Require().NoError(s.container.TruncateTables(append(Tables, anchorTable)...))
}

// WAL tables apply writes asynchronously.
func (s *RepositorySuite) eventuallyMark(want int64) {
	s.Eventually(func() bool {
		mark, err := s.repo.HighWaterMark(context.Background())
		return err == nil && mark == want
	}, 30*time.Second, 200*time.Millisecond)
}

func (s *RepositorySuite) TestStoreAndReset() {
	ctx := context.Background()
	ts := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

	mark, err := s.repo.HighWaterMark(ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), mark)

	set := recordv1.Set{
		Orders: []recordv1.OrderPlaced{
			{Seq: 1, Timestamp: ts, ID: 7, Side: "BUY", OrderType: "LIMIT", Price: decimal.NewFromInt(100), Quantity: 5},
		},
		Trades: []recordv1.Trade{
			{Seq: 2, Timestamp: ts, BuyID: 7, SellID: 9, Price: decimal.RequireFromString("100.5"), Quantity: 2},
		},
		Modifications: []recordv1.Modification{
			{Seq: 3, Timestamp: ts, ID: 7, ModifiedField: "PRICE", NewValue: decimal.NewFromInt(101)},
		},
		Cancellations: []recordv1.Cancellation{
			{Seq: 4, Timestamp: ts, ID: 7, Side: "BUY", OrderType: "UNKNOWN", Quantity: 3, Reason: "USER", CancelType: "MANUAL"},
		},
	}
	s.Require().NoError(s.repo.Store(ctx, set))
	s.eventuallyMark(4)

	// replays are deduplicated on (ts, seq)
	s.Require().NoError(s.repo.Store(ctx, set))
	var trades int64
	s.Eventually(func() bool {
		return s.container.Client.QueryRow(ctx, "SELECT count() FROM trades").Scan(&trades) == nil && trades == 1
	}, 30*time.Second, 200*time.Millisecond)

	s.Require().NoError(s.repo.Reset(ctx))
	s.eventuallyMark(0)
}

func (s *RepositorySuite) TestAnchor() {
	ctx := context.Background()

	anchor, err := s.repo.Anchor(ctx)
	s.Require().NoError(err)
	s.Empty(anchor)

	s.Require().NoError(s.repo.SetAnchor(ctx, "first"))
	s.Eventually(func() bool {
		anchor, err := s.repo.Anchor(ctx)
		return err == nil && anchor == "first"
	}, 30*time.Second, 200*time.Millisecond)
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a QuestDB container")
	}
	suite.Run(t, new(RepositorySuite))
}
