package hub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	loggerMock "github.com/muhammadchandra19/orderbook-observer/pkg/logger/mock"
	venuev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/venue/v1"
	venueMock "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/venue/v1/mock"
)

func TestHub_Broadcast(t *testing.T) {
	change := venuev1.Change{Source: venuev1.SourceLog, Path: "/venue/all_info.csv", At: time.Unix(1700000000, 0).UTC()}

	testCases := []struct {
		name     string
		mockFn   func(notifier *venueMock.MockNotifier, log *loggerMock.MockInterface)
		withNote bool
	}{
		{
			name:   "local subscribers only",
			mockFn: func(notifier *venueMock.MockNotifier, log *loggerMock.MockInterface) {},
		},
		{
			name:     "notifies remote listeners",
			withNote: true,
			mockFn: func(notifier *venueMock.MockNotifier, log *loggerMock.MockInterface) {
				notifier.EXPECT().Notify(gomock.Any(), change).Return(nil)
			},
		},
		{
			name:     "notifier failure is logged",
			withNote: true,
			mockFn: func(notifier *venueMock.MockNotifier, log *loggerMock.MockInterface) {
				notifier.EXPECT().Notify(gomock.Any(), change).Return(errors.New("redis down"))
				log.EXPECT().WarnContext(gomock.Any(), "change notification failed",
					logger.NewField("source", "log"),
					logger.NewField("error", "redis down"),
				)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			notifier := venueMock.NewMockNotifier(ctrl)
			log := loggerMock.NewMockInterface(ctrl)
			tc.mockFn(notifier, log)

			h := New(nil, log)
			if tc.withNote {
				h = New(notifier, log)
			}

			first, _ := h.Subscribe()
			second, _ := h.Subscribe()
			h.Broadcast(context.Background(), change)

			assert.Equal(t, change, <-first)
			assert.Equal(t, change, <-second)
		})
	}
}

func TestHub_SlowSubscriberDropsChanges(t *testing.T) {
	h := New(nil, logger.NewNopLogger())
	ch, _ := h.Subscribe()

	for i := 0; i < subscriberBuffer+3; i++ {
		h.Broadcast(context.Background(), venuev1.Change{Source: venuev1.SourceBuyBook})
	}

	assert.Len(t, ch, subscriberBuffer)
	assert.Equal(t, int64(3), h.Dropped())
}

func TestHub_Unsubscribe(t *testing.T) {
	h := New(nil, logger.NewNopLogger())
	ch, cancel := h.Subscribe()
	require.Equal(t, 1, h.Subscribers())

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, h.Subscribers())
}

func TestHub_RunClosesSubscribers(t *testing.T) {
	h := New(nil, logger.NewNopLogger())
	ch, cancel := h.Subscribe()
	defer cancel()

	in := make(chan venuev1.Change, 1)
	in <- venuev1.Change{Source: venuev1.SourceSellBook}
	close(in)

	h.Run(context.Background(), in)

	change, open := <-ch
	require.True(t, open)
	assert.Equal(t, venuev1.SourceSellBook, change.Source)

	_, open = <-ch
	assert.False(t, open)

	late, _ := h.Subscribe()
	_, open = <-late
	assert.False(t, open)
}
