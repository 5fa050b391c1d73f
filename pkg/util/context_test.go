package util

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextWithRequestID(t *testing.T) {
	testCases := []struct {
		name     string
		id       string
		assertFn func(t *testing.T, got string)
	}{
		{
			name: "keeps provided id",
			id:   "req-1",
			assertFn: func(t *testing.T, got string) {
				assert.Equal(t, "req-1", got)
			},
		},
		{
			name: "generates id when empty",
			id:   "",
			assertFn: func(t *testing.T, got string) {
				_, err := uuid.Parse(got)
				require.NoError(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := WithRequestID(context.Background(), tc.id)
			tc.assertFn(t, GetRequestID(ctx))
		})
	}
}

func TestGetters_EmptyContext(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetClientIP(ctx))
	assert.Empty(t, GetEventID(ctx))
}

func TestWithClientIPAndEventID(t *testing.T) {
	ctx := WithClientIP(context.Background(), "10.0.0.1")
	ctx = WithEventID(ctx, "evt-9")

	assert.Equal(t, "10.0.0.1", GetClientIP(ctx))
	assert.Equal(t, "evt-9", GetEventID(ctx))
}
