package v1

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		assertFn func(t *testing.T, req Request, err error)
	}{
		{
			name: "place limit",
			line: "place buy limit 100 5",
			assertFn: func(t *testing.T, req Request, err error) {
				require.NoError(t, err)
				assert.Equal(t, ActionPlace, req.Action)
				assert.Equal(t, "BUY", req.Side)
				assert.Equal(t, "LIMIT", req.OrderType)
				assert.True(t, decimal.NewFromInt(100).Equal(req.Price))
				assert.Equal(t, int64(5), req.Quantity)
				assert.Equal(t, "PLACE BUY LIMIT 100 5", req.String())
			},
		},
		{
			name: "cancel",
			line: "CANCEL 123",
			assertFn: func(t *testing.T, req Request, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(123), req.OrderID)
				assert.Equal(t, "CANCEL 123", req.String())
			},
		},
		{
			name: "modify",
			line: "MODIFY 123 price 105",
			assertFn: func(t *testing.T, req Request, err error) {
				require.NoError(t, err)
				assert.Equal(t, "PRICE", req.Field)
				assert.Equal(t, "MODIFY 123 PRICE 105", req.String())
			},
		},
		{
			name: "clear keeps secret case",
			line: "clear HunTer2",
			assertFn: func(t *testing.T, req Request, err error) {
				require.NoError(t, err)
				assert.Equal(t, "CLEAR HunTer2", req.String())
				assert.Equal(t, "CLEAR ***", req.Redacted())
			},
		},
		{
			name: "wrong arity",
			line: "PLACE BUY LIMIT 100",
			assertFn: func(t *testing.T, req Request, err error) {
				assert.Error(t, err)
			},
		},
		{
			name: "non numeric id",
			line: "CANCEL abc",
			assertFn: func(t *testing.T, req Request, err error) {
				assert.Error(t, err)
			},
		},
		{
			name: "unknown action",
			line: "SHORT 5",
			assertFn: func(t *testing.T, req Request, err error) {
				assert.Error(t, err)
			},
		},
		{
			name: "empty",
			line: "   ",
			assertFn: func(t *testing.T, req Request, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := ParseRequest(tc.line)
			tc.assertFn(t, req, err)
		})
	}
}
