package migration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	loggerMock "github.com/muhammadchandra19/orderbook-observer/pkg/logger/mock"
	"github.com/muhammadchandra19/orderbook-observer/pkg/questdb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func writeMigration(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func appliedRows(ctrl *gomock.Controller, ids ...string) *mock.MockRowsInterface {
	rows := mock.NewMockRowsInterface(ctrl)
	for _, id := range ids {
		id := id
		rows.EXPECT().Next().Return(true)
		rows.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
			*dest[0].(*string) = id
			return nil
		})
	}
	rows.EXPECT().Next().Return(false)
	rows.EXPECT().Err().Return(nil)
	rows.EXPECT().Close()
	return rows
}

func TestRunner_LoadMigrations(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20250102000000_orders.up.sql", "CREATE TABLE orders (seq LONG);")
	writeMigration(t, dir, "20250101000000_trades.up.sql", "CREATE TABLE trades (seq LONG);")
	writeMigration(t, dir, "20250101000000_trades.down.sql", "DROP TABLE trades;")

	migrations, err := NewRunner(nil, nil, dir).LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, "20250101000000_trades", migrations[0].ID)
	assert.Equal(t, "trades", migrations[0].Name)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), migrations[0].Timestamp)
	assert.Equal(t, "DROP TABLE trades;", migrations[0].DownSQL)
	assert.Equal(t, "orders", migrations[1].Name)
	assert.Empty(t, migrations[1].DownSQL)
}

func TestRunner_MigrateUp(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		mockFn   func(ctrl *gomock.Controller, client *mock.MockQuestDBClient, log *loggerMock.MockInterface)
		assertFn func(t *testing.T, applied int, err error)
	}{
		{
			name: "applies only pending migrations",
			mockFn: func(ctrl *gomock.Controller, client *mock.MockQuestDBClient, log *loggerMock.MockInterface) {
				gomock.InOrder(
					client.EXPECT().Exec(gomock.Any(), ensureTableSQL).Return(nil),
					client.EXPECT().Query(gomock.Any(), appliedSQL).Return(appliedRows(ctrl, "20250101000000_trades"), nil),
					client.EXPECT().Exec(gomock.Any(), "CREATE TABLE orders (seq LONG)").Return(nil),
					client.EXPECT().Exec(gomock.Any(), "ALTER TABLE orders ADD COLUMN side SYMBOL").Return(nil),
					client.EXPECT().Exec(gomock.Any(), recordSQL, "20250102000000_orders", "orders", now).Return(nil),
				)
				log.EXPECT().Info("applied migration", gomock.Any())
			},
			assertFn: func(t *testing.T, applied int, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 1, applied)
			},
		},
		{
			name: "statement failure stops the run",
			mockFn: func(ctrl *gomock.Controller, client *mock.MockQuestDBClient, log *loggerMock.MockInterface) {
				client.EXPECT().Exec(gomock.Any(), ensureTableSQL).Return(nil)
				client.EXPECT().Query(gomock.Any(), appliedSQL).Return(appliedRows(ctrl), nil)
				client.EXPECT().Exec(gomock.Any(), "CREATE TABLE trades (seq LONG)").Return(errors.New("boom"))
			},
			assertFn: func(t *testing.T, applied int, err error) {
				assert.ErrorContains(t, err, "20250101000000_trades")
				assert.Equal(t, 0, applied)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			dir := t.TempDir()
			writeMigration(t, dir, "20250101000000_trades.up.sql", "-- trades\nCREATE TABLE trades (seq LONG);")
			writeMigration(t, dir, "20250102000000_orders.up.sql", "CREATE TABLE orders (seq LONG);\nALTER TABLE orders ADD COLUMN side SYMBOL;")

			client := mock.NewMockQuestDBClient(ctrl)
			log := loggerMock.NewMockInterface(ctrl)
			tc.mockFn(ctrl, client, log)

			runner := NewRunner(client, log, dir)
			runner.now = func() time.Time { return now }

			applied, err := runner.MigrateUp(context.Background(), 0)
			tc.assertFn(t, applied, err)
		})
	}
}

func TestRunner_MigrateDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	writeMigration(t, dir, "20250101000000_trades.up.sql", "CREATE TABLE trades (seq LONG);")
	writeMigration(t, dir, "20250101000000_trades.down.sql", "DROP TABLE trades;")
	writeMigration(t, dir, "20250102000000_orders.up.sql", "CREATE TABLE orders (seq LONG);")
	writeMigration(t, dir, "20250102000000_orders.down.sql", "DROP TABLE orders;")

	client := mock.NewMockQuestDBClient(ctrl)
	log := loggerMock.NewMockInterface(ctrl)

	gomock.InOrder(
		client.EXPECT().Query(gomock.Any(), appliedSQL).Return(appliedRows(ctrl, "20250101000000_trades", "20250102000000_orders"), nil),
		client.EXPECT().Exec(gomock.Any(), "DROP TABLE orders").Return(nil),
		client.EXPECT().Exec(gomock.Any(), removeSQL, "20250102000000_orders").Return(nil),
	)
	log.EXPECT().Info("reverted migration", gomock.Any())

	reverted, err := NewRunner(client, log, dir).MigrateDown(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, reverted)

	_, err = NewRunner(client, log, dir).MigrateDown(context.Background(), 0)
	assert.Error(t, err)
}
