package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"

	"github.com/iliyamo/cinema-control/internal/config"
	"github.com/iliyamo/cinema-control/internal/model"
)

func TestTicketsTableIsUniquePerSeatOnMySQL(t *testing.T) {
	// The DSN points nowhere; only query building is exercised.
	sqldb, err := sql.Open("mysql", "root:root@tcp(127.0.0.1:1)/cinema?timeout=100ms")
	require.NoError(t, err)
	db := bun.NewDB(sqldb, mysqldialect.New())
	t.Cleanup(func() { _ = db.Close() })

	query := db.NewCreateTable().Model((*model.Ticket)(nil)).IfNotExists().String()
	assert.Regexp(t, "UNIQUE \\([^)]*`seat_number`[^)]*\\)", query)
	assert.Regexp(t, "UNIQUE \\([^)]*`session_id`[^)]*\\)", query)
}

func TestMigrateIsIdempotentAndRejectsDuplicateSeats(t *testing.T) {
	ctx := context.Background()
	db, err := Open(config.Database{
		Driver: DriverSQLite,
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	sessionID := uuid.New()
	ticket := func() *model.Ticket {
		return &model.Ticket{ID: uuid.New(), UserID: uuid.New(), SessionID: sessionID, SeatNumber: 4}
	}
	_, err = db.NewInsert().Model(ticket()).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewInsert().Model(ticket()).Exec(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")

	other := ticket()
	other.SessionID = uuid.New()
	_, err = db.NewInsert().Model(other).Exec(ctx)
	assert.NoError(t, err)
}
