package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/iliyamo/cinema-control/internal/model"
)

// Migrate creates every table the service needs.  It is idempotent and
// works on each supported dialect.
func Migrate(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*model.Role)(nil),
		(*model.User)(nil),
		(*model.RefreshToken)(nil),
		(*model.Genre)(nil),
		(*model.Movie)(nil),
		(*model.Room)(nil),
		(*model.Session)(nil),
		(*model.Ticket)(nil),
	}
	for _, m := range models {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", m, err)
		}
	}

	// Seat uniqueness is a table constraint on Ticket.  The indexes below
	// only speed up lookups, and MySQL has no CREATE INDEX IF NOT EXISTS.
	if db.Dialect().Name() == dialect.MySQL {
		return nil
	}
	indexes := []struct {
		model   interface{}
		name    string
		columns []string
	}{
		{(*model.Session)(nil), "idx_sessions_room_id", []string{"room_id"}},
		{(*model.Ticket)(nil), "idx_tickets_user_id", []string{"user_id"}},
	}
	for _, ix := range indexes {
		_, err := db.NewCreateIndex().
			Model(ix.model).
			Index(ix.name).
			IfNotExists().
			Column(ix.columns...).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("create index %s: %w", ix.name, err)
		}
	}
	return nil
}
