package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/iliyamo/cinema-control/internal/model"
)

// TicketRepo manages persistence for tickets.  Reads load the session
// with its movie and room.
type TicketRepo struct {
	db *bun.DB
}

func NewTicketRepo(db *bun.DB) *TicketRepo { return &TicketRepo{db: db} }

func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now().UTC()
	_, err := executor(ctx, r.db).NewInsert().Model(t).Exec(ctx)
	return conflict(err)
}

func (r *TicketRepo) CreateMany(ctx context.Context, tickets []*model.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, t := range tickets {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		t.CreatedAt = now
	}
	_, err := executor(ctx, r.db).NewInsert().Model(&tickets).Exec(ctx)
	return err
}

func (r *TicketRepo) Update(ctx context.Context, id uuid.UUID, edited *model.Ticket) (bool, error) {
	t := new(model.Ticket)
	err := executor(ctx, r.db).NewSelect().Model(t).Where("t.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if err = notFound(err); errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	t.Update(edited)
	_, err = executor(ctx, r.db).NewUpdate().
		Model(t).
		Column("seat_number", "half_price", "session_id").
		WherePK().
		Exec(ctx)
	return err == nil, err
}

func (r *TicketRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := executor(ctx, r.db).NewDelete().
		Model((*model.Ticket)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return affected(res, err)
}

func (r *TicketRepo) selectWithSession(ctx context.Context, dest interface{}) *bun.SelectQuery {
	return executor(ctx, r.db).NewSelect().
		Model(dest).
		Relation("Session").
		Relation("Session.Movie").
		Relation("Session.Room")
}

func (r *TicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	t := new(model.Ticket)
	err := r.selectWithSession(ctx, t).Where("t.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (r *TicketRepo) List(ctx context.Context) ([]*model.Ticket, error) {
	var out []*model.Ticket
	err := r.selectWithSession(ctx, &out).Order("t.created_at DESC").Scan(ctx)
	return out, err
}

// ListByUser returns the tickets bought by userID, newest first.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Ticket, error) {
	var out []*model.Ticket
	err := r.selectWithSession(ctx, &out).
		Where("t.user_id = ?", userID).
		Order("t.created_at DESC").
		Scan(ctx)
	return out, err
}
