package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/iliyamo/cinema-control/internal/model"
)

// SessionRepo manages persistence for sessions.  Single-session reads load
// the movie, the room and the sold tickets.
type SessionRepo struct {
	db *bun.DB
}

func NewSessionRepo(db *bun.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.StartsAt = s.StartsAt.UTC()
	s.CreatedAt = time.Now().UTC()
	_, err := executor(ctx, r.db).NewInsert().Model(s).Exec(ctx)
	return err
}

func (r *SessionRepo) CreateMany(ctx context.Context, sessions []*model.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, s := range sessions {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		s.StartsAt = s.StartsAt.UTC()
		s.CreatedAt = now
	}
	_, err := executor(ctx, r.db).NewInsert().Model(&sessions).Exec(ctx)
	return err
}

// Update copies start, ticket limit, movie and room from edited.  The
// closed flag and tickets are not touched.
func (r *SessionRepo) Update(ctx context.Context, id uuid.UUID, edited *model.Session) (bool, error) {
	s := new(model.Session)
	err := executor(ctx, r.db).NewSelect().Model(s).Where("s.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if err = notFound(err); errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	s.Update(edited)
	s.UpdatedAt = time.Now().UTC()
	_, err = executor(ctx, r.db).NewUpdate().
		Model(s).
		Column("starts_at", "max_tickets", "movie_id", "room_id", "updated_at").
		WherePK().
		Exec(ctx)
	return err == nil, err
}

// Delete removes the session together with its tickets.  Call it inside
// a unit of work so both deletes commit together.
func (r *SessionRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	exec := executor(ctx, r.db)
	_, err := exec.NewDelete().
		Model((*model.Ticket)(nil)).
		Where("session_id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	res, err := exec.NewDelete().
		Model((*model.Session)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return affected(res, err)
}

func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	s := new(model.Session)
	err := executor(ctx, r.db).NewSelect().
		Model(s).
		Relation("Movie").
		Relation("Room").
		Relation("Tickets", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("t.seat_number ASC")
		}).
		Where("s.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

func (r *SessionRepo) List(ctx context.Context) ([]*model.Session, error) {
	var out []*model.Session
	err := executor(ctx, r.db).NewSelect().
		Model(&out).
		Relation("Movie").
		Relation("Room").
		Order("s.starts_at ASC").
		Scan(ctx)
	return out, err
}

func (r *SessionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Session, error) {
	var out []*model.Session
	err := executor(ctx, r.db).NewSelect().
		Model(&out).
		Relation("Movie").
		Relation("Room").
		Relation("Tickets").
		Where("s.user_id = ?", userID).
		Order("s.starts_at ASC").
		Scan(ctx)
	return out, err
}

// ListByRoom returns every session in the room, closed ones included,
// with the movie loaded so EndsAt can be computed.
func (r *SessionRepo) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*model.Session, error) {
	var out []*model.Session
	err := executor(ctx, r.db).NewSelect().
		Model(&out).
		Relation("Movie").
		Where("s.room_id = ?", roomID).
		Order("s.starts_at ASC").
		Scan(ctx)
	return out, err
}

// ListOpen returns the sessions still open for sales across all
// companies, with movie, room and tickets loaded.  A non-empty title keeps
// only movies whose title contains it, ignoring case.
func (r *SessionRepo) ListOpen(ctx context.Context, title string) ([]*model.Session, error) {
	var out []*model.Session
	q := executor(ctx, r.db).NewSelect().
		Model(&out).
		Relation("Movie").
		Relation("Room").
		Relation("Tickets").
		Where("s.closed = ?", false)
	if title = strings.TrimSpace(title); title != "" {
		q = q.Where("LOWER(movie.title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}
	err := q.Order("s.starts_at ASC").Scan(ctx)
	return out, err
}

// Close marks the session closed.  It returns false when no session has
// the given id.
func (r *SessionRepo) Close(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := executor(ctx, r.db).NewUpdate().
		Model((*model.Session)(nil)).
		Set("closed = ?", true).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	return affected(res, err)
}

// InUse reports whether any ticket was sold for the session.
func (r *SessionRepo) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	return executor(ctx, r.db).NewSelect().
		Model((*model.Ticket)(nil)).
		Where("t.session_id = ?", id).
		Exists(ctx)
}
