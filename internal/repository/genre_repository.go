package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/iliyamo/cinema-control/internal/model"
)

// GenreRepo manages persistence for genres.
type GenreRepo struct {
	db *bun.DB
}

func NewGenreRepo(db *bun.DB) *GenreRepo { return &GenreRepo{db: db} }

// Create inserts a genre.  A zero ID is replaced by a fresh one.
func (r *GenreRepo) Create(ctx context.Context, g *model.Genre) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.CreatedAt = time.Now().UTC()
	_, err := executor(ctx, r.db).NewInsert().Model(g).Exec(ctx)
	return err
}

// CreateMany inserts several genres in one statement.
func (r *GenreRepo) CreateMany(ctx context.Context, genres []*model.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, g := range genres {
		if g.ID == uuid.Nil {
			g.ID = uuid.New()
		}
		g.CreatedAt = now
	}
	_, err := executor(ctx, r.db).NewInsert().Model(&genres).Exec(ctx)
	return err
}

// Update copies the editable fields of edited onto the stored genre.  It
// returns false when no genre has the given id.
func (r *GenreRepo) Update(ctx context.Context, id uuid.UUID, edited *model.Genre) (bool, error) {
	g, err := r.GetByID(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	g.Update(edited)
	g.UpdatedAt = time.Now().UTC()
	_, err = executor(ctx, r.db).NewUpdate().
		Model(g).
		Column("description", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a genre.  It returns false when nothing was deleted.
func (r *GenreRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := executor(ctx, r.db).NewDelete().
		Model((*model.Genre)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return affected(res, err)
}

// GetByID returns ErrNotFound when there is no matching row.
func (r *GenreRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	g := new(model.Genre)
	err := executor(ctx, r.db).NewSelect().Model(g).Where("g.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

// List returns every genre ordered by description.
func (r *GenreRepo) List(ctx context.Context) ([]*model.Genre, error) {
	var out []*model.Genre
	err := executor(ctx, r.db).NewSelect().Model(&out).Order("g.description ASC").Scan(ctx)
	return out, err
}

// ListByUser returns the genres owned by userID.
func (r *GenreRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Genre, error) {
	var out []*model.Genre
	err := executor(ctx, r.db).NewSelect().
		Model(&out).
		Where("g.user_id = ?", userID).
		Order("g.description ASC").
		Scan(ctx)
	return out, err
}

// DescriptionTaken reports whether userID already owns a genre with the
// same description, ignoring case.  exclude is skipped so an update can
// keep its own description.
func (r *GenreRepo) DescriptionTaken(ctx context.Context, userID uuid.UUID, description string, exclude uuid.UUID) (bool, error) {
	return executor(ctx, r.db).NewSelect().
		Model((*model.Genre)(nil)).
		Where("g.user_id = ?", userID).
		Where("LOWER(g.description) = LOWER(?)", description).
		Where("g.id <> ?", exclude).
		Exists(ctx)
}

// InUse reports whether any movie references the genre.
func (r *GenreRepo) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	return executor(ctx, r.db).NewSelect().
		Model((*model.Movie)(nil)).
		Where("m.genre_id = ?", id).
		Exists(ctx)
}
