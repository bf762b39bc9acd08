package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-control/internal/model"
	"github.com/iliyamo/cinema-control/internal/repository"
)

func TestGenreRepoCRUD(t *testing.T) {
	r := setupTestDB(t)
	ctx := context.Background()
	owner := uuid.New()

	g := model.NewGenre("Drama")
	g.UserID = owner
	require.NoError(t, r.genres.Create(ctx, g))

	got, err := r.genres.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drama", got.Description)
	assert.Equal(t, owner, got.UserID)

	ok, err := r.genres.Update(ctx, g.ID, &model.Genre{Description: "Comedy"})
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = r.genres.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Comedy", got.Description)
	assert.Equal(t, owner, got.UserID)

	ok, err = r.genres.Update(ctx, uuid.New(), &model.Genre{Description: "x"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.genres.Delete(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = r.genres.GetByID(ctx, g.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	ok, err = r.genres.Delete(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenreRepoListAndDuplicates(t *testing.T) {
	r := setupTestDB(t)
	ctx := context.Background()
	owner, other := uuid.New(), uuid.New()

	mine := []*model.Genre{model.NewGenre("Horror"), model.NewGenre("Action")}
	for _, g := range mine {
		g.UserID = owner
	}
	require.NoError(t, r.genres.CreateMany(ctx, mine))
	theirs := model.NewGenre("Drama")
	theirs.UserID = other
	require.NoError(t, r.genres.Create(ctx, theirs))

	all, err := r.genres.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	list, err := r.genres.ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Action", list[0].Description)
	assert.Equal(t, "Horror", list[1].Description)

	taken, err := r.genres.DescriptionTaken(ctx, owner, "HORROR", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = r.genres.DescriptionTaken(ctx, owner, "horror", mine[0].ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = r.genres.DescriptionTaken(ctx, other, "Horror", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestInUse(t *testing.T) {
	r := setupTestDB(t)
	ctx := context.Background()
	f := seed(t, r)

	inUse, err := r.genres.InUse(ctx, f.genre.ID)
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = r.movies.InUse(ctx, f.movie.ID)
	require.NoError(t, err)
	assert.False(t, inUse)

	s := f.session(sessionStart, 10)
	require.NoError(t, r.sessions.Create(ctx, s))

	inUse, err = r.movies.InUse(ctx, f.movie.ID)
	require.NoError(t, err)
	assert.True(t, inUse)
	inUse, err = r.rooms.InUse(ctx, f.room.ID)
	require.NoError(t, err)
	assert.True(t, inUse)
	inUse, err = r.sessions.InUse(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, inUse)
}
