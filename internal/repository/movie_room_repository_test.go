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

func TestMovieRepo(t *testing.T) {
	r := setupTestDB(t)
	ctx := context.Background()
	f := seed(t, r)

	got, err := r.movies.GetByID(ctx, f.movie.ID)
	require.NoError(t, err)
	assert.Equal(t, "Interstellar", got.Title)
	require.NotNil(t, got.Genre)
	assert.Equal(t, "Sci-Fi", got.Genre.Description)

	drama := model.NewGenre("Drama")
	drama.UserID = f.owner
	require.NoError(t, r.genres.Create(ctx, drama))

	ok, err := r.movies.Update(ctx, f.movie.ID, model.NewMovie("Tenet", 150, true, drama))
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = r.movies.GetByID(ctx, f.movie.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tenet", got.Title)
	assert.Equal(t, 150, got.DurationMinutes)
	assert.True(t, got.Release)
	assert.Equal(t, "Drama", got.Genre.Description)

	taken, err := r.movies.TitleTaken(ctx, f.owner, "tenet", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = r.movies.TitleTaken(ctx, f.owner, "tenet", f.movie.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	list, err := r.movies.ListByUser(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].Genre)

	list, err = r.movies.ListByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, list)

	ok, err = r.movies.Delete(ctx, f.movie.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = r.movies.GetByID(ctx, f.movie.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRoomRepo(t *testing.T) {
	r := setupTestDB(t)
	ctx := context.Background()
	f := seed(t, r)

	more := []*model.Room{model.NewRoom(3, 80), model.NewRoom(2, 50)}
	for _, room := range more {
		room.UserID = f.owner
	}
	require.NoError(t, r.rooms.CreateMany(ctx, more))

	list, err := r.rooms.ListByUser(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{list[0].Number, list[1].Number, list[2].Number})

	taken, err := r.rooms.NumberTaken(ctx, f.owner, 2, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = r.rooms.NumberTaken(ctx, f.owner, 2, more[1].ID)
	require.NoError(t, err)
	assert.False(t, taken)

	ok, err := r.rooms.Update(ctx, f.room.ID, &model.Room{Number: 9, Capacity: 12})
	require.NoError(t, err)
	assert.True(t, ok)
	got, err := r.rooms.GetByID(ctx, f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Number)
	assert.Equal(t, 12, got.Capacity)
}
