package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/iliyamo/cinema-control/internal/config"
	"github.com/iliyamo/cinema-control/internal/database"
	"github.com/iliyamo/cinema-control/internal/model"
	"github.com/iliyamo/cinema-control/internal/repository"
)

// repos bundles every repository over one database.
type repos struct {
	db       *bun.DB
	uow      *repository.UnitOfWork
	genres   *repository.GenreRepo
	movies   *repository.MovieRepo
	rooms    *repository.RoomRepo
	sessions *repository.SessionRepo
	tickets  *repository.TicketRepo
	users    *repository.UserRepo
	roles    *repository.RoleRepo
	tokens   *repository.TokenRepo
}

func newRepos(db *bun.DB) *repos {
	return &repos{
		db:       db,
		uow:      repository.NewUnitOfWork(db),
		genres:   repository.NewGenreRepo(db),
		movies:   repository.NewMovieRepo(db),
		rooms:    repository.NewRoomRepo(db),
		sessions: repository.NewSessionRepo(db),
		tickets:  repository.NewTicketRepo(db),
		users:    repository.NewUserRepo(db),
		roles:    repository.NewRoleRepo(db),
		tokens:   repository.NewTokenRepo(db),
	}
}

// setupTestDB opens a private in-memory sqlite database with every table
// created.
func setupTestDB(t *testing.T) *repos {
	t.Helper()
	db, err := database.Open(config.Database{
		Driver: database.DriverSQLite,
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return newRepos(db)
}

// fixture is a company with one genre, movie and room.
type fixture struct {
	owner uuid.UUID
	genre *model.Genre
	movie *model.Movie
	room  *model.Room
}

func seed(t *testing.T, r *repos) fixture {
	t.Helper()
	ctx := context.Background()
	owner := uuid.New()

	genre := model.NewGenre("Sci-Fi")
	genre.UserID = owner
	require.NoError(t, r.genres.Create(ctx, genre))

	movie := model.NewMovie("Interstellar", 117, false, genre)
	movie.UserID = owner
	require.NoError(t, r.movies.Create(ctx, movie))

	room := model.NewRoom(1, 30)
	room.UserID = owner
	require.NoError(t, r.rooms.Create(ctx, room))

	return fixture{owner: owner, genre: genre, movie: movie, room: room}
}

func (f fixture) session(start time.Time, maxTickets int) *model.Session {
	s := model.NewSession(start, maxTickets, f.movie, f.room)
	s.UserID = f.owner
	return s
}
