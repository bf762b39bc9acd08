package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-control/internal/model"
)

// MovieService manages the tenant's movies.  A movie's genre must belong
// to the same tenant.
type MovieService struct {
	base
	movies MovieRepository
	genres GenreRepository
}

func NewMovieService(movies MovieRepository, genres GenreRepository, uow UnitOfWork, tenant TenantProvider, log *zap.Logger) *MovieService {
	return &MovieService{base: newBase(uow, tenant, log), movies: movies, genres: genres}
}

func (s *MovieService) Create(ctx context.Context, m *model.Movie) (*model.Movie, error) {
	if err := validateStruct(m); err != nil {
		return nil, err
	}
	owner := s.tenant.UserID(ctx)
	genre, err := s.ownedGenre(ctx, m.GenreID)
	if err != nil {
		return nil, err
	}
	taken, err := s.movies.TitleTaken(ctx, owner, m.Title, uuid.Nil)
	if err != nil {
		return nil, s.internal("movie create", err)
	}
	if taken {
		return nil, ErrDuplicate
	}
	m.ID = uuid.New()
	m.UserID = owner
	m.Genre = genre
	err = s.write(ctx, "movie create", func(ctx context.Context) error {
		return s.movies.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MovieService) Update(ctx context.Context, id uuid.UUID, edited *model.Movie) (*model.Movie, error) {
	if err := validateStruct(edited); err != nil {
		return nil, err
	}
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	genre, err := s.ownedGenre(ctx, edited.GenreID)
	if err != nil {
		return nil, err
	}
	edited.Genre = genre
	taken, err := s.movies.TitleTaken(ctx, current.UserID, edited.Title, id)
	if err != nil {
		return nil, s.internal("movie update", err)
	}
	if taken {
		return nil, ErrDuplicate
	}
	err = s.write(ctx, "movie update", func(ctx context.Context) error {
		return found(s.movies.Update(ctx, id, edited))
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete refuses movies that have sessions.
func (s *MovieService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	inUse, err := s.movies.InUse(ctx, id)
	if err != nil {
		return s.internal("movie delete", err)
	}
	if inUse {
		return ErrInUse
	}
	return s.write(ctx, "movie delete", func(ctx context.Context) error {
		return found(s.movies.Delete(ctx, id))
	})
}

func (s *MovieService) GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookup("movie get", err)
	}
	if m.UserID != s.tenant.UserID(ctx) {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *MovieService) List(ctx context.Context) ([]*model.Movie, error) {
	out, err := s.movies.ListByUser(ctx, s.tenant.UserID(ctx))
	if err != nil {
		return nil, s.internal("movie list", err)
	}
	return out, nil
}

func (s *MovieService) ownedGenre(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	g, err := s.genres.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookup("movie genre", err)
	}
	if g.UserID != s.tenant.UserID(ctx) {
		return nil, ErrNotFound
	}
	return g, nil
}
