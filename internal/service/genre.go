package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-control/internal/model"
)

// GenreService manages the tenant's genres.
type GenreService struct {
	base
	genres GenreRepository
}

func NewGenreService(genres GenreRepository, uow UnitOfWork, tenant TenantProvider, log *zap.Logger) *GenreService {
	return &GenreService{base: newBase(uow, tenant, log), genres: genres}
}

func (s *GenreService) Create(ctx context.Context, g *model.Genre) (*model.Genre, error) {
	if err := validateStruct(g); err != nil {
		return nil, err
	}
	owner := s.tenant.UserID(ctx)
	taken, err := s.genres.DescriptionTaken(ctx, owner, g.Description, uuid.Nil)
	if err != nil {
		return nil, s.internal("genre create", err)
	}
	if taken {
		return nil, ErrDuplicate
	}
	g.ID = uuid.New()
	g.UserID = owner
	err = s.write(ctx, "genre create", func(ctx context.Context) error {
		return s.genres.Create(ctx, g)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GenreService) Update(ctx context.Context, id uuid.UUID, edited *model.Genre) (*model.Genre, error) {
	if err := validateStruct(edited); err != nil {
		return nil, err
	}
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.genres.DescriptionTaken(ctx, current.UserID, edited.Description, id)
	if err != nil {
		return nil, s.internal("genre update", err)
	}
	if taken {
		return nil, ErrDuplicate
	}
	err = s.write(ctx, "genre update", func(ctx context.Context) error {
		return found(s.genres.Update(ctx, id, edited))
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete refuses genres still used by a movie.
func (s *GenreService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	inUse, err := s.genres.InUse(ctx, id)
	if err != nil {
		return s.internal("genre delete", err)
	}
	if inUse {
		return ErrInUse
	}
	return s.write(ctx, "genre delete", func(ctx context.Context) error {
		return found(s.genres.Delete(ctx, id))
	})
}

// GetByID hides genres owned by other tenants.
func (s *GenreService) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	g, err := s.genres.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookup("genre get", err)
	}
	if g.UserID != s.tenant.UserID(ctx) {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *GenreService) List(ctx context.Context) ([]*model.Genre, error) {
	out, err := s.genres.ListByUser(ctx, s.tenant.UserID(ctx))
	if err != nil {
		return nil, s.internal("genre list", err)
	}
	return out, nil
}
