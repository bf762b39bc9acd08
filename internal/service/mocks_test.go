package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/cinema-control/internal/model"
	"github.com/iliyamo/cinema-control/internal/queue"
	"github.com/iliyamo/cinema-control/internal/utils"
)

type txKey struct{}

// mockUOW records Begin/Commit/Rollback.  Begin marks the context so
// tests can assert that writes ran inside the unit of work.
type mockUOW struct{ mock.Mock }

func (m *mockUOW) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return context.WithValue(ctx, txKey{}, true), args.Error(0)
}

func (m *mockUOW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *mockUOW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

// inTx matches a context produced by mockUOW.Begin.
var inTx = mock.MatchedBy(func(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
})

func okUOW() *mockUOW {
	u := new(mockUOW)
	u.On("Begin", mock.Anything).Return(nil)
	u.On("Commit", inTx).Return(nil)
	return u
}

type fixedTenant struct{ id uuid.UUID }

func (t fixedTenant) UserID(context.Context) uuid.UUID { return t.id }

type mockGenres struct{ mock.Mock }

func (m *mockGenres) Create(ctx context.Context, g *model.Genre) error {
	return m.Called(ctx, g).Error(0)
}
func (m *mockGenres) Update(ctx context.Context, id uuid.UUID, edited *model.Genre) (bool, error) {
	args := m.Called(ctx, id, edited)
	return args.Bool(0), args.Error(1)
}
func (m *mockGenres) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *mockGenres) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*model.Genre)
	return g, args.Error(1)
}
func (m *mockGenres) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Genre, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]*model.Genre)
	return out, args.Error(1)
}
func (m *mockGenres) DescriptionTaken(ctx context.Context, userID uuid.UUID, description string, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, description, exclude)
	return args.Bool(0), args.Error(1)
}
func (m *mockGenres) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockMovies struct{ mock.Mock }

func (m *mockMovies) Create(ctx context.Context, mv *model.Movie) error {
	return m.Called(ctx, mv).Error(0)
}
func (m *mockMovies) Update(ctx context.Context, id uuid.UUID, edited *model.Movie) (bool, error) {
	args := m.Called(ctx, id, edited)
	return args.Bool(0), args.Error(1)
}
func (m *mockMovies) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *mockMovies) GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	args := m.Called(ctx, id)
	mv, _ := args.Get(0).(*model.Movie)
	return mv, args.Error(1)
}
func (m *mockMovies) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Movie, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]*model.Movie)
	return out, args.Error(1)
}
func (m *mockMovies) TitleTaken(ctx context.Context, userID uuid.UUID, title string, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, title, exclude)
	return args.Bool(0), args.Error(1)
}
func (m *mockMovies) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockRooms struct{ mock.Mock }

func (m *mockRooms) Create(ctx context.Context, r *model.Room) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockRooms) Update(ctx context.Context, id uuid.UUID, edited *model.Room) (bool, error) {
	args := m.Called(ctx, id, edited)
	return args.Bool(0), args.Error(1)
}
func (m *mockRooms) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *mockRooms) GetByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*model.Room)
	return r, args.Error(1)
}
func (m *mockRooms) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Room, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]*model.Room)
	return out, args.Error(1)
}
func (m *mockRooms) NumberTaken(ctx context.Context, userID uuid.UUID, number int, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, number, exclude)
	return args.Bool(0), args.Error(1)
}
func (m *mockRooms) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Create(ctx context.Context, s *model.Session) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockSessions) Update(ctx context.Context, id uuid.UUID, edited *model.Session) (bool, error) {
	args := m.Called(ctx, id, edited)
	return args.Bool(0), args.Error(1)
}
func (m *mockSessions) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *mockSessions) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Session)
	return s, args.Error(1)
}
func (m *mockSessions) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Session, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]*model.Session)
	return out, args.Error(1)
}
func (m *mockSessions) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*model.Session, error) {
	args := m.Called(ctx, roomID)
	out, _ := args.Get(0).([]*model.Session)
	return out, args.Error(1)
}
func (m *mockSessions) ListOpen(ctx context.Context, title string) ([]*model.Session, error) {
	args := m.Called(ctx, title)
	out, _ := args.Get(0).([]*model.Session)
	return out, args.Error(1)
}
func (m *mockSessions) Close(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockTickets struct{ mock.Mock }

func (m *mockTickets) Create(ctx context.Context, t *model.Ticket) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockTickets) GetByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*model.Ticket)
	return t, args.Error(1)
}
func (m *mockTickets) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Ticket, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]*model.Ticket)
	return out, args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}
func (m *mockUsers) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}
func (m *mockUsers) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	return m.Called(ctx, userID, roleID).Error(0)
}
func (m *mockUsers) SaveLoginState(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

type mockRoles struct{ mock.Mock }

func (m *mockRoles) FindByName(ctx context.Context, name string) (*model.Role, error) {
	args := m.Called(ctx, name)
	r, _ := args.Get(0).(*model.Role)
	return r, args.Error(1)
}
func (m *mockRoles) Create(ctx context.Context, role *model.Role) error {
	return m.Called(ctx, role).Error(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) StoreRefresh(ctx context.Context, userID uuid.UUID, tokenHash string, exp time.Time) error {
	return m.Called(ctx, userID, tokenHash, exp).Error(0)
}
func (m *mockTokens) ValidateRefresh(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}
func (m *mockTokens) RevokeByHash(ctx context.Context, tokenHash string) (bool, error) {
	args := m.Called(ctx, tokenHash)
	return args.Bool(0), args.Error(1)
}
func (m *mockTokens) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishTicketPurchased(ctx context.Context, ev queue.TicketPurchasedEvent) error {
	return m.Called(ctx, ev).Error(0)
}

type mockQR struct{ mock.Mock }

func (m *mockQR) PNG(p utils.TicketPayload) ([]byte, error) {
	args := m.Called(p)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}
