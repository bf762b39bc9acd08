package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/iliyamo/cinema-control/internal/model"
)

// UserRepo persists accounts.  Emails are stored trimmed and lower-cased.
type UserRepo struct{ db *bun.DB }

func NewUserRepo(db *bun.DB) *UserRepo { return &UserRepo{db: db} }

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a user.  The caller supplies the bcrypt hash.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = NormalizeEmail(u.Email)
	u.CreatedAt = time.Now().UTC()
	_, err := executor(ctx, r.db).NewInsert().Model(u).Exec(ctx)
	return conflict(err)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := new(model.User)
	err := executor(ctx, r.db).NewSelect().
		Model(u).
		Relation("Role").
		Where("u.email = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u := new(model.User)
	err := executor(ctx, r.db).NewSelect().
		Model(u).
		Relation("Role").
		Where("u.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// AssignRole points the user at a role.
func (r *UserRepo) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	_, err := executor(ctx, r.db).NewUpdate().
		Model((*model.User)(nil)).
		Set("role_id = ?", roleID).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}

// SaveLoginState stores the failed attempt counter and lockout end.
func (r *UserRepo) SaveLoginState(ctx context.Context, u *model.User) error {
	u.UpdatedAt = time.Now().UTC()
	_, err := executor(ctx, r.db).NewUpdate().
		Model(u).
		Column("failed_attempts", "lockout_end", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}

// RoleRepo stores the roles users are assigned to.
type RoleRepo struct{ db *bun.DB }

func NewRoleRepo(db *bun.DB) *RoleRepo { return &RoleRepo{db: db} }

// FindByName looks a role up by its normalized (upper-cased) name.
func (r *RoleRepo) FindByName(ctx context.Context, name string) (*model.Role, error) {
	role := new(model.Role)
	err := executor(ctx, r.db).NewSelect().
		Model(role).
		Where("ro.normalized_name = ?", strings.ToUpper(name)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return role, nil
}

// Create inserts a role and fills in its normalized name.
func (r *RoleRepo) Create(ctx context.Context, role *model.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	role.NormalizedName = strings.ToUpper(role.Name)
	_, err := executor(ctx, r.db).NewInsert().Model(role).Exec(ctx)
	return conflict(err)
}
