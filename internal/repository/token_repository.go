package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/iliyamo/cinema-control/internal/model"
)

// TokenRepo persists and validates refresh tokens by their hash.
type TokenRepo struct{ db *bun.DB }

func NewTokenRepo(db *bun.DB) *TokenRepo { return &TokenRepo{db: db} }

// StoreRefresh inserts a refresh token hash row.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uuid.UUID, tokenHash string, exp time.Time) error {
	t := &model.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: exp.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	_, err := executor(ctx, r.db).NewInsert().Model(t).Exec(ctx)
	return err
}

// ValidateRefresh returns the owner of a non-revoked, non-expired token.
// Unknown, revoked and expired tokens all yield ErrNotFound.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	t := new(model.RefreshToken)
	err := executor(ctx, r.db).NewSelect().
		Model(t).
		Where("rt.token_hash = ?", tokenHash).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return uuid.Nil, notFound(err)
	}
	if t.RevokedAt != nil || time.Now().UTC().After(t.ExpiresAt) {
		return uuid.Nil, ErrNotFound
	}
	return t.UserID, nil
}

// RevokeByHash marks a token as revoked.  It returns false when no active
// token matched.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) (bool, error) {
	res, err := executor(ctx, r.db).NewUpdate().
		Model((*model.RefreshToken)(nil)).
		Set("revoked_at = ?", time.Now().UTC()).
		Where("token_hash = ?", tokenHash).
		Where("revoked_at IS NULL").
		Exec(ctx)
	return affected(res, err)
}

// RevokeAllForUser revokes all of a user's active tokens.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := executor(ctx, r.db).NewUpdate().
		Model((*model.RefreshToken)(nil)).
		Set("revoked_at = ?", time.Now().UTC()).
		Where("user_id = ?", userID).
		Where("revoked_at IS NULL").
		Exec(ctx)
	return err
}
