package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type userKey struct{}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserIDFrom returns the user id stored by JWTAuth, or uuid.Nil.
func UserIDFrom(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(userKey{}).(uuid.UUID)
	return id
}

// ContextTenant resolves the current tenant from the request context.
type ContextTenant struct{}

func (ContextTenant) UserID(ctx context.Context) uuid.UUID { return UserIDFrom(ctx) }

// userID returns the authenticated user id for cache and rate limit keys,
// or "guest" when the request is anonymous.
func userID(c echo.Context) string {
	if id, ok := c.Get(ContextUserID).(uuid.UUID); ok && id != uuid.Nil {
		return id.String()
	}
	return "guest"
}
