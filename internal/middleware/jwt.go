package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-control/internal/utils"
)

// Keys under which JWTAuth stores the token claims in the echo context.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// JWTAuth validates a Bearer access token signed with secret.  The user id
// and role are stored in the echo context and the user id is also attached
// to the request context so services can resolve the tenant.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)
			req := c.Request()
			c.SetRequest(req.WithContext(WithUserID(req.Context(), claims.UserID)))
			return next(c)
		}
	}
}
