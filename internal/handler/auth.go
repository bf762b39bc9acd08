package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-control/internal/model"
	"github.com/iliyamo/cinema-control/internal/service"
)

// AuthHandler serves registration, login and token endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"` // COMPANY | CUSTOMER
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type userResp struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	TypeName string `json:"type_name"`
}

type authResp struct {
	service.Tokens
	User userResp `json:"user"`
}

func newUserResp(u *model.User) userResp {
	return userResp{ID: u.ID.String(), Email: u.Email, UserType: string(u.Type), TypeName: u.Type.DisplayName()}
}

func newAuthResp(t *service.Tokens) authResp {
	return authResp{Tokens: *t, User: newUserResp(t.User)}
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	userType := model.UserType(strings.ToUpper(strings.TrimSpace(req.UserType)))
	tokens, err := h.Auth.Register(c.Request().Context(), strings.TrimSpace(req.Email), req.Password, userType)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusCreated, newAuthResp(tokens))
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	tokens, err := h.Auth.Login(c.Request().Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, newAuthResp(tokens))
}

// Refresh handles POST /v1/auth/refresh.  The presented token is revoked.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		return badRequest(c, "refresh_token is required")
	}
	tokens, err := h.Auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, newAuthResp(tokens))
}

// Logout handles POST /v1/auth/logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		return badRequest(c, "refresh_token is required")
	}
	if err := h.Auth.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /v1/me.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.Auth.Me(c.Request().Context())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, newUserResp(u))
}
