package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-control/internal/model"
	"github.com/iliyamo/cinema-control/internal/repository"
	"github.com/iliyamo/cinema-control/internal/utils"
)

// Reasons reported by login and refresh failures.
const (
	ReasonInvalidCredentials = "invalid email or password"
	ReasonLockedOut          = "account is locked, try again later"
	ReasonNotAllowed         = "login not allowed for this account"
	ReasonInvalidRefresh     = "invalid or expired refresh token"
)

// AuthConfig carries token and password policy settings.
type AuthConfig struct {
	JWTSecret          string
	AccessTTLMin       int
	RefreshTTLDays     int
	BcryptCost         int
	PasswordMinLength  int
	LockoutMaxFailures int
	LockoutDuration    time.Duration
}

// Tokens is returned by a successful register, login or refresh.
type Tokens struct {
	AccessToken      string      `json:"access_token"`
	AccessExpiresAt  time.Time   `json:"access_expires_at"`
	RefreshToken     string      `json:"refresh_token"`
	RefreshExpiresAt time.Time   `json:"refresh_expires_at"`
	User             *model.User `json:"user"`
}

// AuthService registers accounts and issues access and refresh tokens.
type AuthService struct {
	base
	cfg    AuthConfig
	users  UserRepository
	roles  RoleRepository
	tokens TokenRepository
	now    func() time.Time
}

func NewAuthService(cfg AuthConfig, users UserRepository, roles RoleRepository, tokens TokenRepository, uow UnitOfWork, tenant TenantProvider, log *zap.Logger) *AuthService {
	if cfg.PasswordMinLength <= 0 {
		cfg.PasswordMinLength = 6
	}
	return &AuthService{
		base:   newBase(uow, tenant, log),
		cfg:    cfg,
		users:  users,
		roles:  roles,
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account of the given type, assigns its role
// (creating the role on first use) and signs the user in.
func (s *AuthService) Register(ctx context.Context, email, password string, userType model.UserType) (*Tokens, error) {
	var merr *multierror.Error
	if err := validate.Var(email, "required,email"); err != nil {
		merr = appendReasons(merr, "email must be a valid email address")
	}
	if !userType.Valid() {
		merr = appendReasons(merr, fmt.Sprintf("user type must be %s or %s", model.UserTypeCompany, model.UserTypeCustomer))
	}
	merr = s.checkPassword(merr, password)
	if err := withReasons(ErrInvalidRequest, merr); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, invalidRequest(fmt.Sprintf("email %q is already taken", repository.NormalizeEmail(email)))
	case !errors.Is(err, repository.ErrNotFound):
		return nil, s.internal("register lookup", err)
	}

	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, s.internal("register hash", err)
	}
	u := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Type:         userType,
		IsActive:     true,
	}
	var tokens *Tokens
	err = s.write(ctx, "register", func(ctx context.Context) error {
		if err := s.users.Create(ctx, u); errors.Is(err, repository.ErrConflict) {
			return invalidRequest(fmt.Sprintf("email %q is already taken", u.Email))
		} else if err != nil {
			return err
		}
		role, err := s.roles.FindByName(ctx, string(userType))
		if errors.Is(err, repository.ErrNotFound) {
			role = &model.Role{Name: string(userType)}
			err = s.roles.Create(ctx, role)
		}
		if err != nil {
			return err
		}
		if err := s.users.AssignRole(ctx, u.ID, role.ID); err != nil {
			return err
		}
		u.RoleID, u.Role = role.ID, role
		tokens, err = s.issue(ctx, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// checkPassword appends one reason per violated password rule.
func (s *AuthService) checkPassword(merr *multierror.Error, password string) *multierror.Error {
	var digit, upper, lower, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case !unicode.IsLetter(r) && !unicode.IsNumber(r):
			symbol = true
		}
	}
	if len([]rune(password)) < s.cfg.PasswordMinLength {
		merr = appendReasons(merr, fmt.Sprintf("password must be at least %d characters", s.cfg.PasswordMinLength))
	}
	if !symbol {
		merr = appendReasons(merr, "password must contain a non-alphanumeric character")
	}
	if !digit {
		merr = appendReasons(merr, "password must contain a digit")
	}
	if !upper {
		merr = appendReasons(merr, "password must contain an upper-case letter")
	}
	if !lower {
		merr = appendReasons(merr, "password must contain a lower-case letter")
	}
	return merr
}

// Login checks the credentials and issues tokens.  After
// LockoutMaxFailures consecutive wrong passwords the account is locked for
// LockoutDuration.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Tokens, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		utils.BurnPasswordCheck(password)
		return nil, unauthorized(ReasonInvalidCredentials)
	}
	if err != nil {
		return nil, s.internal("login lookup", err)
	}
	now := s.now()
	if !u.IsActive {
		return nil, unauthorized(ReasonNotAllowed)
	}
	if u.LockedOut(now) {
		return nil, unauthorized(ReasonLockedOut)
	}

	if !utils.VerifyPassword(u.PasswordHash, password) {
		reason := ReasonInvalidCredentials
		u.FailedAttempts++
		if s.cfg.LockoutMaxFailures > 0 && u.FailedAttempts >= s.cfg.LockoutMaxFailures {
			end := now.Add(s.cfg.LockoutDuration)
			u.LockoutEnd = &end
			u.FailedAttempts = 0
			reason = ReasonLockedOut
			s.log.Info("account locked", zap.Stringer("user_id", u.ID), zap.Time("until", end))
		}
		err := s.write(ctx, "login failure", func(ctx context.Context) error {
			if reason == ReasonLockedOut {
				// Locking out also signs the account out everywhere.
				if err := s.tokens.RevokeAllForUser(ctx, u.ID); err != nil {
					return err
				}
			}
			return s.users.SaveLoginState(ctx, u)
		})
		if err != nil {
			return nil, err
		}
		return nil, unauthorized(reason)
	}

	var tokens *Tokens
	err = s.write(ctx, "login", func(ctx context.Context) error {
		if u.FailedAttempts > 0 || u.LockoutEnd != nil {
			u.FailedAttempts = 0
			u.LockoutEnd = nil
			if err := s.users.SaveLoginState(ctx, u); err != nil {
				return err
			}
		}
		var err error
		tokens, err = s.issue(ctx, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair.  The old
// refresh token is revoked.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*Tokens, error) {
	hash := utils.HashRefreshRaw(raw)
	userID, err := s.tokens.ValidateRefresh(ctx, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, unauthorized(ReasonInvalidRefresh)
	}
	if err != nil {
		return nil, s.internal("refresh validate", err)
	}
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, unauthorized(ReasonInvalidRefresh)
	}
	if err != nil {
		return nil, s.internal("refresh user", err)
	}
	if !u.IsActive {
		return nil, unauthorized(ReasonNotAllowed)
	}

	var tokens *Tokens
	err = s.write(ctx, "refresh", func(ctx context.Context) error {
		if _, err := s.tokens.RevokeByHash(ctx, hash); err != nil {
			return err
		}
		var err error
		tokens, err = s.issue(ctx, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Logout revokes the refresh token.  Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	return s.write(ctx, "logout", func(ctx context.Context) error {
		_, err := s.tokens.RevokeByHash(ctx, utils.HashRefreshRaw(raw))
		return err
	})
}

// Me returns the authenticated user.
func (s *AuthService) Me(ctx context.Context) (*model.User, error) {
	u, err := s.users.GetByID(ctx, s.tenant.UserID(ctx))
	if err != nil {
		return nil, s.lookup("me", err)
	}
	return u, nil
}

// issue signs an access token and stores a new refresh token for u.
func (s *AuthService) issue(ctx context.Context, u *model.User) (*Tokens, error) {
	at, err := utils.NewAccessToken(s.cfg.JWTSecret, u.ID, string(u.Type), s.cfg.AccessTTLMin)
	if err != nil {
		return nil, err
	}
	rt, err := utils.NewRefreshToken(s.cfg.RefreshTTLDays)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(rt.Raw), rt.Exp); err != nil {
		return nil, err
	}
	return &Tokens{
		AccessToken:      at.Token,
		AccessExpiresAt:  at.Exp,
		RefreshToken:     rt.Raw,
		RefreshExpiresAt: rt.Exp,
		User:             u,
	}, nil
}
