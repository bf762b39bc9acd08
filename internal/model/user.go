package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserType distinguishes the two kinds of accounts.  Its string value
// doubles as the role name.
type UserType string

const (
	UserTypeCompany  UserType = "COMPANY"
	UserTypeCustomer UserType = "CUSTOMER"
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	return t == UserTypeCompany || t == UserTypeCustomer
}

// DisplayName returns the label shown to people for t.
func (t UserType) DisplayName() string {
	switch t {
	case UserTypeCompany:
		return "Company"
	case UserTypeCustomer:
		return "Customer"
	}
	return string(t)
}

// User represents an application account as stored in the `users`
// table.
//
// Fields:
//
//	ID             – primary key identifier of the user.
//	Email          – unique email address (stored lower-cased).
//	PasswordHash   – bcrypt hashed password.
//	RoleID         – foreign key into the roles table.
//	Type           – COMPANY or CUSTOMER.
//	IsActive       – whether the account may log in.
//	FailedAttempts – consecutive failed logins since the last success.
//	LockoutEnd     – login is refused until this time (nil when unlocked).
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID             uuid.UUID  `bun:"id,pk,type:varchar(36)" json:"id"`
	Email          string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash   string     `bun:"password_hash,notnull" json:"-"`
	RoleID         uuid.UUID  `bun:"role_id,type:varchar(36)" json:"-"`
	Role           *Role      `bun:"rel:belongs-to,join:role_id=id" json:"-"`
	Type           UserType   `bun:"type,notnull" json:"type"`
	IsActive       bool       `bun:"is_active,notnull,default:true" json:"is_active"`
	FailedAttempts int        `bun:"failed_attempts,notnull,default:0" json:"-"`
	LockoutEnd     *time.Time `bun:"lockout_end,nullzero" json:"-"`
	CreatedAt      time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time  `bun:"updated_at,nullzero" json:"updated_at"`
}

// LockedOut reports whether the account is locked at now.
func (u *User) LockedOut(now time.Time) bool {
	return u.LockoutEnd != nil && now.Before(*u.LockoutEnd)
}

// Role maps an identifier to a role name.  NormalizedName is the
// upper-cased name used for lookups.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:ro"`

	ID             uuid.UUID `bun:"id,pk,type:varchar(36)"`
	Name           string    `bun:"name,notnull"`
	NormalizedName string    `bun:"normalized_name,notnull,unique"`
}

// RefreshToken models an entry in the `refresh_tokens` table.  The plain
// token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	bun.BaseModel `bun:"table:refresh_tokens,alias:rt"`

	ID        uuid.UUID  `bun:"id,pk,type:varchar(36)"`
	UserID    uuid.UUID  `bun:"user_id,notnull,type:varchar(36)"`
	TokenHash string     `bun:"token_hash,notnull,unique"`
	ExpiresAt time.Time  `bun:"expires_at,notnull"`
	RevokedAt *time.Time `bun:"revoked_at,nullzero"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp"`
}
