package user

import (
	"fmt"
	"strings"
	"time"

	"pulsefit/internal/shared/biztime"
)

// Role separates staff from members at the API boundary.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

var validRoles = map[Role]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// User is a login account. Member accounts are provisioned by staff with a
// temporary password; MustChangePassword stays set until the member picks
// their own.
type User struct {
	id                 uint
	email              string
	passwordHash       string
	role               Role
	mustChangePassword bool
	createdAt          time.Time
	updatedAt          time.Time
}

// NewUser creates an account. The password hash is produced by the caller;
// the domain never sees plaintext.
func NewUser(email, passwordHash string, role Role, mustChangePassword bool) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email format")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !validRoles[role] {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := biztime.NowUTC()
	return &User{
		email:              email,
		passwordHash:       passwordHash,
		role:               role,
		mustChangePassword: mustChangePassword,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructUser rebuilds an account from persistence.
func ReconstructUser(
	id uint,
	email, passwordHash string,
	role Role,
	mustChangePassword bool,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if !validRoles[role] {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	return &User{
		id:                 id,
		email:              email,
		passwordHash:       passwordHash,
		role:               role,
		mustChangePassword: mustChangePassword,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (u *User) ID() uint                 { return u.id }
func (u *User) Email() string            { return u.email }
func (u *User) PasswordHash() string     { return u.passwordHash }
func (u *User) Role() Role               { return u.role }
func (u *User) MustChangePassword() bool { return u.mustChangePassword }
func (u *User) CreatedAt() time.Time     { return u.createdAt }
func (u *User) UpdatedAt() time.Time     { return u.updatedAt }

func (u *User) IsAdmin() bool { return u.role == RoleAdmin }

// SetID sets the database ID (persistence layer use only).
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// ChangePassword installs a new hash and clears the temporary-password flag.
func (u *User) ChangePassword(newHash string) error {
	if newHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = newHash
	u.mustChangePassword = false
	u.updatedAt = biztime.NowUTC()
	return nil
}

// ResetPassword installs a staff-issued temporary hash and forces the member
// to change it at next login.
func (u *User) ResetPassword(tempHash string) error {
	if tempHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = tempHash
	u.mustChangePassword = true
	u.updatedAt = biztime.NowUTC()
	return nil
}
