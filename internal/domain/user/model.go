package user

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MaxEmailLength bounds the user-editable email field.
const MaxEmailLength = 254

// Role constants
const (
	RoleAdministrator = "administrator"
	RoleVisitor       = "visitor"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdministrator, RoleVisitor}

// Domain errors
var (
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmailTooLong  = errors.New("email cannot exceed 254 characters")
	ErrInvalidRole   = errors.New("role must be one of: administrator, visitor")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrWrongPassword = errors.New("incorrect password")
)

// User holds state for a registered account. PasswordHash is stored on the
// remote resource store but never copied into a session record.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
	Role         string `json:"role"`
}

// New constructs a visitor-role user with a hashed password.
// POST: Role is RoleVisitor, PasswordHash is set
func New(email, password string) (User, error) {
	u := User{Email: email, Role: RoleVisitor}
	if err := u.SetPassword(password); err != nil {
		return User{}, err
	}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

// Validate checks if the User has valid data.
// POST: Returns nil if valid, error otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if len(u.Email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if !IsValidRole(u.Role) {
		return ErrInvalidRole
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is non-empty
// POST: PasswordHash is set to bcrypt hash
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrWrongPassword
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsAdministrator returns true if the user has the administrator role.
func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

// IsValidRole reports whether role is one of the recognized roles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
