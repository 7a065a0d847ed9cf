package domain

import (
	"errors"
	"time"
)

// AccountKind names the account class a record (and a guard) belongs to.
type AccountKind string

const (
	KindAdmin    AccountKind = "admin"
	KindCustomer AccountKind = "customer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrForbidden          = errors.New("access forbidden")
)

// Account is a login-capable identity. Admins and customers share the shape;
// Status is only meaningful for admins and IsSuspended only for customers.
type Account struct {
	ID           string      `json:"id"`
	Kind         AccountKind `json:"-"`
	FirstName    string      `json:"firstname"`
	LastName     string      `json:"lastname"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	PhoneNumber  string      `json:"phone_number,omitempty"`
	Status       bool        `json:"status,omitempty"`
	IsSuspended  *string     `json:"is_suspended"`
	LastLogin    *time.Time  `json:"last_login"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// AccountPatch carries a partial update. Nil fields are left untouched.
type AccountPatch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
	PhoneNumber  *string
	IsSuspended  *string
}

// Empty reports whether the patch would not change anything.
func (p AccountPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.PasswordHash == nil && p.PhoneNumber == nil && p.IsSuspended == nil
}
