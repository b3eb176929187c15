package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/condo-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password must be at least 6 characters")
)

const (
	RoleResident = "resident"
	RoleAdmin    = "admin"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// User is a resident or administrator account.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	FullName     *string
	PhoneNumber  *string
	Role         string
	CreatedAt    time.Time
}
