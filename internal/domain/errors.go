package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotVerified        = errors.New("account not verified")
	ErrTooManyAttempts    = errors.New("too many attempts")
)

// ValidationError error de entrada con mensaje apto para el cliente.
// errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// Errores de validación del flujo de verificación.
var (
	ErrUserIDRequired = NewValidationError("User ID is required")
	ErrInvalidStatus  = NewValidationError("Invalid status")
)

// ErrInvalidCredentials email inexistente o password incorrecto (mismo mensaje en ambos casos).
var ErrInvalidCredentials = errors.New("Invalid email or password")

// NotVerifiedError login de una cuenta que aún no fue aprobada.
// errors.Is(err, ErrNotVerified) es true.
type NotVerifiedError struct {
	Status string
}

func (e *NotVerifiedError) Error() string { return "Account not verified" }

func (e *NotVerifiedError) Unwrap() error { return ErrNotVerified }
