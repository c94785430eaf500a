package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation = "23505"
	// Nombre que PostgreSQL asigna al UNIQUE de users.email en 001_init.sql.
	constraintUsersEmail = "users_email_key"
)

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// isEmailConflict distingue el email duplicado de otros UNIQUE (p. ej. un segundo perfil).
// Sin nombre de constraint se asume el email, el único UNIQUE que un cliente puede provocar.
func isEmailConflict(err error) bool {
	if !isUniqueViolation(err) {
		return false
	}
	var pgErr *pgconn.PgError
	_ = errors.As(err, &pgErr)
	return pgErr.ConstraintName == "" || pgErr.ConstraintName == constraintUsersEmail
}
