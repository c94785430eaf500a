package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/dto"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/usecase"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain"
)

// NewErrorHandler traduce los errores devueltos por los handlers a respuestas JSON.
// Fuera de producción los 500 incluyen el detalle del error.
func NewErrorHandler(production bool, log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error interno")
			if !production && body.Details == "" {
				body.Details = err.Error()
			}
		}
		return c.Status(status).JSON(body)
	}
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		notVerified *domain.NotVerifiedError
		validation  *domain.ValidationError
		fiberErr    *fiber.Error
	)
	switch {
	case errors.As(err, &notVerified):
		return fiber.StatusForbidden, dto.ErrorResponse{
			Error:              notVerified.Error(),
			Code:               "NOT_VERIFIED",
			VerificationStatus: notVerified.Status,
		}
	case errors.As(err, &validation):
		return fiber.StatusBadRequest, dto.ErrorResponse{Error: validation.Msg, Code: "VALIDATION"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request", Code: "VALIDATION"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Error: domain.ErrInvalidCredentials.Error(), Code: "INVALID_CREDENTIALS"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Code: "UNAUTHORIZED"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Error: "Forbidden", Code: "FORBIDDEN"}
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Error: "User not found", Code: "USER_NOT_FOUND"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Error: "Not found", Code: "NOT_FOUND"}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Error: "Email already exists", Code: "EMAIL_EXISTS"}
	case errors.Is(err, domain.ErrTooManyAttempts):
		return fiber.StatusTooManyRequests, dto.ErrorResponse{Error: "Too many login attempts, try again later", Code: "RATE_LIMITED"}
	case errors.Is(err, usecase.ErrStorageDisabled):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Error: "Image storage not configured", Code: "STORAGE_DISABLED"}
	case errors.As(err, &fiberErr):
		return fiberErr.Code, dto.ErrorResponse{Error: fiberErr.Message}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error", Code: "INTERNAL"}
	}
}
