// Package verification contiene el caso de uso de revisión de cuentas:
// un administrador aprueba o rechaza a un minorista/mayorista pendiente.
package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/auth"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/dto"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/ports"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/entity"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/repository"
	"github.com/jhoicas/wholesetail-admin-api/pkg/metrics"
)

const (
	subjectApproved = "Your Wholesetail Account Has Been Approved"
	subjectRejected = "Your Wholesetail Account Verification Was Rejected"
)

// AdminAuthorizer resuelve el header Authorization en un principal con rol ADMIN.
// *auth.Guard lo implementa.
type AdminAuthorizer interface {
	RequireAdmin(authHeader string) (*auth.Principal, error)
}

// UseCase aplica transiciones de verificación y notifica al usuario afectado.
//
// Orden: autorización, validación de entrada, actualización en el store y,
// solo si la actualización tuvo éxito, notificación en segundo plano.
// La notificación nunca altera el resultado.
type UseCase struct {
	guard      AdminAuthorizer
	users      repository.UserRepository
	dispatcher ports.NotificationDispatcher
	log        zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(guard AdminAuthorizer, users repository.UserRepository, dispatcher ports.NotificationDispatcher, log zerolog.Logger) *UseCase {
	return &UseCase{guard: guard, users: users, dispatcher: dispatcher, log: log}
}

// SetStatus fija el estado de verificación de in.UserID.
//
// Errores:
//   - domain.ErrUnauthorized / domain.ErrForbidden: credencial del actor.
//   - domain.ValidationError: "User ID is required" o "Invalid status".
//   - domain.ErrUserNotFound: el id no existe.
//   - cualquier otro: fallo del store, envuelto.
func (uc *UseCase) SetStatus(ctx context.Context, in dto.SetVerificationStatusRequest) (*dto.SetVerificationStatusResponse, error) {
	actor, err := uc.guard.RequireAdmin(in.ActorToken)
	if err != nil {
		return nil, err
	}

	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	status, err := entity.ParseVerificationStatus(in.Status)
	if err != nil || !status.IsDecision() {
		return nil, domain.ErrInvalidStatus
	}

	// Notas vacías no pisan las existentes.
	var notes *string
	if n := strings.TrimSpace(in.Notes); n != "" {
		notes = &n
	}

	user, err := uc.users.UpdateVerification(ctx, userID, status, notes)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("verificación: actualizar usuario %s: %w", userID, err)
	}
	metrics.RecordVerification(string(status))

	uc.log.Info().
		Str("user_id", user.ID).
		Str("status", string(status)).
		Str("actor", actor.UserID).
		Bool("bypass", actor.Bypass).
		Msg("estado de verificación actualizado")

	uc.notify(ctx, user, status, notes)

	return &dto.SetVerificationStatusResponse{
		User: dto.VerifiedUser{
			ID:                 user.ID,
			Name:               user.Name,
			Email:              user.Email,
			Role:               string(user.Role),
			VerificationStatus: string(user.VerificationStatus),
		},
		Message: "User verification status updated to " + string(status),
	}, nil
}

func (uc *UseCase) notify(ctx context.Context, user *entity.User, status entity.VerificationStatus, notes *string) {
	n := ports.Notification{
		To:   user.Email,
		Data: ports.TemplateData{Name: user.Name},
	}
	switch status {
	case entity.StatusApproved:
		n.Subject = subjectApproved
		n.Template = ports.TemplateVerificationApproved
	case entity.StatusRejected:
		n.Subject = subjectRejected
		n.Template = ports.TemplateVerificationRejected
		if notes != nil {
			n.Data.Notes = *notes
		}
	default:
		return
	}
	uc.dispatcher.Dispatch(ctx, n)
}
