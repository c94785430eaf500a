package repository

import (
	"context"

	"github.com/jhoicas/wholesetail-admin-api/internal/domain/entity"
)

// UserFilter filtros de listado/conteo. Campos vacíos no filtran.
type UserFilter struct {
	Roles  []entity.Role
	Status entity.VerificationStatus
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create persiste el usuario y su perfil (retailer o wholesaler) en una sola transacción.
	Create(ctx context.Context, user *entity.User) error
	// GetByID devuelve el usuario con su perfil, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail devuelve el usuario (sin perfil), o (nil, nil) si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List devuelve usuarios por created_at DESC con el resumen de su perfil.
	List(ctx context.Context, filter UserFilter, limit, offset int) ([]*entity.User, error)
	Count(ctx context.Context, filter UserFilter) (int, error)
	// UpdateVerification fija el estado y, si notes != nil, las notas del revisor.
	// Devuelve domain.ErrUserNotFound si el id no existe.
	UpdateVerification(ctx context.Context, id string, status entity.VerificationStatus, notes *string) (*entity.User, error)
}
