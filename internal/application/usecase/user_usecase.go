package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/dto"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/entity"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/repository"
)

// UserUseCase consultas del panel sobre usuarios registrados.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List devuelve una página de usuarios filtrada por estado y rol, más recientes primero.
// Filtros vacíos no filtran; valores fuera de los enums => ValidationError.
func (uc *UserUseCase) List(ctx context.Context, q dto.UserListQuery) (*dto.UserListResponse, error) {
	filter := repository.UserFilter{}
	if s := strings.TrimSpace(q.Status); s != "" {
		status, err := entity.ParseVerificationStatus(strings.ToUpper(s))
		if err != nil {
			return nil, domain.NewValidationError("Invalid status filter")
		}
		filter.Status = status
	}
	if r := strings.TrimSpace(q.Role); r != "" {
		role, err := entity.ParseRole(r)
		if err != nil {
			return nil, domain.NewValidationError("Invalid role filter")
		}
		filter.Roles = []entity.Role{role}
	}

	page := q.PageRequest
	page.Normalize()

	users, err := uc.repo.List(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("contar usuarios: %w", err)
	}

	items := make([]dto.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, dto.ToUserListItem(u))
	}
	return &dto.UserListResponse{Users: items, Meta: dto.NewPageMeta(total, page)}, nil
}

// GetByID devuelve el detalle del usuario con su perfil.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserDetailResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrUserIDRequired
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario %s: %w", id, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.ToUserDetail(user)
	return &out, nil
}
