package usecase_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/dto"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/usecase"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/entity"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/repository"
)

// listRepo implementa List/Count/GetByID sobre un slice.
type listRepo struct {
	repository.UserRepository
	users      []*entity.User
	lastFilter repository.UserFilter
}

func (r *listRepo) match(u *entity.User, f repository.UserFilter) bool {
	if f.Status != "" && u.VerificationStatus != f.Status {
		return false
	}
	if len(f.Roles) == 0 {
		return true
	}
	for _, role := range f.Roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

func (r *listRepo) List(_ context.Context, f repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	r.lastFilter = f
	var out []*entity.User
	for _, u := range r.users {
		if r.match(u, f) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *listRepo) Count(_ context.Context, f repository.UserFilter) (int, error) {
	n := 0
	for _, u := range r.users {
		if r.match(u, f) {
			n++
		}
	}
	return n, nil
}

func (r *listRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func seedUsers() []*entity.User {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []*entity.User{
		{ID: "r1", Name: "Shop Uno", Email: "r1@x.in", Role: entity.RoleRetailer, VerificationStatus: entity.StatusPending, CreatedAt: base,
			RetailerProfile: &entity.RetailerProfile{ShopName: "Kirana Uno", GSTNumber: "GST1"}},
		{ID: "r2", Name: "Shop Dos", Email: "r2@x.in", Role: entity.RoleRetailer, VerificationStatus: entity.StatusApproved, CreatedAt: base.Add(time.Hour)},
		{ID: "w1", Name: "Mayorista", Email: "w1@x.in", Role: entity.RoleWholesaler, VerificationStatus: entity.StatusPending, CreatedAt: base.Add(2 * time.Hour),
			WholesalerProfile: &entity.WholesalerProfile{CompanyName: "Bulk Co", CompanyAddress: "Mumbai"}},
		{ID: "a1", Name: "Admin", Email: "a1@x.in", Role: entity.RoleAdmin, VerificationStatus: entity.StatusApproved, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func TestUserUseCase_List_FiltrosYPaginacion(t *testing.T) {
	repo := &listRepo{users: seedUsers()}
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.List(context.Background(), dto.UserListQuery{Status: "PENDING"})
	require.NoError(t, err)
	require.Len(t, out.Users, 2)
	assert.Equal(t, "w1", out.Users[0].ID)
	assert.Equal(t, "Bulk Co", out.Users[0].WholesalerProfile.CompanyName)
	assert.Equal(t, "Kirana Uno", out.Users[1].RetailerProfile.ShopName)
	assert.Equal(t, dto.PageMeta{Total: 2, Page: 1, Limit: 10, TotalPages: 1}, out.Meta)

	out, err = uc.List(context.Background(), dto.UserListQuery{Role: "retailer", PageRequest: dto.PageRequest{Page: 2, Limit: 1}})
	require.NoError(t, err)
	require.Len(t, out.Users, 1)
	assert.Equal(t, "r1", out.Users[0].ID)
	assert.Equal(t, dto.PageMeta{Total: 2, Page: 2, Limit: 1, TotalPages: 2}, out.Meta)
	assert.Equal(t, []entity.Role{entity.RoleRetailer}, repo.lastFilter.Roles)
}

func TestUserUseCase_List_SinFiltros_IncluyeAdmins(t *testing.T) {
	uc := usecase.NewUserUseCase(&listRepo{users: seedUsers()})
	out, err := uc.List(context.Background(), dto.UserListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Meta.Total)
	assert.Equal(t, "a1", out.Users[0].ID)
}

func TestUserUseCase_List_FiltroInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(&listRepo{})
	_, err := uc.List(context.Background(), dto.UserListQuery{Status: "BANNED"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.List(context.Background(), dto.UserListQuery{Role: "ROOT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUseCase_GetByID(t *testing.T) {
	uc := usecase.NewUserUseCase(&listRepo{users: seedUsers()})

	out, err := uc.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1@x.in", out.Email)
	require.NotNil(t, out.RetailerProfile)
	assert.Equal(t, "GST1", out.RetailerProfile.GSTNumber)
	assert.Nil(t, out.WholesalerProfile)

	_, err = uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.GetByID(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
