// Package analytics contiene los casos de uso de resumen para el panel de administración.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/dto"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/entity"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/repository"
)

const dashboardRecentUsers = 5 // usuarios en el widget "recientes"

// DashboardUseCase genera los contadores de verificación del panel.
//
// Solo cuenta RETAILER y WHOLESALER: los ADMIN no pasan por verificación.
type DashboardUseCase struct {
	users repository.UserRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(users repository.UserRepository) *DashboardUseCase {
	return &DashboardUseCase{users: users}
}

// GetStats construye el DashboardStatsDTO.
//
// Cinco llamadas en paralelo:
//  1. Count(todos)      → TotalUsers
//  2. Count(PENDING)    → PendingVerifications
//  3. Count(APPROVED)   → ApprovedVerifications
//  4. Count(REJECTED)   → RejectedVerifications
//  5. List(top 5)       → RecentUsers
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	market := entity.MarketRoles()

	type countResult struct {
		n   int
		err error
	}
	type recentResult struct {
		users []*entity.User
		err   error
	}

	count := func(status entity.VerificationStatus) <-chan countResult {
		ch := make(chan countResult, 1)
		go func() {
			n, err := uc.users.Count(ctx, repository.UserFilter{Roles: market, Status: status})
			ch <- countResult{n, err}
		}()
		return ch
	}

	totalCh := count("")
	pendingCh := count(entity.StatusPending)
	approvedCh := count(entity.StatusApproved)
	rejectedCh := count(entity.StatusRejected)

	recentCh := make(chan recentResult, 1)
	go func() {
		users, err := uc.users.List(ctx, repository.UserFilter{Roles: market}, dashboardRecentUsers, 0)
		recentCh <- recentResult{users, err}
	}()

	total := <-totalCh
	pending := <-pendingCh
	approved := <-approvedCh
	rejected := <-rejectedCh
	recent := <-recentCh

	for _, r := range []struct {
		label string
		err   error
	}{
		{"total", total.err},
		{"pendientes", pending.err},
		{"aprobados", approved.err},
		{"rechazados", rejected.err},
		{"recientes", recent.err},
	} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", r.label, r.err)
		}
	}

	recentUsers := make([]dto.RecentUserDTO, 0, len(recent.users))
	for _, u := range recent.users {
		recentUsers = append(recentUsers, dto.RecentUserDTO{
			ID:                 u.ID,
			Name:               u.Name,
			Email:              u.Email,
			Role:               string(u.Role),
			VerificationStatus: string(u.VerificationStatus),
			CreatedAt:          u.CreatedAt,
		})
	}

	return &dto.DashboardStatsDTO{
		TotalUsers:            total.n,
		PendingVerifications:  pending.n,
		ApprovedVerifications: approved.n,
		RejectedVerifications: rejected.n,
		RecentUsers:           recentUsers,
	}, nil
}
