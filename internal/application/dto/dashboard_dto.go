package dto

import "time"

// DashboardStatsDTO respuesta de GET /api/admin/stats.
// Solo cuenta RETAILER y WHOLESALER; los ADMIN no pasan por verificación.
type DashboardStatsDTO struct {
	TotalUsers            int             `json:"totalUsers"`
	PendingVerifications  int             `json:"pendingVerifications"`
	ApprovedVerifications int             `json:"approvedVerifications"`
	RejectedVerifications int             `json:"rejectedVerifications"`
	RecentUsers           []RecentUserDTO `json:"recentUsers"`
}

// RecentUserDTO usuario reciente para el widget del dashboard.
type RecentUserDTO struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	VerificationStatus string    `json:"verificationStatus"`
	CreatedAt          time.Time `json:"createdAt"`
}
