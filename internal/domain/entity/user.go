package entity

import (
	"fmt"
	"strings"
	"time"
)

// Role rol de un usuario. Conjunto cerrado: cualquier otro valor se rechaza en ParseRole.
type Role string

// Roles válidos para User.
const (
	RoleRetailer   Role = "RETAILER"
	RoleWholesaler Role = "WHOLESALER"
	RoleAdmin      Role = "ADMIN"
)

// ParseRole convierte un string de entrada (query, body) en Role, sin distinguir mayúsculas.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleRetailer, RoleWholesaler, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("rol desconocido: %q", s)
	}
}

// RoleFromClaim convierte el claim "role" de un token sin normalizar: solo acepta
// el valor exacto que emite el login.
func RoleFromClaim(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleRetailer, RoleWholesaler, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// IsAdmin indica si el rol está exento del flujo de verificación.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// MarketRoles roles sujetos a verificación (los que cuentan en el dashboard).
func MarketRoles() []Role { return []Role{RoleRetailer, RoleWholesaler} }

// VerificationStatus estado de verificación de la cuenta.
//
//	PENDING ──► APPROVED
//	   └──────► REJECTED
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "PENDING"
	StatusApproved VerificationStatus = "APPROVED"
	StatusRejected VerificationStatus = "REJECTED"
)

// ParseVerificationStatus convierte un string en VerificationStatus (case-sensitive, como en la API).
func ParseVerificationStatus(s string) (VerificationStatus, error) {
	switch st := VerificationStatus(s); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("estado de verificación desconocido: %q", s)
	}
}

// IsDecision indica si el estado es destino válido de una revisión (APPROVED o REJECTED).
// PENDING solo es estado inicial.
func (s VerificationStatus) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

// User usuario del marketplace (minorista, mayorista o administrador).
type User struct {
	ID                 string
	Name               string
	Email              string
	PasswordHash       string // bcrypt; nunca sale en respuestas
	MobileNumber       string
	Role               Role
	VerificationStatus VerificationStatus
	VerificationNotes  *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Exactamente uno según Role (ninguno para ADMIN).
	RetailerProfile   *RetailerProfile
	WholesalerProfile *WholesalerProfile
}

// CanLogin aplica la regla de acceso: ADMIN siempre, el resto solo APPROVED.
func (u *User) CanLogin() bool {
	return u.Role.IsAdmin() || u.VerificationStatus == StatusApproved
}

// BusinessName nombre comercial según el perfil asociado.
func (u *User) BusinessName() string {
	switch {
	case u.RetailerProfile != nil:
		return u.RetailerProfile.ShopName
	case u.WholesalerProfile != nil:
		return u.WholesalerProfile.CompanyName
	default:
		return ""
	}
}
