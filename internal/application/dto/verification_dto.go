package dto

// SetVerificationStatusRequest comando de revisión de una cuenta.
// ActorToken es el header Authorization tal cual llegó (vacío en modo bypass).
type SetVerificationStatusRequest struct {
	ActorToken string `json:"-"`
	UserID     string `json:"-"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

// VerifiedUser proyección pública devuelta tras el cambio de estado.
type VerifiedUser struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	VerificationStatus string `json:"verificationStatus"`
}

// SetVerificationStatusResponse salida de PATCH /api/admin/users/:id/verify.
type SetVerificationStatusResponse struct {
	User    VerifiedUser `json:"user"`
	Message string       `json:"message"`
}
