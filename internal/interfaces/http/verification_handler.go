package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/dto"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/verification"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain"
)

// VerificationHandler expone la revisión de cuentas.
// La ruta va detrás de RequireAdmin; el caso de uso vuelve a validar el header crudo.
type VerificationHandler struct {
	uc *verification.UseCase
}

// NewVerificationHandler construye el handler.
func NewVerificationHandler(uc *verification.UseCase) *VerificationHandler {
	return &VerificationHandler{uc: uc}
}

// SetStatus godoc
// @Summary      Aprobar o rechazar una cuenta
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                             true  "ID del usuario"
// @Param        body  body  dto.SetVerificationStatusRequest  true  "status: APPROVED | REJECTED; notes opcional"
// @Success      200   {object}  dto.SetVerificationStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/verify [patch]
func (h *VerificationHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetVerificationStatusRequest
	// El cuerpo siempre es JSON, venga con el Content-Type que venga.
	if body := c.Body(); len(body) > 0 {
		if err := c.App().Config().JSONDecoder(body, &in); err != nil {
			return domain.NewValidationError("Invalid request body")
		}
	}
	in.ActorToken = c.Get(fiber.HeaderAuthorization)
	in.UserID = c.Params("id")

	out, err := h.uc.SetStatus(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
