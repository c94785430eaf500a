package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/dto"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/usecase"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain"
)

// UploadHandler subida de imágenes de documentos.
type UploadHandler struct {
	uc *usecase.UploadUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir imagen
// @Tags         upload
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UploadRequest  true  "image: base64 o data-URL; folder opcional"
// @Success      200   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	var in dto.UploadRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	out, err := h.uc.Upload(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, usecase.ErrStorageDisabled) {
			return err
		}
		return fmt.Errorf("%w: %w", fiber.NewError(fiber.StatusInternalServerError, "Failed to upload image"), err)
	}
	return c.JSON(out)
}
