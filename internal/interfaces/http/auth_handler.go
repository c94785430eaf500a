package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/auth"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/dto"
)

// AuthHandler maneja registro, login y comprobación de token.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar minorista o mayorista
// @Description  Crea la cuenta en estado PENDING. /api/auth/signup es un alias.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "datos de registro; imágenes como URL o data-URL"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse  "cuenta no aprobada; incluye verificationStatus"
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	out, err := h.uc.Login(c.UserContext(), in, c.IP())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Check godoc
// @Summary      Comprobar token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AuthCheckResponse
// @Failure      401  {object}  dto.AuthCheckResponse
// @Router       /api/auth/check [get]
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.AuthCheckResponse{Error: "No token provided"})
	}
	out, err := h.uc.Check(header)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.AuthCheckResponse{Error: "Invalid token"})
	}
	return c.JSON(out)
}
