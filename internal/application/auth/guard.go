package auth

import (
	"fmt"
	"strings"

	"github.com/jhoicas/wholesetail-admin-api/internal/domain"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/entity"
	"github.com/jhoicas/wholesetail-admin-api/pkg/jwt"
)

// BypassUserID identificador del principal sintético en modo bypass.
const BypassUserID = "dev-bypass"

// Principal identidad autenticada extraída del token.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   entity.Role // vacío si el claim no es un rol conocido
	Bypass bool
}

// Guard valida el header Authorization y aplica la regla de admin.
//
// En modo bypass (solo desarrollo) RequireAdmin no verifica credenciales.
// config.Load impide activarlo con APP_ENV=production.
type Guard struct {
	secret string
	bypass bool
}

// NewGuard construye el guard con el secreto de firma.
func NewGuard(secret string, bypass bool) *Guard {
	return &Guard{secret: secret, bypass: bypass}
}

// BypassEnabled indica si el guard corre en modo bypass.
func (g *Guard) BypassEnabled() bool { return g.bypass }

// Authenticate valida "Bearer <token>" y devuelve el principal.
// Header ausente, mal formado o token inválido/expirado => domain.ErrUnauthorized.
func (g *Guard) Authenticate(authHeader string) (*Principal, error) {
	token, err := bearerToken(authHeader)
	if err != nil {
		return nil, err
	}
	claims, err := jwt.Parse(g.secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: token inválido o expirado", domain.ErrUnauthorized)
	}
	p := &Principal{UserID: claims.UserID, Email: claims.Email, Name: claims.Name}
	if role, ok := entity.RoleFromClaim(claims.Role); ok {
		p.Role = role
	}
	return p, nil
}

// RequireAdmin exige un token válido con rol ADMIN (domain.ErrForbidden si el rol es otro).
func (g *Guard) RequireAdmin(authHeader string) (*Principal, error) {
	if g.bypass {
		return &Principal{UserID: BypassUserID, Role: entity.RoleAdmin, Bypass: true}, nil
	}
	p, err := g.Authenticate(authHeader)
	if err != nil {
		return nil, err
	}
	switch p.Role {
	case entity.RoleAdmin:
		return p, nil
	case entity.RoleRetailer, entity.RoleWholesaler:
		return nil, fmt.Errorf("%w: se requiere rol ADMIN", domain.ErrForbidden)
	default:
		return nil, fmt.Errorf("%w: rol ausente o desconocido en el token", domain.ErrForbidden)
	}
}

func bearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", fmt.Errorf("%w: Authorization header requerido", domain.ErrUnauthorized)
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("%w: formato Bearer <token>", domain.ErrUnauthorized)
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", fmt.Errorf("%w: token vacío", domain.ErrUnauthorized)
	}
	return token, nil
}
