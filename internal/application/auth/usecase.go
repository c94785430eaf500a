package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/wholesetail-admin-api/internal/application/dto"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/ports"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/entity"
	"github.com/jhoicas/wholesetail-admin-api/internal/domain/repository"
	"github.com/jhoicas/wholesetail-admin-api/pkg/jwt"
	"github.com/jhoicas/wholesetail-admin-api/pkg/metrics"
)

const (
	bcryptCost      = 10
	subjectPending  = "Welcome to Wholesetail - Registration Confirmation"
	registeredMsg   = "User created successfully. Awaiting verification."
	loginKeyPrefix  = "login:"
	credentialsMiss = "Email and password are required"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// LoginLimiter cuenta intentos de login por clave (IP + email).
// Un error del limitador no bloquea el login.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// ImageUploader sube las imágenes embebidas (data-URL) del registro.
type ImageUploader interface {
	StoreIfEmbedded(ctx context.Context, value, folder string) (string, error)
}

// AuthUseCase casos de uso de autenticación: registro, login y comprobación de token.
type AuthUseCase struct {
	users      repository.UserRepository
	images     ImageUploader
	dispatcher ports.NotificationDispatcher
	limiter    LoginLimiter // nil = sin límite
	guard      *Guard
	jwtCfg     JWTConfig
	log        zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	users repository.UserRepository,
	images ImageUploader,
	dispatcher ports.NotificationDispatcher,
	limiter LoginLimiter,
	guard *Guard,
	jwtCfg JWTConfig,
	log zerolog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:      users,
		images:     images,
		dispatcher: dispatcher,
		limiter:    limiter,
		guard:      guard,
		jwtCfg:     jwtCfg,
		log:        log,
	}
}

// Register crea un minorista o mayorista en estado PENDING con su perfil.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.MessageResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	role := entity.RoleRetailer
	if in.Role != "" {
		r, err := entity.ParseRole(in.Role)
		if err != nil || r.IsAdmin() {
			return nil, domain.NewValidationError("Role must be one of: RETAILER WHOLESALER")
		}
		role = r
	}

	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("registro: buscar email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("registro: hash password: %w", err)
	}

	images, err := uc.uploadDocuments(ctx, in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Email:              in.Email,
		PasswordHash:       string(hash),
		MobileNumber:       strings.TrimSpace(in.MobileNumber),
		Role:               role,
		VerificationStatus: entity.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	switch role {
	case entity.RoleRetailer:
		user.RetailerProfile = &entity.RetailerProfile{
			ID:               uuid.New().String(),
			UserID:           user.ID,
			ShopName:         in.ShopName,
			ShopAddress:      in.ShopAddress,
			GSTNumber:        in.GSTNumber,
			LicenseNumber:    in.LicenseNumber,
			AadharCardNumber: in.AadharCardNumber,
			PanCardNumber:    in.PanCardNumber,
			ReferralCode:     in.ReferralCode,
			ShopImage:        images.shop,
			AadharImage:      images.aadhar,
			PanImage:         images.pan,
			LicenseImage:     images.license,
		}
	case entity.RoleWholesaler:
		user.WholesalerProfile = &entity.WholesalerProfile{
			ID:               uuid.New().String(),
			UserID:           user.ID,
			CompanyName:      in.ShopName,
			CompanyAddress:   in.ShopAddress,
			GSTNumber:        in.GSTNumber,
			LicenseNumber:    in.LicenseNumber,
			AadharCardNumber: in.AadharCardNumber,
			PanCardNumber:    in.PanCardNumber,
			CompanyImage:     images.shop,
			AadharImage:      images.aadhar,
			PanImage:         images.pan,
			LicenseImage:     images.license,
		}
	}

	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("registro: crear usuario: %w", err)
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("usuario registrado")

	uc.dispatcher.Dispatch(ctx, ports.Notification{
		To:       user.Email,
		Subject:  subjectPending,
		Template: ports.TemplateVerificationPending,
		Data:     ports.TemplateData{Name: user.Name},
	})

	return &dto.MessageResponse{User: dto.ToUserResponse(user), Message: registeredMsg}, nil
}

type documentURLs struct {
	shop, aadhar, pan, license string
}

func (uc *AuthUseCase) uploadDocuments(ctx context.Context, in dto.RegisterRequest) (documentURLs, error) {
	var out documentURLs
	for _, doc := range []struct {
		value  string
		folder string
		dst    *string
	}{
		{in.ShopImage, "shop", &out.shop},
		{in.AadharImage, "aadhar", &out.aadhar},
		{in.PanImage, "pan", &out.pan},
		{in.LicenseImage, "license", &out.license},
	} {
		url, err := uc.images.StoreIfEmbedded(ctx, doc.value, doc.folder)
		if err != nil {
			return documentURLs{}, fmt.Errorf("registro: imagen %s: %w", doc.folder, err)
		}
		*doc.dst = url
	}
	return out, nil
}

// Login verifica email/password, aplica la regla de verificación y emite el JWT.
//
// Orden: límite de intentos, credenciales y después estado de verificación,
// para no revelar el estado de cuentas ajenas.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, clientIP string) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.NewValidationError(credentialsMiss)
	}

	key := loginKeyPrefix + clientIP + ":" + email
	if uc.limiter != nil {
		allowed, err := uc.limiter.Allow(ctx, key)
		if err != nil {
			uc.log.Warn().Err(err).Msg("limitador de login no disponible")
		} else if !allowed {
			metrics.RecordLogin("rate_limited")
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: buscar usuario: %w", err)
	}
	if user == nil {
		metrics.RecordLogin("invalid_credentials")
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		metrics.RecordLogin("invalid_credentials")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.CanLogin() {
		metrics.RecordLogin("not_verified")
		return nil, &domain.NotVerifiedError{Status: string(user.VerificationStatus)}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	}, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("login: generar token: %w", err)
	}

	if uc.limiter != nil {
		if err := uc.limiter.Reset(ctx, key); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo reiniciar el contador de login")
		}
	}
	metrics.RecordLogin("ok")

	return &dto.LoginResponse{User: dto.ToUserResponse(user), Token: token}, nil
}

// Check valida el header Authorization y devuelve los claims del token.
func (uc *AuthUseCase) Check(authHeader string) (*dto.AuthCheckResponse, error) {
	p, err := uc.guard.Authenticate(authHeader)
	if err != nil {
		return nil, err
	}
	return &dto.AuthCheckResponse{
		Authenticated: true,
		User: &dto.ClaimsView{
			ID:    p.UserID,
			Email: p.Email,
			Name:  p.Name,
			Role:  string(p.Role),
		},
	}, nil
}
