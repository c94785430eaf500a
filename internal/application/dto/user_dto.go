package dto

import (
	"time"

	"github.com/jhoicas/wholesetail-admin-api/internal/domain/entity"
)

// RegisterRequest entrada de registro/signup. Las imágenes pueden ser URLs o data-URLs base64.
type RegisterRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=200"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	MobileNumber     string `json:"mobileNumber" validate:"omitempty,max=20"`
	Role             string `json:"role" validate:"omitempty,oneof=RETAILER WHOLESALER"`
	ShopName         string `json:"shopName" validate:"max=200"`
	ShopAddress      string `json:"shopAddress" validate:"max=500"`
	GSTNumber        string `json:"gstNumber" validate:"max=50"`
	LicenseNumber    string `json:"licenseNumber" validate:"max=50"`
	AadharCardNumber string `json:"aadharCardNumber" validate:"max=50"`
	PanCardNumber    string `json:"panCardNumber" validate:"max=50"`
	ReferralCode     string `json:"referralCode" validate:"max=50"`
	ShopImage        string `json:"shopImage"`
	AadharImage      string `json:"aadharImage"`
	PanImage         string `json:"panImage"`
	LicenseImage     string `json:"licenseImage"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse proyección pública de un usuario (sin password).
type UserResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	MobileNumber       string    `json:"mobileNumber,omitempty"`
	Role               string    `json:"role"`
	VerificationStatus string    `json:"verificationStatus"`
	VerificationNotes  *string   `json:"verificationNotes,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// AuthCheckResponse salida de GET /api/auth/check.
type AuthCheckResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          *ClaimsView `json:"user,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// ClaimsView claims decodificados del token.
type ClaimsView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// RetailerProfileSummary resumen del perfil minorista en listados.
type RetailerProfileSummary struct {
	ShopName    string `json:"shopName"`
	ShopAddress string `json:"shopAddress"`
	GSTNumber   string `json:"gstNumber"`
}

// WholesalerProfileSummary resumen del perfil mayorista en listados.
type WholesalerProfileSummary struct {
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	GSTNumber      string `json:"gstNumber"`
}

// UserListItem fila del listado de usuarios del panel.
type UserListItem struct {
	ID                 string                    `json:"id"`
	Name               string                    `json:"name"`
	Email              string                    `json:"email"`
	MobileNumber       string                    `json:"mobileNumber"`
	Role               string                    `json:"role"`
	VerificationStatus string                    `json:"verificationStatus"`
	CreatedAt          time.Time                 `json:"createdAt"`
	RetailerProfile    *RetailerProfileSummary   `json:"retailerProfile"`
	WholesalerProfile  *WholesalerProfileSummary `json:"wholesalerProfile"`
}

// UserListResponse salida de GET /api/admin/users.
type UserListResponse struct {
	Users []UserListItem `json:"users"`
	Meta  PageMeta       `json:"meta"`
}

// UserListQuery filtros de GET /api/admin/users.
type UserListQuery struct {
	Status string `query:"status"`
	Role   string `query:"role"`
	PageRequest
}

// RetailerProfileDetail perfil minorista completo (detalle de usuario).
type RetailerProfileDetail struct {
	ShopName         string `json:"shopName"`
	ShopAddress      string `json:"shopAddress"`
	GSTNumber        string `json:"gstNumber"`
	LicenseNumber    string `json:"licenseNumber"`
	AadharCardNumber string `json:"aadharCardNumber"`
	PanCardNumber    string `json:"panCardNumber"`
	ReferralCode     string `json:"referralCode"`
	ShopImage        string `json:"shopImage"`
	AadharImage      string `json:"aadharImage"`
	PanImage         string `json:"panImage"`
	LicenseImage     string `json:"licenseImage"`
}

// WholesalerProfileDetail perfil mayorista completo.
type WholesalerProfileDetail struct {
	CompanyName      string `json:"companyName"`
	CompanyAddress   string `json:"companyAddress"`
	GSTNumber        string `json:"gstNumber"`
	LicenseNumber    string `json:"licenseNumber"`
	AadharCardNumber string `json:"aadharCardNumber"`
	PanCardNumber    string `json:"panCardNumber"`
	CompanyImage     string `json:"companyImage"`
	AadharImage      string `json:"aadharImage"`
	PanImage         string `json:"panImage"`
	LicenseImage     string `json:"licenseImage"`
}

// UserDetailResponse salida de GET /api/admin/users/:id.
type UserDetailResponse struct {
	UserResponse
	UpdatedAt         time.Time                `json:"updatedAt"`
	RetailerProfile   *RetailerProfileDetail   `json:"retailerProfile"`
	WholesalerProfile *WholesalerProfileDetail `json:"wholesalerProfile"`
}

// ToUserResponse proyecta la entidad sin datos sensibles.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		MobileNumber:       u.MobileNumber,
		Role:               string(u.Role),
		VerificationStatus: string(u.VerificationStatus),
		VerificationNotes:  u.VerificationNotes,
		CreatedAt:          u.CreatedAt,
	}
}

// ToUserListItem proyecta la entidad a fila de listado.
func ToUserListItem(u *entity.User) UserListItem {
	item := UserListItem{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		MobileNumber:       u.MobileNumber,
		Role:               string(u.Role),
		VerificationStatus: string(u.VerificationStatus),
		CreatedAt:          u.CreatedAt,
	}
	if p := u.RetailerProfile; p != nil {
		item.RetailerProfile = &RetailerProfileSummary{ShopName: p.ShopName, ShopAddress: p.ShopAddress, GSTNumber: p.GSTNumber}
	}
	if p := u.WholesalerProfile; p != nil {
		item.WholesalerProfile = &WholesalerProfileSummary{CompanyName: p.CompanyName, CompanyAddress: p.CompanyAddress, GSTNumber: p.GSTNumber}
	}
	return item
}

// ToUserDetail proyecta la entidad con su perfil completo.
func ToUserDetail(u *entity.User) UserDetailResponse {
	out := UserDetailResponse{UserResponse: ToUserResponse(u), UpdatedAt: u.UpdatedAt}
	if p := u.RetailerProfile; p != nil {
		out.RetailerProfile = &RetailerProfileDetail{
			ShopName: p.ShopName, ShopAddress: p.ShopAddress, GSTNumber: p.GSTNumber,
			LicenseNumber: p.LicenseNumber, AadharCardNumber: p.AadharCardNumber, PanCardNumber: p.PanCardNumber,
			ReferralCode: p.ReferralCode, ShopImage: p.ShopImage, AadharImage: p.AadharImage,
			PanImage: p.PanImage, LicenseImage: p.LicenseImage,
		}
	}
	if p := u.WholesalerProfile; p != nil {
		out.WholesalerProfile = &WholesalerProfileDetail{
			CompanyName: p.CompanyName, CompanyAddress: p.CompanyAddress, GSTNumber: p.GSTNumber,
			LicenseNumber: p.LicenseNumber, AadharCardNumber: p.AadharCardNumber, PanCardNumber: p.PanCardNumber,
			CompanyImage: p.CompanyImage, AadharImage: p.AadharImage, PanImage: p.PanImage, LicenseImage: p.LicenseImage,
		}
	}
	return out
}
