package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/wholesetail-admin-api/internal/application/analytics"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/auth"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/usecase"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/verification"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	Guard          *auth.Guard
	VerificationUC *verification.UseCase
	UserUC         *usecase.UserUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	UploadUC       *usecase.UploadUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/signup", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/check", authHandler.Check)

	// Upload (público: el registro sube documentos antes de tener cuenta)
	uploadHandler := NewUploadHandler(deps.UploadUC)
	api.Post("/upload", uploadHandler.Upload)

	// Admin. El middleware va por ruta y corre antes de leer el cuerpo.
	admin := api.Group("/admin")
	requireAdmin := RequireAdmin(deps.Guard)

	userHandler := NewAdminUserHandler(deps.UserUC)
	admin.Get("/users", requireAdmin, userHandler.List)
	admin.Get("/users/:id", requireAdmin, userHandler.GetByID)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	admin.Get("/stats", requireAdmin, dashboardHandler.GetStats)

	verificationHandler := NewVerificationHandler(deps.VerificationUC)
	admin.Patch("/users/:id/verify", requireAdmin, verificationHandler.SetStatus)
}
