package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/wholesetail-admin-api/internal/application/analytics"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/auth"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/notify"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/ports"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/usecase"
	"github.com/jhoicas/wholesetail-admin-api/internal/application/verification"
	"github.com/jhoicas/wholesetail-admin-api/internal/infrastructure/email"
	"github.com/jhoicas/wholesetail-admin-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/wholesetail-admin-api/internal/infrastructure/redis"
	"github.com/jhoicas/wholesetail-admin-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/wholesetail-admin-api/internal/interfaces/http"
	"github.com/jhoicas/wholesetail-admin-api/pkg/config"
	"github.com/jhoicas/wholesetail-admin-api/pkg/logger"
	"github.com/jhoicas/wholesetail-admin-api/pkg/metrics"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: os.Getenv("LOG_LEVEL"),
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	if cfg.Auth.BypassAuth {
		log.Warn().Msg("AUTH_BYPASS activo: las rutas de administración no verifican credenciales")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	// Notificaciones: SMTP si está configurado; si no, solo log.
	var notifier ports.Notifier
	if cfg.Email.Enabled() {
		notifier = email.NewMailer(cfg.Email, cfg.App.AppURL, log.Component("mailer"))
	} else {
		log.Warn().Msg("SMTP_HOST vacío: los emails solo se registran en el log")
		notifier = email.NewLogNotifier(log.Component("mailer"))
	}
	dispatcher := notify.NewDispatcher(notifier, cfg.Email.SendTimeout, log.Component("notify"))

	var imageStore ports.ImageStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3Store(ctx, cfg.S3, log.Component("storage"))
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		imageStore = s3Store
	} else {
		log.Warn().Msg("S3_BUCKET vacío: la subida de imágenes está desactivada")
	}
	uploadUC := usecase.NewUploadUseCase(imageStore, cfg.S3.DefaultFolder, log.Component("upload"))

	// Rate limit de login: sin Redis no hay límite.
	var limiter auth.LoginLimiter
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible: login sin límite de intentos")
		} else {
			defer client.Close()
			limiter = infraredis.NewLoginLimiter(client, cfg.RateLimit.LoginMaxAttempts, cfg.RateLimit.LoginWindow)
		}
	}

	guard := auth.NewGuard(cfg.JWT.Secret, cfg.Auth.BypassAuth)
	authUC := auth.NewAuthUseCase(userRepo, uploadUC, dispatcher, limiter, guard, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	verificationUC := verification.NewUseCase(guard, userRepo, dispatcher, log.Component("verification"))
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 << 20, // imágenes base64 de hasta 10 MB
		ErrorHandler: httpRouter.NewErrorHandler(cfg.App.IsProduction(), log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(httpRouter.CORSMiddleware(cfg.CORS.AllowedOrigins))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Wholesetail Admin API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Guard:          guard,
		VerificationUC: verificationUC,
		UserUC:         userUC,
		DashboardUC:    dashboardUC,
		UploadUC:       uploadUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Los emails en curso terminan antes de cerrar el pool.
	dispatcher.Wait()

	log.Info().Msg("aplicación detenida")
}
