package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAllowedOrigins orígenes aceptados por CORS si CORS_ALLOWED_ORIGINS no está definido.
// El primero se usa como fallback para orígenes no listados.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:19000", // Expo
	"http://localhost:19001",
	"http://localhost:19002",
	"http://localhost:8081",
	"https://wholesetail-admin.vercel.app",
}

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Email     EmailConfig
	S3        S3Config
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env    string // development, staging, production
	Name   string
	AppURL string // URL pública del frontend, usada en los enlaces de los emails
}

// IsProduction indica si la app corre en producción.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxConnLife time.Duration
	MaxConnIdle time.Duration
	// ForceIPv4 marca el dial como tcp4, para hosts sin salida IPv6.
	ForceIPv4 bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos; por defecto 7 días
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig controla la verificación de credenciales en rutas de administración.
// BypassAuth solo existe para desarrollo local; Load lo rechaza en producción.
type AuthConfig struct {
	BypassAuth bool
}

// CORSConfig lista de orígenes permitidos.
type CORSConfig struct {
	AllowedOrigins []string
}

// EmailConfig configuración SMTP para las notificaciones.
// Si SMTPHost está vacío los emails solo se registran en el log.
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	SendTimeout  time.Duration
}

// Enabled indica si hay un servidor SMTP configurado.
func (c EmailConfig) Enabled() bool {
	return c.SMTPHost != ""
}

// S3Config almacenamiento de imágenes (S3, MinIO o R2).
type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string // ej. CDN; si está vacío se deriva de Endpoint/Bucket
	UsePathStyle    bool
	DefaultFolder   string
}

// Enabled indica si hay un bucket configurado.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// RedisConfig conexión a Redis (rate limit de login). Addr vacío desactiva el limitador.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig límites de intentos de login.
type RateLimitConfig struct {
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

// ErrBypassInProduction se devuelve cuando AUTH_BYPASS está activo con APP_ENV=production.
var ErrBypassInProduction = errors.New("config: AUTH_BYPASS no puede activarse en producción")

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, AUTH_BYPASS, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio actual
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:    getString(v, "APP_ENV", "development"),
			Name:   getString(v, "APP_NAME", "wholesetail-admin"),
			AppURL: getString(v, "APP_URL", "http://localhost:3000"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "wholesetail"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			MinConns:    getInt(v, "DB_MIN_CONNS", 2),
			MaxConnLife: getDuration(v, "DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdle: getDuration(v, "DB_MAX_CONN_IDLE", 30*time.Minute),
			ForceIPv4:   getBool(v, "DB_FORCE_IPV4", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 7*24*60),
			Issuer:     getString(v, "JWT_ISSUER", "wholesetail"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Auth: AuthConfig{
			BypassAuth: getBool(v, "AUTH_BYPASS", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: getList(v, "CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),
		},
		Email: EmailConfig{
			SMTPHost:     getString(v, "SMTP_HOST", ""),
			SMTPPort:     getInt(v, "SMTP_PORT", 587),
			SMTPUsername: getString(v, "SMTP_USERNAME", ""),
			SMTPPassword: getString(v, "SMTP_PASSWORD", ""),
			FromEmail:    getString(v, "EMAIL_FROM", "no-reply@wholesetail.com"),
			FromName:     getString(v, "EMAIL_FROM_NAME", "Wholesetail"),
			SendTimeout:  getDuration(v, "EMAIL_SEND_TIMEOUT", 30*time.Second),
		},
		S3: S3Config{
			Endpoint:        getString(v, "S3_ENDPOINT", ""),
			Region:          getString(v, "S3_REGION", "us-east-1"),
			AccessKeyID:     getString(v, "S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getString(v, "S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getString(v, "S3_BUCKET", ""),
			PublicBaseURL:   getString(v, "S3_PUBLIC_BASE_URL", ""),
			UsePathStyle:    getBool(v, "S3_USE_PATH_STYLE", true),
			DefaultFolder:   getString(v, "S3_DEFAULT_FOLDER", "wholesetail"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			LoginMaxAttempts: getInt(v, "LOGIN_MAX_ATTEMPTS", 10),
			LoginWindow:      getDuration(v, "LOGIN_WINDOW", 15*time.Minute),
		},
	}

	if cfg.Auth.BypassAuth && cfg.App.IsProduction() {
		return nil, ErrBypassInProduction
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		if d := v.GetDuration(key); d > 0 {
			return d
		}
	}
	return def
}

// getList lee una lista separada por comas ("a,b,c").
func getList(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, part := range strings.Split(v.GetString(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
