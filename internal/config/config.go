package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Crypto   CryptoConfig
	Mail     MailConfig
	Alerts   AlertsConfig
	Admin    AdminConfig
	CORS     CORSConfig
	Server   ServerConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	IsAutoMigrate   bool
}

type JWTConfig struct {
	Secret        string
	Expiry        time.Duration
	RefreshExpiry time.Duration
}

// CryptoConfig keys the field-level encryption of member data. There is no
// fallback value: a missing or short secret fails startup.
type CryptoConfig struct {
	EncryptionKey string
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// AlertsConfig drives the overdue-payment reminder jobs. The specs use the
// standard 5-field cron syntax.
type AlertsConfig struct {
	Enabled    bool
	DailySpec  string
	WeeklySpec string
	SendPause  time.Duration
}

// AdminConfig seeds the default operator account when the users table is
// empty. Seeding is skipped when Password is unset.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
}

func Load(env string) (*Config, error) {
	if err := loadEnvFile(env); err != nil {
		return nil, fmt.Errorf("cargar variables de entorno: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "dojo-cuotas-api"),
			Env:  env,
			Port: getEnvAsInt("APP_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", ""),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", ""),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "1h"),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", "10m"),
			IsAutoMigrate:   getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			Expiry:        getEnvAsDuration("JWT_EXPIRY", "24h"),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", "168h"),
		},
		Crypto: CryptoConfig{
			EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		},
		Mail: MailConfig{
			Host:     getEnv("EMAIL_HOST", ""),
			Port:     getEnvAsInt("EMAIL_PORT", 587),
			Username: getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASS", ""),
			From:     getEnv("EMAIL_FROM", ""),
		},
		Alerts: AlertsConfig{
			Enabled:    getEnvAsBool("ALERTS_ENABLED", false),
			DailySpec:  getEnv("ALERTS_DAILY_CRON", "0 9 * * *"),   // 9:00 AM todos los días
			WeeklySpec: getEnv("ALERTS_WEEKLY_CRON", "0 10 * * 5"), // 10:00 AM los viernes
			SendPause:  getEnvAsDuration("ALERTS_SEND_PAUSE", "1s"),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Email:    getEnv("ADMIN_EMAIL", "admin@dojolanza.mx"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},
		Server: ServerConfig{
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			GracefulTimeout: getEnvAsDuration("GRACEFUL_TIMEOUT", "30s"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validar variables de entorno: %w", err)
	}

	return cfg, nil
}

func loadEnvFile(env string) error {
	envFile := fmt.Sprintf(".env.%s", env)

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Warn("Archivo de entorno no encontrado, usando variables del sistema",
			"file", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("leer archivo de entorno %s: %w", envFile, err)
	}

	absPath, _ := filepath.Abs(envFile)
	slog.Info("Archivo de entorno cargado", "file", absPath)
	return nil
}

// Validate fails loudly on anything that would make the server silently
// insecure: a weak JWT secret, a weak encryption key, or alerts enabled
// without mail credentials. Never degrade to plaintext storage.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Port < 1 || c.App.Port > 65535 {
		errs = append(errs, "puerto de aplicación inválido")
	}

	if c.Database.Host == "" {
		errs = append(errs, "DB_HOST es obligatorio")
	}
	if c.Database.Name == "" {
		errs = append(errs, "DB_NAME es obligatorio")
	}
	if c.Database.User == "" {
		errs = append(errs, "DB_USER es obligatorio")
	}
	if c.Database.Password == "" {
		errs = append(errs, "DB_PASSWORD es obligatorio")
	}

	if c.JWT.Secret == "" {
		errs = append(errs, "JWT_SECRET es obligatorio")
	}
	if len(c.JWT.Secret) < 32 {
		errs = append(errs, "JWT_SECRET debe tener al menos 32 caracteres")
	}

	if c.Crypto.EncryptionKey == "" {
		errs = append(errs, "ENCRYPTION_KEY es obligatorio")
	}
	if len(c.Crypto.EncryptionKey) < 32 {
		errs = append(errs, "ENCRYPTION_KEY debe tener al menos 32 caracteres")
	}

	if c.Alerts.Enabled {
		if c.Mail.Host == "" {
			errs = append(errs, "EMAIL_HOST es obligatorio cuando las alertas están activadas")
		}
		if c.Mail.Username == "" || c.Mail.Password == "" {
			errs = append(errs, "EMAIL_USER y EMAIL_PASS son obligatorios cuando las alertas están activadas")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errores de configuración: %s", strings.Join(errs, ", "))
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "prod"
}

// MailFrom returns the configured From address, falling back to the SMTP user.
func (c *Config) MailFrom() string {
	if c.Mail.From != "" {
		return c.Mail.From
	}
	return c.Mail.Username
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if defaultDuration, err := time.ParseDuration(defaultValue); err == nil {
		return defaultDuration
	}
	return 0
}
