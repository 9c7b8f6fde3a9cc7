package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envProduction = "production"

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	Email    EmailConfig
	OTP      OTPConfig
}

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	Debug       bool
	LogPath     string
	ExposeOTP   bool
	DefaultRole string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	Issuer      string
	ExpiryHours int
}

type SecurityConfig struct {
	BcryptCost      int
	RecoveryMinutes int
}

type EmailConfig struct {
	Driver         string
	TimeoutSeconds int
	From           string
	FromName       string
	SendGridAPIKey string
	Host           string
	Port           int
	User           string
	Password       string
}

type OTPConfig struct {
	ExpiryMinutes int
	Length        int
}

// TokenLifetime is the bearer token validity window.
func (c JWTConfig) TokenLifetime() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

func (c OTPConfig) TTL() time.Duration {
	return time.Duration(c.ExpiryMinutes) * time.Minute
}

func (c SecurityConfig) RecoveryTTL() time.Duration {
	return time.Duration(c.RecoveryMinutes) * time.Minute
}

func (c EmailConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, envProduction)
}

// LoadConfig reads .env when present, then lets the process environment override it.
func LoadConfig() (*Config, error) {
	return loadConfig(".env")
}

func loadConfig(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "account-service")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("EXPOSE_OTP", false)
	v.SetDefault("DEFAULT_ROLE", "customer")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ISSUER", "account-service")
	v.SetDefault("JWT_EXPIRY_HOURS", 365*24)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("RECOVERY_TICKET_MINUTES", 10)
	v.SetDefault("OTP_EXPIRY_MINUTES", 60)
	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("MAIL_DRIVER", "log")
	v.SetDefault("MAIL_TIMEOUT_SECONDS", 10)
	v.SetDefault("SMTP_PORT", 587)

	if file != "" {
		if _, err := os.Stat(file); err == nil {
			v.SetConfigFile(file)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", file, err)
			}
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Env:         v.GetString("APP_ENV"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			ExposeOTP:   v.GetBool("EXPOSE_OTP"),
			DefaultRole: v.GetString("DEFAULT_ROLE"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			Issuer:      v.GetString("JWT_ISSUER"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Security: SecurityConfig{
			BcryptCost:      v.GetInt("BCRYPT_COST"),
			RecoveryMinutes: v.GetInt("RECOVERY_TICKET_MINUTES"),
		},
		Email: EmailConfig{
			Driver:         strings.ToLower(v.GetString("MAIL_DRIVER")),
			TimeoutSeconds: v.GetInt("MAIL_TIMEOUT_SECONDS"),
			From:           v.GetString("EMAIL_FROM"),
			FromName:       v.GetString("EMAIL_FROM_NAME"),
			SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
			Host:           v.GetString("SMTP_HOST"),
			Port:           v.GetInt("SMTP_PORT"),
			User:           v.GetString("SMTP_USER"),
			Password:       v.GetString("SMTP_PASS"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: v.GetInt("OTP_EXPIRY_MINUTES"),
			Length:        v.GetInt("OTP_LENGTH"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects configurations the service must not start with.
func (c *Config) Validate() error {
	var errs []error

	if len(c.JWT.Secret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 bytes"))
	}
	if c.JWT.ExpiryHours <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY_HOURS must be positive"))
	}
	if c.OTP.Length < 4 || c.OTP.Length > 10 {
		errs = append(errs, errors.New("OTP_LENGTH must be between 4 and 10"))
	}
	if c.OTP.ExpiryMinutes <= 0 {
		errs = append(errs, errors.New("OTP_EXPIRY_MINUTES must be positive"))
	}
	if c.Security.RecoveryMinutes <= 0 {
		errs = append(errs, errors.New("RECOVERY_TICKET_MINUTES must be positive"))
	}
	if c.Email.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("MAIL_TIMEOUT_SECONDS must be positive"))
	}
	if c.App.ExposeOTP && c.App.IsProduction() {
		errs = append(errs, errors.New("EXPOSE_OTP cannot be enabled in production"))
	}

	switch c.Email.Driver {
	case "log":
	case "sendgrid":
		if c.Email.SendGridAPIKey == "" || c.Email.From == "" {
			errs = append(errs, errors.New("sendgrid driver requires SENDGRID_API_KEY and EMAIL_FROM"))
		}
	case "smtp":
		if c.Email.Host == "" || c.Email.From == "" {
			errs = append(errs, errors.New("smtp driver requires SMTP_HOST and EMAIL_FROM"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_DRIVER %q", c.Email.Driver))
	}

	if c.App.IsProduction() && c.Email.Driver == "log" {
		errs = append(errs, errors.New("log mail driver is not allowed in production"))
	}

	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
