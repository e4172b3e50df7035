package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAccessTTL       = "5m"
	defaultRefreshTTL      = "504h" // 21 days
	defaultActivateTTL     = "15m"
	defaultResetTTL        = "10m"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTExtraSecret  = "change-me-jwt-extra-secret"
	defaultSiteDomain      = "http://localhost:3000"
	defaultSecureCookies   = "true"
	defaultRefreshTokenKey = "refreshToken"
)

// Config is the explicit configuration struct passed into constructors at
// startup. All knobs come from the environment; a .env file is honored in
// local development.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	SiteDomain  string

	// JWTSecret signs access tokens; JWTExtraSecret signs emailed action
	// tokens (activation, password reset) so the two kinds can never be
	// used in each other's place.
	JWTSecret      string
	JWTExtraSecret string
	AccessTTL      time.Duration
	ActivateTTL    time.Duration
	ResetTTL       time.Duration

	RefreshTokenKey string
	RefreshTTL      time.Duration
	SecureCookies   bool

	SMTPHost    string
	SMTPPort    string
	SenderEmail string
	SenderPass  string

	GoogleClientID string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "dressup.db")
	cfg.SiteDomain = strings.TrimRight(getEnv("SITE_DOMAIN", defaultSiteDomain), "/")

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.JWTExtraSecret = strings.TrimSpace(getEnv("JWT_EXTRA_SECRET", defaultJWTExtraSecret))

	var err error
	if cfg.AccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultAccessTTL); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TTL", defaultRefreshTTL); err != nil {
		return nil, err
	}
	if cfg.ActivateTTL, err = parseDurationEnv("ACTIVATE_TOKEN_TTL", defaultActivateTTL); err != nil {
		return nil, err
	}
	if cfg.ResetTTL, err = parseDurationEnv("RESET_TOKEN_TTL", defaultResetTTL); err != nil {
		return nil, err
	}

	cfg.RefreshTokenKey = getEnv("REFRESH_TOKEN_KEY", defaultRefreshTokenKey)
	cfg.SecureCookies = parseBoolEnv("SECURE_COOKIES", defaultSecureCookies)

	cfg.SMTPHost = getEnv("SMTP_HOST", "smtp.gmail.com")
	cfg.SMTPPort = getEnv("SMTP_PORT", "587")
	cfg.SenderEmail = os.Getenv("SENDER_EMAIL")
	cfg.SenderPass = os.Getenv("SENDER_EMAIL_PASSWORD")

	cfg.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s secure_cookies=%t refresh_ttl=%s", cfg.AppEnv, cfg.SecureCookies, cfg.RefreshTTL)

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TTL must be > 0")
	}
	if cfg.JWTSecret == cfg.JWTExtraSecret {
		return fmt.Errorf("JWT_SECRET and JWT_EXTRA_SECRET must differ")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.JWTExtraSecret, defaultJWTExtraSecret) {
			return fmt.Errorf("in prod/release JWT_EXTRA_SECRET must be set and not default")
		}
		if !cfg.SecureCookies {
			return fmt.Errorf("in prod/release SECURE_COOKIES must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
