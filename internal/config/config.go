package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const devSecretKey = "dev-secret-change-in-production"

type Config struct {
	Port           string
	Env            string
	BaseURL        string
	DatabaseDriver string
	DatabaseDSN    string

	// SecretKey signs password-reset tokens. Rotating it invalidates
	// every outstanding, not-yet-verified reset link.
	SecretKey        string
	ResetTokenMaxAge time.Duration

	SessionTTL time.Duration

	// VaultKey is the key material for supplier-vault encryption, kept
	// separate from SecretKey so the two rotate independently. Empty
	// means the vault is unconfigured.
	VaultKey string
}

func Load() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		BaseURL:          getEnv("APP_BASE_URL", "http://localhost:8080"),
		DatabaseDriver:   getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "dropdesk.db"),
		SecretKey:        getEnv("SECRET_KEY", devSecretKey),
		ResetTokenMaxAge: getSeconds("RESET_TOKEN_MAX_AGE_SECONDS", 3600),
		SessionTTL:       24 * time.Hour,
		VaultKey:         os.Getenv("VAULT_ENCRYPTION_KEY"),
	}

	if cfg.Env == "production" && cfg.SecretKey == devSecretKey {
		slog.Error("SECRET_KEY must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getSeconds(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		slog.Warn("ignoring invalid duration value", "key", key, "value", v)
	}
	return time.Duration(fallback) * time.Second
}
