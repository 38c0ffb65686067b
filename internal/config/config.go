package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/landlordpro/backend/internal/utils"
)

const AppName = "landlordpro-backend"

type Config struct {
	AppName string
	AppPort string
	AppUrl  string
	DBUrl   string

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey

	UploadDir string

	SendgridAPIKey     string
	SendgridFromEmail  string
	SendgridSandbox    bool
	EmailNotifications bool

	SeedAdminEmail    string
	SeedAdminPassword string

	ExpirySchedule   string
	ReminderSchedule string
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func LoadConfig() *Config {
	// A missing .env is fine in production; variables come from the
	// environment there.
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file loaded: ", err)
	}

	cfg := &Config{
		AppName:          AppName,
		AppPort:          mustEnv("APP_PORT"),
		AppUrl:           mustEnv("APP_URL"),
		DBUrl:            mustEnv("DB_URL"),
		UploadDir:        envOr("UPLOAD_DIR", "./uploads"),
		ExpirySchedule:   envOr("LEASE_EXPIRY_SCHEDULE", "0 1 * * *"),
		ReminderSchedule: envOr("PAYMENT_REMINDER_SCHEDULE", "0 8 * * *"),
	}

	privB64 := mustEnv("RSA_PRIVATE_KEY_BASE64")
	privPEM, _ := base64.StdEncoding.DecodeString(privB64)
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}
	cfg.RSAPrivateKey = privKey

	pubB64 := mustEnv("RSA_PUBLIC_KEY_BASE64")
	pubPEM, _ := base64.StdEncoding.DecodeString(pubB64)
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}
	cfg.RSAPublicKey = pubKey

	cfg.SendgridAPIKey = os.Getenv("SENDGRID_API_KEY")
	cfg.SendgridFromEmail = envOr("SENDGRID_FROM_EMAIL", "noreply@landlordpro.app")
	cfg.SendgridSandbox = os.Getenv("SENDGRID_SANDBOX_MODE") == "true"
	cfg.EmailNotifications = cfg.SendgridAPIKey != ""

	cfg.SeedAdminEmail = envOr("SEED_ADMIN_EMAIL", "admin@landlordpro.app")
	cfg.SeedAdminPassword = os.Getenv("SEED_ADMIN_PASSWORD")

	return cfg
}
