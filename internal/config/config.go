package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	ClientURL   string

	IdP     IdPConfig
	Geocode GeocodeConfig
	Storage StorageConfig
}

// IdPConfig holds everything needed to trust the external identity provider:
// the webhook signing secret for the event stream and the public key the
// provider signs session tokens with.
type IdPConfig struct {
	WebhookSecret string
	JWTPublicKey  string
	Issuer        string
}

type GeocodeConfig struct {
	MapToken string
	BaseURL  string
}

type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		ClientURL:   getEnv("CLIENT_URL", "http://localhost:5173"),

		IdP: IdPConfig{
			// Deliberately not required at startup: a missing webhook secret
			// is reported per-delivery so the provider does not retry-storm.
			WebhookSecret: getEnv("IDP_WEBHOOK_SIGNING_SECRET", ""),
			JWTPublicKey:  getEnvOrPanic("IDP_JWT_PUBLIC_KEY"),
			Issuer:        getEnv("IDP_ISSUER", ""),
		},

		Geocode: GeocodeConfig{
			MapToken: getEnv("MAP_TOKEN", ""),
			BaseURL:  getEnv("MAP_API_BASE_URL", "https://api.tomtom.com"),
		},

		Storage: StorageConfig{
			Endpoint:      getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:     getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:        getEnv("STORAGE_BUCKET", "gostays-uploads"),
			UseSSL:        getEnv("STORAGE_USE_SSL", "false") == "true",
			PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", ""),
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
