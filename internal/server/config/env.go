package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables, loading a
// local .env file first if one exists. Absence of .env is not an error.
//
// Recognized variables:
//
//	HTTP_ADDRESS      bind address (e.g. ":8080")
//	DATABASE_DSN      PostgreSQL DSN
//	JWT_SECRET        identity provider HMAC secret
//	CORS_ORIGINS      comma-separated allowed origins
//	AUTO_MIGRATE      "true"/"false"
//	S3_ROOT_USER      S3 credentials
//	S3_ROOT_PASSWORD
//	S3_BUCKET
//	S3_REGION
//	S3_BASE_ENDPOINT
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(dst *string, name string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	setString(&config.EndpointAddrHTTP, "HTTP_ADDRESS")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.JWTSecret, "JWT_SECRET")
	setString(&config.CORSOrigins, "CORS_ORIGINS")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")

	if v, ok := os.LookupEnv("AUTO_MIGRATE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.AutoMigrate = b
		}
	}
}
