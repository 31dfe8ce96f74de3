package config

import "os"

// parseEnv overlays secrets and deployment switches that are usually
// injected by the runtime rather than written to a file.
//
//	JWT_SECRET      session signing key
//	DATABASE_DSN    PostgreSQL DSN
//	SMTP_PASSWORD   SMTP password
//	APP_ENV         "production" turns on Production
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("JWT_SECRET"); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SMTP_PASSWORD"); ok && v != "" {
		config.SMTPPassword = v
	}
	if v, ok := os.LookupEnv("APP_ENV"); ok {
		config.Production = v == "production"
	}
}
