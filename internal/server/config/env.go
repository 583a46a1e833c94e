package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays values from environment variables. Unset, empty or
// unparsable variables leave the current value untouched.
//
//	HTTP_ADDRESS        bind address; PORT is accepted as a shorthand for ":<PORT>"
//	DATABASE_DSN        PostgreSQL DSN
//	JWT_SECRET          token signing key
//	JWT_ISSUER          token issuer
//	TOKEN_TTL           token lifetime (Go duration)
//	REQUEST_TIMEOUT     per-request timeout (Go duration)
//	DB_MAX_OPEN_CONNS   pool size
//	BCRYPT_COST         bcrypt work factor
//	LOG_LEVEL           debug|info|warn|error
//	ALLOWED_ORIGINS     comma separated CORS origins
func parseEnv(cfg *Config) {
	if port := getEnv("PORT", ""); port != "" {
		cfg.EndpointAddrHTTP = ":" + port
	}
	cfg.EndpointAddrHTTP = getEnv("HTTP_ADDRESS", cfg.EndpointAddrHTTP)
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.SecretKey = getEnv("JWT_SECRET", cfg.SecretKey)
	cfg.TokenIssuer = getEnv("JWT_ISSUER", cfg.TokenIssuer)
	cfg.TokenValidityDuration = getDurationEnv("TOKEN_TTL", cfg.TokenValidityDuration)
	cfg.RequestTimeout = getDurationEnv("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.MaxOpenConns = getIntEnv("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns)
	cfg.BcryptCost = getIntEnv("BCRYPT_COST", cfg.BcryptCost)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	if origins := splitAndTrim(getEnv("ALLOWED_ORIGINS", "")); len(origins) > 0 {
		cfg.AllowedOrigins = origins
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
