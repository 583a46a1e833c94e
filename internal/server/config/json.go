package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fittrack/internal/flagx"
	"github.com/dmitrijs2005/fittrack/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations use
// timex.Duration so both "30s" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenIssuer           string         `json:"token_issuer"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	RequestTimeout        timex.Duration `json:"request_timeout"`
	MaxOpenConns          int            `json:"max_open_conns"`
	BcryptCost            int            `json:"bcrypt_cost"`
	LogLevel              string         `json:"log_level"`
	AllowedOrigins        []string       `json:"allowed_origins"`
}

// parseJson overlays values from the file named by -c/-config (or CONFIG).
// Only fields present with a non-zero value replace what is already set.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.TokenIssuer, c.TokenIssuer)
	setString(&config.LogLevel, c.LogLevel)
	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.RequestTimeout.Duration > 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.MaxOpenConns > 0 {
		config.MaxOpenConns = c.MaxOpenConns
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
