// Package config loads application configuration from environment
// variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration.  Each field corresponds to
// an environment variable.
type Config struct {
	Env          string // application environment (dev/test/prod)
	Port         string // HTTP port to listen on
	Store        string // storage backend: "mysql" or "memory"
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host
	DBPort       string // database port
	DBName       string // database name
	JWTSecret    string // secret used to sign access tokens
	AdminAPIKey  string // X-API-KEY value gating venue creation
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
}

// Load reads configuration from the environment.  Missing required
// variables are fatal.  Database variables are only required for the
// mysql store.
func Load() Config {
	cfg := Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         must("APP_PORT"),
		Store:        envStr("STORE", "mysql"),
		JWTSecret:    must("JWT_SECRET"),
		AdminAPIKey:  must("ADMIN_API_KEY"),
		AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 1440),
		BcryptCost:   envInt("BCRYPT_COST", 12),
	}
	if cfg.Store == "mysql" {
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS")
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}
	return cfg
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
