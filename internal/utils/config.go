package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the runtime configuration of the storefront server. Every field
// is read from a STOREFRONT_* environment variable.
type Config struct {
	Addr             string        `env:"ADDR"               envDefault:":3000"`
	LogLevel         string        `env:"LOG_LEVEL"          envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT"         envDefault:"text"`
	LogFile          string        `env:"LOG_FILE"`
	SeedFile         string        `env:"SEED_FILE"`
	HashPasswords    bool          `env:"HASH_PASSWORDS"     envDefault:"false"`
	AllowAdminSignup bool          `env:"ALLOW_ADMIN_SIGNUP" envDefault:"true"`
	RateLimitRPS     float64       `env:"RATE_LIMIT_RPS"     envDefault:"0"`
	RateLimitBurst   int           `env:"RATE_LIMIT_BURST"   envDefault:"20"`
	AllowedOrigins   []string      `env:"ALLOWED_ORIGINS"    envSeparator:","`
	TLSCertFile      string        `env:"TLS_CERT_FILE"`
	TLSKeyFile       string        `env:"TLS_KEY_FILE"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT"   envDefault:"10s"`
}

const envPrefix = "STOREFRONT_"

// LoadConfig reads an optional .env file from the project root and then
// parses the environment.
func LoadConfig() (Config, error) {
	dotenv := filepath.Join(GetProjectRoot(), ".env")
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}
	return ParseConfig(nil)
}

// ParseConfig parses configuration from environ, or from the process
// environment when environ is nil.
func ParseConfig(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: envPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// TLSEnabled reports whether both halves of a key pair are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// GetProjectRoot returns the nearest ancestor of the working directory that
// holds a go.mod, or "." when there is none.
func GetProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "."
}
