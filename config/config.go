package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultJWTSecret is the placeholder secret used when none is configured.
const DefaultJWTSecret = "your_secret_key"

var ErrInsecureJWTSecret = errors.New("config: JWT_SECRET is unset or left at the default")

// Config holds the service settings.
type Config struct {
	Port        string        `yaml:"port"`
	MongoURI    string        `yaml:"mongo_uri"`
	MongoDB     string        `yaml:"mongo_db"`
	RedisURL    string        `yaml:"redis_url"`
	RedisPass   string        `yaml:"redis_password"`
	JWTSecret   string        `yaml:"jwt_secret"`
	BackendURL  string        `yaml:"backend_url"`
	PublicURL   string        `yaml:"public_url"`
	PDFFont     string        `yaml:"pdf_font"`
	PlanTTL     time.Duration `yaml:"plan_cache_ttl"`
	LogLevel    string        `yaml:"log_level"`
	Development bool          `yaml:"development"`
	RateLimit   RateConfig    `yaml:"rate_limit"`

	// EnvFileLoaded reports whether Load found a .env file.
	EnvFileLoaded bool `yaml:"-"`
}

// RateConfig configures the per-client limiter.
type RateConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Port:       ":8080",
		MongoURI:   "mongodb://localhost:27017",
		MongoDB:    "tripmind",
		RedisURL:   "localhost:6379",
		JWTSecret:  DefaultJWTSecret,
		BackendURL: "http://127.0.0.1:5000",
		PublicURL:  "http://localhost:3000",
		PlanTTL:    10 * time.Minute,
		LogLevel:   "info",
		RateLimit:  RateConfig{RPS: 5, Burst: 10},
	}
}

// Load reads .env (if present), then the YAML file named by TRIPMIND_CONFIG
// (if set), then environment overrides.
func Load() (*Config, error) {
	loaded := godotenv.Load() == nil

	cfg := Default()
	cfg.EnvFileLoaded = loaded
	if path := os.Getenv("TRIPMIND_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.Port = normalizePort(cfg.Port)
	return cfg, nil
}

// CheckJWTSecret fails when tokens would be signed with the placeholder
// secret outside development.
func (c *Config) CheckJWTSecret() error {
	if c.InsecureJWTSecret() && !c.Development {
		return ErrInsecureJWTSecret
	}
	return nil
}

// InsecureJWTSecret reports an empty or placeholder JWT secret.
func (c *Config) InsecureJWTSecret() bool {
	return c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.Port, "PORT")
	setString(&c.MongoURI, "MONGO_URI")
	setString(&c.MongoDB, "MONGO_DB")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.RedisPass, "REDIS_PASSWORD")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.BackendURL, "BACKEND_URL")
	setString(&c.PublicURL, "PUBLIC_URL")
	setString(&c.PDFFont, "PDF_FONT")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("PLAN_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PLAN_CACHE_TTL: %w", err)
		}
		c.PlanTTL = d
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimit.RPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
		c.RateLimit.Burst = n
	}
	if v := os.Getenv("DEVELOPMENT"); v != "" {
		c.Development = v == "1" || v == "true"
	}
	return nil
}

func normalizePort(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] != ':' {
		return ":" + port
	}
	return port
}
