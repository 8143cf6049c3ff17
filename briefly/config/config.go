package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DBBackend selects the storage engine the gateway opens at startup.
// Resolved once here; business logic never inspects the environment.
type DBBackend string

const (
	BackendPostgres DBBackend = "postgres"
	BackendSQLite   DBBackend = "sqlite"
)

type DBConfig struct {
	Backend  DBBackend `yaml:"backend"`
	Host     string    `yaml:"host"`
	Port     string    `yaml:"port"`
	User     string    `yaml:"user"`
	Password string    `yaml:"password"`
	Name     string    `yaml:"name"`
	// Path is the database file for the sqlite backend.
	Path string `yaml:"path"`
}

type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxRedirects int           `yaml:"max_redirects"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	// Rendered switches to the headless-browser fetcher for JS-heavy pages.
	Rendered bool `yaml:"rendered"`
}

type GroqConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type ArchiveConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
}

type Config struct {
	Addr      string        `yaml:"addr"`
	JWTSecret string        `yaml:"jwt_secret"`
	DB        DBConfig      `yaml:"db"`
	Fetch     FetchConfig   `yaml:"fetch"`
	Groq      GroqConfig    `yaml:"groq"`
	Archive   ArchiveConfig `yaml:"archive"`
	// Extractor picks the content-extraction strategy: dom, readability, lenient.
	Extractor string `yaml:"extractor"`
}

// LoadConfig resolves the full configuration once at process start.
// Precedence: optional YAML file (BRIEFLY_CONFIG) over environment
// variables over defaults. A .env file is honoured if present. A missing JWT secret
// or an unreadable config file is a startup error, not a silent default:
// an empty secret would verify any token HMAC-signed with the empty key.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		// No .env file; system environment only.
	}

	cfg := Config{
		Addr:      getEnv("ADDR", ":8000"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		DB: DBConfig{
			Backend:  DBBackend(getEnv("DB_BACKEND", string(BackendPostgres))),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "briefly"),
			Path:     getEnv("DB_PATH", "briefly.db"),
		},
		Fetch: FetchConfig{
			Timeout:      15 * time.Second,
			MaxRedirects: 5,
			MaxBodyBytes: 10 << 20,
			Rendered:     getEnv("FETCH_RENDERED", "") == "true",
		},
		Groq: GroqConfig{
			APIKey: getEnv("GROQ_API_KEY", ""),
			Model:  getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		},
		Archive: ArchiveConfig{
			Enabled:   getEnv("ARCHIVE_ENABLED", "") == "true",
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "briefly-snapshots"),
		},
		Extractor: getEnv("EXTRACTOR", "dom"),
	}

	if path := os.Getenv("BRIEFLY_CONFIG"); path != "" {
		if err := applyYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}

func applyYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
