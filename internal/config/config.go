package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yukikurage/knowledge-share-api/internal/constants"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Supported upload storage backends
const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// DefaultSessionSecret is only acceptable outside release mode.
const DefaultSessionSecret = "default-secret-key-change-me"

type Config struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"gin_mode"`

	DBDriver   string `yaml:"db_driver"`
	DBPath     string `yaml:"db_path"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`

	SessionSecret string `yaml:"session_secret"`
	SessionSecure bool   `yaml:"session_secure"`
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"redis_password"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	StorageBackend string `yaml:"storage_backend"`
	UploadDir      string `yaml:"upload_dir"`
	MinioEndpoint  string `yaml:"minio_endpoint"`
	MinioAccessKey string `yaml:"minio_access_key"`
	MinioSecretKey string `yaml:"minio_secret_key"`
	MinioBucket    string `yaml:"minio_bucket"`
	MinioRegion    string `yaml:"minio_region"`
	MinioUseSSL    bool   `yaml:"minio_use_ssl"`

	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
	LogPretty bool   `yaml:"log_pretty"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Port:               "5000",
		GinMode:            "debug",
		DBDriver:           DriverSQLite,
		DBPath:             "database.db",
		DBHost:             "localhost",
		DBPort:             "3306",
		DBUser:             "knowledge",
		DBPassword:         "knowledge",
		DBName:             "knowledge_share",
		SessionSecret:      DefaultSessionSecret,
		RedisPort:          "6379",
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		StorageBackend:     StorageLocal,
		UploadDir:          constants.DefaultUploadDir,
		MinioBucket:        "knowledge-uploads",
		MinioRegion:        "us-east-1",
		LogLevel:           "info",
		LogPretty:          true,
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order. An empty path falls back to ./config.yaml when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// .env is optional
	_ = godotenv.Load()

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)

	cfg.DBDriver = strings.ToLower(getEnv("DB_DRIVER", cfg.DBDriver))
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)

	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)
	cfg.SessionSecure = getEnvBool("SESSION_SECURE", cfg.SessionSecure)
	cfg.RedisHost = getEnv("REDIS_HOST", cfg.RedisHost)
	cfg.RedisPort = getEnv("REDIS_PORT", cfg.RedisPort)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = splitList(origins)
	}

	cfg.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", cfg.StorageBackend))
	cfg.UploadDir = getEnv("UPLOAD_DIR", cfg.UploadDir)
	cfg.MinioEndpoint = getEnv("MINIO_ENDPOINT", cfg.MinioEndpoint)
	cfg.MinioAccessKey = getEnv("MINIO_ACCESS_KEY", cfg.MinioAccessKey)
	cfg.MinioSecretKey = getEnv("MINIO_SECRET_KEY", cfg.MinioSecretKey)
	cfg.MinioBucket = getEnv("MINIO_BUCKET", cfg.MinioBucket)
	cfg.MinioRegion = getEnv("MINIO_REGION", cfg.MinioRegion)
	cfg.MinioUseSSL = getEnvBool("MINIO_USE_SSL", cfg.MinioUseSSL)

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.LogPretty = getEnvBool("LOG_PRETTY", cfg.LogPretty)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// UseRedisSessions reports whether sessions are kept in Redis instead of the cookie.
func (c *Config) UseRedisSessions() bool {
	return c.RedisHost != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
