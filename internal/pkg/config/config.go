package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Provider  ProviderConfig  `yaml:"provider"`
	Views     ViewConfig      `yaml:"views"`
	Auth      AuthConfig      `yaml:"auth"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port        string `yaml:"port"`
	Host        string `yaml:"host"`
	FrontendURL string `yaml:"frontend_url"`
	Locale      string `yaml:"locale"`
	// StoreDriver selects the persistence backend: "postgres" or "memory".
	StoreDriver      string `yaml:"store_driver"`
	RunAutoMigration bool   `yaml:"run_auto_migration"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	DBName       string `yaml:"dbname"`
	SSLMode      string `yaml:"sslmode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type WebhookConfig struct {
	Secret    string        `yaml:"secret"`
	Tolerance time.Duration `yaml:"tolerance"`
}

type ProviderConfig struct {
	APIURL           string        `yaml:"api_url"`
	TokenID          string        `yaml:"token_id"`
	TokenSecret      string        `yaml:"token_secret"`
	PlaybackBaseURL  string        `yaml:"playback_base_url"`
	ThumbnailBaseURL string        `yaml:"thumbnail_base_url"`
	Timeout          time.Duration `yaml:"timeout"`
}

type ViewConfig struct {
	DedupTTL time.Duration `yaml:"dedup_ttl"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type ArchiveConfig struct {
	// Driver is "none", "local" or "s3".
	Driver string `yaml:"driver"`
	Dir    string `yaml:"dir"`
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
	Prefix string `yaml:"prefix"`
}

type ReconcileConfig struct {
	Schedule    string        `yaml:"schedule"`
	MaxAge      time.Duration `yaml:"max_age"`
	Concurrency int           `yaml:"concurrency"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "3000",
			Host:        "localhost",
			FrontendURL: "http://localhost:3000",
			Locale:      "en",
			StoreDriver: "postgres",
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			DBName:       "vidhub",
			SSLMode:      "disable",
			MaxOpenConns: 10,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Webhook: WebhookConfig{
			Tolerance: 5 * time.Minute,
		},
		Provider: ProviderConfig{
			APIURL:           "https://api.mux.com",
			PlaybackBaseURL:  "https://stream.mux.com",
			ThumbnailBaseURL: "https://image.mux.com",
			Timeout:          10 * time.Second,
		},
		Views: ViewConfig{
			DedupTTL: 24 * time.Hour,
		},
		Archive: ArchiveConfig{
			Driver: "none",
			Dir:    "webhook_archive",
			Prefix: "webhooks",
		},
		Reconcile: ReconcileConfig{
			Schedule:    "@every 30s",
			MaxAge:      time.Hour,
			Concurrency: 4,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig resolves configuration from defaults, an optional YAML file named
// by CONFIG_FILE, then environment variables (a .env file is loaded first when
// present).
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(c *Config) {
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Server.FrontendURL = getEnv("FRONTEND_URL", c.Server.FrontendURL)
	c.Server.Locale = getEnv("APP_LOCALE", c.Server.Locale)
	c.Server.StoreDriver = getEnv("STORE_DRIVER", c.Server.StoreDriver)
	c.Server.RunAutoMigration = getEnvAsBool("RUN_AUTO_MIGRATION", c.Server.RunAutoMigration)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.DBName = getEnv("DB_NAME", c.Database.DBName)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.MaxOpenConns = int(getEnvAsInt64("DB_MAX_OPEN_CONNS", int64(c.Database.MaxOpenConns)))

	c.Redis.Host = getEnv("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = getEnv("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = int(getEnvAsInt64("REDIS_DB", int64(c.Redis.DB)))

	c.Webhook.Secret = getEnv("MUX_WEBHOOK_SECRET", c.Webhook.Secret)
	c.Webhook.Tolerance = getEnvAsDuration("MUX_WEBHOOK_TOLERANCE", c.Webhook.Tolerance)

	c.Provider.APIURL = getEnv("MUX_API_URL", c.Provider.APIURL)
	c.Provider.TokenID = getEnv("MUX_TOKEN_ID", c.Provider.TokenID)
	c.Provider.TokenSecret = getEnv("MUX_TOKEN_SECRET", c.Provider.TokenSecret)
	c.Provider.PlaybackBaseURL = getEnv("PLAYBACK_BASE_URL", c.Provider.PlaybackBaseURL)
	c.Provider.ThumbnailBaseURL = getEnv("THUMBNAIL_BASE_URL", c.Provider.ThumbnailBaseURL)
	c.Provider.Timeout = getEnvAsDuration("MUX_TIMEOUT", c.Provider.Timeout)

	c.Views.DedupTTL = getEnvAsDuration("VIEW_DEDUP_TTL", c.Views.DedupTTL)

	c.Auth.JWTSecret = getEnv("AUTH_JWT_SECRET", c.Auth.JWTSecret)

	c.Archive.Driver = getEnv("ARCHIVE_DRIVER", c.Archive.Driver)
	c.Archive.Dir = getEnv("ARCHIVE_DIR", c.Archive.Dir)
	c.Archive.Bucket = getEnv("S3_BUCKET", c.Archive.Bucket)
	c.Archive.Region = getEnv("S3_REGION", c.Archive.Region)
	c.Archive.Prefix = getEnv("ARCHIVE_PREFIX", c.Archive.Prefix)

	c.Reconcile.Schedule = getEnv("RECONCILE_SCHEDULE", c.Reconcile.Schedule)
	c.Reconcile.MaxAge = getEnvAsDuration("RECONCILE_MAX_AGE", c.Reconcile.MaxAge)
	c.Reconcile.Concurrency = int(getEnvAsInt64("RECONCILE_CONCURRENCY", int64(c.Reconcile.Concurrency)))

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("30m") or plain seconds ("1800").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
