package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Auth      AuthConfig      `mapstructure:"auth"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Live      LiveConfig      `mapstructure:"live"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Runtime flags (set from command-line arguments, not the config file).
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`

	// Guards the sections the file watcher may swap at runtime.
	reloadMu sync.RWMutex
}

// AuthSettings returns the access-code section, safe to call while a
// reload is in flight.
func (c *Config) AuthSettings() AuthConfig {
	c.reloadMu.RLock()
	defer c.reloadMu.RUnlock()
	return c.Auth
}

// GeminiSettings returns the generative API section, safe to call while
// a reload is in flight.
func (c *Config) GeminiSettings() GeminiConfig {
	c.reloadMu.RLock()
	defer c.reloadMu.RUnlock()
	return c.Gemini
}

// LiveSettings returns the voice bridge section, safe to call while a
// reload is in flight.
func (c *Config) LiveSettings() LiveConfig {
	c.reloadMu.RLock()
	defer c.reloadMu.RUnlock()
	return c.Live
}

// ApplyReloadable swaps in the hot-reloadable sections of a freshly
// loaded config. Server, database and redis settings need a restart and
// are left alone.
func (c *Config) ApplyReloadable(fresh *Config) {
	c.reloadMu.Lock()
	c.Auth = fresh.Auth
	c.Gemini = fresh.Gemini
	c.Live = fresh.Live
	c.reloadMu.Unlock()
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

// AuthConfig carries the single shared access code of the classroom. In
// release mode the code must be supplied as a bcrypt hash.
type AuthConfig struct {
	AccessCode string `mapstructure:"access_code"`
}

type GeminiConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	LiveURL    string `mapstructure:"live_url"`
	APIKey     string `mapstructure:"api_key"`
	ProModel   string `mapstructure:"pro_model"`
	FlashModel string `mapstructure:"flash_model"`
	TTSModel   string `mapstructure:"tts_model"`
	ImageModel string `mapstructure:"image_model"`
	LiveModel  string `mapstructure:"live_model"`
	Voice      string `mapstructure:"voice"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
}

// LiveConfig bounds the realtime voice bridge.
type LiveConfig struct {
	MaxSessions    int           `mapstructure:"max_sessions"`
	FrameLimit     int           `mapstructure:"frame_limit"` // frames per second per client
	FrameBurst     int           `mapstructure:"frame_burst"`
	MaxFrameBytes  int64         `mapstructure:"max_frame_bytes"`
	SessionTimeout time.Duration `mapstructure:"session_timeout_minutes"`
	SystemPrompt   string        `mapstructure:"system_prompt"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("LINGUIST")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// JWT / access code
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("auth.access_code", "ACCESS_CODE")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Gemini
	viper.BindEnv("gemini.base_url", "GEMINI_BASE_URL")
	viper.BindEnv("gemini.live_url", "GEMINI_LIVE_URL")
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.Live.SessionTimeout = cfg.Live.SessionTimeout * time.Minute

	if cfg.Server.Mode == "release" {
		if len(cfg.JWT.Secret) < 32 {
			return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
		}
		if !strings.HasPrefix(cfg.Auth.AccessCode, "$2a$") && !strings.HasPrefix(cfg.Auth.AccessCode, "$2b$") {
			return nil, fmt.Errorf("auth.access_code must be a bcrypt hash in release mode")
		}
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}
