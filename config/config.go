package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Cache     CacheConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port            string
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration
}

type DBConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	SSLMode       string
	TimeZone      string
	MaxRetries    int
	MaxRetryDelay time.Duration
	AutoMigrate   bool
}

// CacheConfig selects and tunes the doctor read cache.
// Driver is either "memory" (default) or "redis".
type CacheConfig struct {
	Driver          string
	MaxEntries      int
	SlidingTTL      time.Duration
	AbsoluteTTL     time.Duration
	CleanupInterval time.Duration
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

// RateLimitConfig limits requests per client IP. Requests <= 0 disables the limiter.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "doctors")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_RETRIES", 5)
	v.SetDefault("DB_MAX_RETRY_DELAY", "30s")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("CACHE_DRIVER", CacheDriverMemory)
	v.SetDefault("CACHE_MAX_ENTRIES", 1024)
	v.SetDefault("CACHE_SLIDING_TTL", "5m")
	v.SetDefault("CACHE_ABSOLUTE_TTL", "10m")
	v.SetDefault("CACHE_CLEANUP_INTERVAL", "1m")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "doctor-api:")

	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "1s")
}

// LoadConfig reads .env (if present) and the process environment.
// Environment variables win over the file.
func LoadConfig() (*Config, error) {
	return load(viper.New(), ".env")
}

func load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)
	v.SetConfigFile(file)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:            v.GetString("APP_PORT"),
			Env:             v.GetString("APP_ENV"),
			LogLevel:        v.GetString("LOG_LEVEL"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		DB: DBConfig{
			Host:          v.GetString("DB_HOST"),
			Port:          v.GetString("DB_PORT"),
			User:          v.GetString("DB_USER"),
			Password:      v.GetString("DB_PASSWORD"),
			Name:          v.GetString("DB_NAME"),
			SSLMode:       v.GetString("DB_SSLMODE"),
			TimeZone:      v.GetString("DB_TIMEZONE"),
			MaxRetries:    v.GetInt("DB_MAX_RETRIES"),
			MaxRetryDelay: v.GetDuration("DB_MAX_RETRY_DELAY"),
			AutoMigrate:   v.GetBool("DB_AUTO_MIGRATE"),
		},
		Cache: CacheConfig{
			Driver:          v.GetString("CACHE_DRIVER"),
			MaxEntries:      v.GetInt("CACHE_MAX_ENTRIES"),
			SlidingTTL:      v.GetDuration("CACHE_SLIDING_TTL"),
			AbsoluteTTL:     v.GetDuration("CACHE_ABSOLUTE_TTL"),
			CleanupInterval: v.GetDuration("CACHE_CLEANUP_INTERVAL"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetString("REDIS_PORT"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   v.GetDuration("RATE_LIMIT_WINDOW"),
		},
	}

	if config.Cache.Driver != CacheDriverMemory && config.Cache.Driver != CacheDriverRedis {
		return nil, errors.New("CACHE_DRIVER must be one of: memory, redis")
	}

	return config, nil
}
