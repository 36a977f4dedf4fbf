package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the service configuration.
type Config struct {
	Port            string
	DatabaseURL     string
	RedisURL        string
	KafkaBrokers    []string
	CacheTTL        time.Duration
	CacheSize       int
	PricingFile     string
	ShutdownTimeout time.Duration

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
}

// Load reads defaults, then the optional config file, then the environment.
// An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("PORT", "8000")
	v.SetDefault("CACHE_TTL", "45s")
	v.SetDefault("CACHE_SIZE", 4096)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	for _, k := range []string{"DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS", "PRICING_FILE"} {
		v.SetDefault(k, "")
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Config{
		Port:              strings.TrimSpace(v.GetString("PORT")),
		DatabaseURL:       strings.TrimSpace(v.GetString("DATABASE_URL")),
		RedisURL:          strings.TrimSpace(v.GetString("REDIS_URL")),
		KafkaBrokers:      splitList(v.GetString("KAFKA_BROKERS")),
		CacheTTL:          v.GetDuration("CACHE_TTL"),
		CacheSize:         v.GetInt("CACHE_SIZE"),
		PricingFile:       strings.TrimSpace(v.GetString("PRICING_FILE")),
		ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
		DBMaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
	}
	if cfg.Port == "" {
		return Config{}, errors.New("PORT must not be empty")
	}
	if cfg.CacheTTL < 0 {
		return Config{}, errors.New("CACHE_TTL must not be negative")
	}
	return cfg, nil
}

// splitList accepts "a,b" or "a b".
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil
	}
	return fields
}
