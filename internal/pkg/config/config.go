package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Holds all the configuration fields for the content store service.
type Config struct {
	// Basic server settings
	ServerPort string `mapstructure:"SERVER_PORT"`

	// Content store
	DataDir string `mapstructure:"DATA_DIR"`
	TTLDays int    `mapstructure:"TTL_DAYS"`

	// Ingest pipeline
	QueueCapacity        int `mapstructure:"QUEUE_CAPACITY"`
	NumWorkers           int `mapstructure:"NUM_WORKERS"`
	SpamBlockThreshold   int `mapstructure:"SPAM_BLOCK_THRESHOLD"`
	CleanupIntervalHours int `mapstructure:"CLEANUP_INTERVAL_HOURS"`

	// Optional shared dedup index
	RedisEnabled  bool   `mapstructure:"REDIS_ENABLED"`
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// Initializes Viper and unmarshals config into our Config struct.
// It can read from environment variables, config files, etc.
func LoadConfig() (*Config, error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("TTL_DAYS", 60)
	viper.SetDefault("QUEUE_CAPACITY", 1000)
	viper.SetDefault("NUM_WORKERS", 4)
	viper.SetDefault("SPAM_BLOCK_THRESHOLD", 10)
	viper.SetDefault("CLEANUP_INTERVAL_HOURS", 24)

	// Redis defaults
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("LOG_LEVEL", "info")

	// Read environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
