package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Storage
	SQLitePath string `mapstructure:"SQLITE_DB_PATH"`

	// Redis (totals cache + async job queue)
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`

	// Business
	Timezone          string `mapstructure:"TIMEZONE"`
	ExportStoragePath string `mapstructure:"EXPORT_STORAGE_PATH"`

	// Initial admin — consumed only by the first-boot seeder
	InitialAdminUser    string `mapstructure:"INITIAL_ADMIN_USER"`
	InitialAdminPass    string `mapstructure:"INITIAL_ADMIN_PASS"`
	InitialAdminName    string `mapstructure:"INITIAL_ADMIN_NAME"`
	InitialAdminSurname string `mapstructure:"INITIAL_ADMIN_SURNAME"`
	InitialAdminBranch  string `mapstructure:"INITIAL_ADMIN_BRANCH"`
	InitialAdminRole    string `mapstructure:"INITIAL_ADMIN_ROLE"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 2)
	viper.SetDefault("SQLITE_DB_PATH", "data/cashdesk.sqlite")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("JWT_SECRET", "cashdesk-dev-secret-change-me")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 12)
	viper.SetDefault("TIMEZONE", "America/Argentina/Buenos_Aires")
	viper.SetDefault("EXPORT_STORAGE_PATH", "/tmp/cashdesk/exports")
	viper.SetDefault("INITIAL_ADMIN_USER", "admin")
	viper.SetDefault("INITIAL_ADMIN_PASS", "Admin1234!")
	viper.SetDefault("INITIAL_ADMIN_NAME", "Admin")
	viper.SetDefault("INITIAL_ADMIN_SURNAME", "Inicial")
	viper.SetDefault("INITIAL_ADMIN_BRANCH", "01")
	viper.SetDefault("INITIAL_ADMIN_ROLE", "admin")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
