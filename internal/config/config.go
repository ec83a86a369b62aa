package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Host           string
	Port           int
	AllowOrigins   []string
	LogLevel       string
	LogFile        string
	MaxUploadMB    int
	MatchThreshold float64
	BatchWorkers   int
	MigrationsDir  string
	Database       DatabaseConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	viper.SetDefault("HOST", "127.0.0.1")
	viper.SetDefault("PORT", 8082)
	viper.SetDefault("ALLOW_ORIGINS", []string{"*"})
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "logs/channel-matcher.log")
	viper.SetDefault("MAX_UPLOAD_MB", 64)
	viper.SetDefault("MATCH_THRESHOLD", 0.5)
	viper.SetDefault("BATCH_WORKERS", 8)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "channel_matcher")
	viper.SetDefault("DB_SSLMODE", "disable")

	viper.AutomaticEnv()

	return Config{
		Host:           viper.GetString("HOST"),
		Port:           viper.GetInt("PORT"),
		AllowOrigins:   viper.GetStringSlice("ALLOW_ORIGINS"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
		LogFile:        viper.GetString("LOG_FILE"),
		MaxUploadMB:    viper.GetInt("MAX_UPLOAD_MB"),
		MatchThreshold: viper.GetFloat64("MATCH_THRESHOLD"),
		BatchWorkers:   viper.GetInt("BATCH_WORKERS"),
		MigrationsDir:  viper.GetString("MIGRATIONS_DIR"),
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }
