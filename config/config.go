package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	// URL selects the backend by scheme: mongodb:// or postgres://.
	URL string
	// Name is the Mongo database used when URL names none.
	Name string
}

type AppConfig struct {
	Environment string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			URL:  getEnv("DATABASE_URL", os.Getenv("MONGO_URI")),
			Name: getEnv("DB_NAME", "issuetracker"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL (or MONGO_URI) is required")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
