package config

import (
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort       string   `env:"SERVER_PORT" envDefault:"8080"`
	DBDriver         string   `env:"DB_DRIVER" envDefault:"mysql"`
	SQLitePath       string   `env:"SQLITE_PATH" envDefault:"noticeboard.db"`
	MySQLDSN         string   `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/petshop?charset=utf8mb4&parseTime=True&loc=Local"`
	JWTSecret        string   `env:"JWT_SECRET" envDefault:"change-me"`
	SwaggerHost      string   `env:"SWAGGER_HOST"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
	DBLogLevel       string   `env:"DB_LOG_LEVEL" envDefault:"warn"`
	DBMaxOpenConns   int      `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBMaxIdleConns   int      `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	AutoMigrate      bool     `env:"AUTO_MIGRATE" envDefault:"false"`
}

// Load builds Config from an optional .env file and the environment.
// Variables already present in the environment win over the .env file.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// Parse reads Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.SwaggerHost = strings.TrimSpace(cfg.SwaggerHost)
	return &cfg, nil
}
