package inits

import (
	"errors"
	"fmt"
	"os"
	"user-directory/app/server/config"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

func Config() (*config.Config, error) {
	// 开发环境下可以使用 .env 文件
	if _, err := os.Stat(".env"); err == nil {
		if err = godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Security.TokenExpires <= 0 {
		return nil, errors.New("JWT_EXPIRES should be a positive duration")
	}
	if cfg.System.Port <= 0 || cfg.System.Port > 65535 {
		return nil, fmt.Errorf("PORT %d is out of range", cfg.System.Port)
	}

	return &cfg, nil
}
