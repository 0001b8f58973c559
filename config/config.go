// Package config reads the bot settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/aaronson2012/JAKOBOT/bot"
	"github.com/aaronson2012/JAKOBOT/bot/weather"
)

var logger = bot.GetModuleLogger("config")

const (
	PlatformDiscord  = "discord"
	PlatformTelegram = "telegram"
)

type Config struct {
	Token          string        `env:"BOT_TOKEN" validate:"required"`
	Platform       string        `env:"BOT_PLATFORM" envDefault:"discord" validate:"oneof=discord telegram"`
	GuildID        string        `env:"BOT_GUILD_ID"`
	Debug          bool          `env:"BOT_DEBUG"`
	OpsAddr        string        `env:"BOT_OPS_ADDR"`
	HandlerTimeout time.Duration `env:"BOT_HANDLER_TIMEOUT" envDefault:"10s" validate:"gt=0"`

	// read on its own by weather.FromEnv, a gap there only disables the feature
	Weather weather.Config `env:"-" validate:"-"`
}

var validate = validator.New()

// Load reads envFile into the process environment, then parses it. An empty
// envFile means ".env" when present.
func Load(envFile string) (*Config, error) {
	if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Weather = weather.FromEnv()
	if cfg.Weather.Err != nil {
		logger.Warnf("weather settings ignored: %v", cfg.Weather.Err)
	}
	return cfg, nil
}

func loadDotEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		return nil
	}
	err := godotenv.Load()
	switch {
	case err == nil:
		logger.Info("loaded .env")
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("no .env file found")
	default:
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
