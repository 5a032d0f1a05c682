package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment. When envFile is non-empty it
// is loaded first; a missing file is not an error since container deployments
// inject the environment directly.
func Load(envFile string) (*App, error) {
	logger := slog.Default()
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		logger.Warn("no env file found, using system environment", "path", envFile)
	} else {
		logger.Info("environment loaded from file", "path", envFile)
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("config loaded",
		"env", cfg.Env,
		"server_port", cfg.Server.Port,
		"db", maskValue(cfg.DB.Url),
		"amqp", maskValue(cfg.AMQP.Url),
		"queue", cfg.AMQP.Queue,
		"account_service", cfg.AccountService.Url,
		"customer_service", cfg.CustomerService.Url,
		"daily_ceiling", cfg.Limits.DailyCeiling,
	)
	return &cfg, nil
}

func maskValue(v string) string {
	if len(v) <= 6 {
		return "****"
	}
	return v[:2] + "****" + v[len(v)-4:]
}
