package initializer

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/finmesh/transaction-service/pkg/config"
)

// setupLogger builds the process-wide slog logger on top of charmbracelet's
// handler and installs it as the slog default.
func setupLogger(cfg *config.Log) *slog.Logger {
	formatters := map[string]log.Formatter{
		"json": log.JSONFormatter,
		"text": log.TextFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formatters[cfg.Format]; ok {
		formatter = f
	}

	handler := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
