package logger

import (
	"log/slog"
	"os"
	"strings"

	"go.uber.org/fx"

	"soins-suite-services/internal/app/config"
)

var Module = fx.Options(
	fx.Provide(NewLogger),
	fx.Provide(NewMiddleware),
)

// NewLogger construit le logger structuré du service (JSON en docker, texte en développement)
func NewLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Logging.Level)}

	var handler slog.Handler
	if cfg.Environment == "docker" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Service.Name,
		"instance_id", cfg.Service.InstanceID,
	)
	slog.SetDefault(logger)
	return logger
}

func NewMiddleware() *LoggerMiddleware {
	return &LoggerMiddleware{}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
