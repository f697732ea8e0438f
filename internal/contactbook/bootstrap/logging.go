package bootstrap

import (
	"io"
	"log/slog"

	"github.com/aradsms/contactbook/internal/platform/config"
	"github.com/aradsms/contactbook/internal/platform/logger"
)

// Logger builds the process logger: JSON to console, or to a rotated file when
// LOG_FILE is set. level overrides cfg.LogLevel when non-empty.
func Logger(cfg *config.Config, name, level string, console io.Writer) (*slog.Logger, func() error, error) {
	if level == "" {
		level = cfg.LogLevel
	}
	if cfg.LogFile == "" {
		return logger.NewJSON(console, level).With("service", name), func() error { return nil }, nil
	}
	l, closeFn, err := logger.NewRotating(cfg.LogFile, level, logger.FileOptions{
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		return nil, nil, err
	}
	return l.With("service", name), closeFn, nil
}
