package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/pantry-chef/backend/config"
)

// New builds the process logger. Production gets JSON output, everything else the
// human-readable development encoder.
func New(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zc zap.Config
	if config.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log.Named("pantry-chef"), nil
}

// Sync flushes buffered entries. Errors from syncing stdout/stderr are expected on
// some platforms and ignored.
func Sync(log *zap.Logger) {
	_ = log.Sync()
}
