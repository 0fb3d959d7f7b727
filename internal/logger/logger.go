package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"athletic-metrics/internal/config"
)

// New construye el logger del servicio. Escribe JSON a stdout y, salvo que
// CONSOLE_ONLY esté activo, también al archivo configurado.
func New(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.OutputPaths = outputPaths(cfg)
	zcfg.ErrorOutputPaths = []string{"stderr"}

	if !cfg.ConsoleOnly && cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	return zcfg.Build()
}

func outputPaths(cfg *config.Config) []string {
	paths := []string{"stdout"}
	if !cfg.ConsoleOnly && cfg.LogFile != "" {
		paths = append(paths, cfg.LogFile)
	}
	return paths
}
