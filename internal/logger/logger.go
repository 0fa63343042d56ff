package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/flashquiz/internal/config"

	"go.uber.org/zap"
)

// Output selects where log lines go.
type Output int

const (
	// ToStderr is used by one-shot CLI commands.
	ToStderr Output = iota
	// ToFile is used while the TUI owns the terminal.
	ToFile
)

// New creates a zap logger: JSON production output when cfg.Env is
// "production", console development output otherwise.
func New(cfg *config.Config, out Output) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Log.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zc.Level = level
	}

	if out == ToFile {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		zc.OutputPaths = []string{cfg.Log.File}
		zc.ErrorOutputPaths = []string{cfg.Log.File}
	}

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
