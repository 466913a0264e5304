package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Init replaces the process-wide root logger.
func Init(level string, development bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	mu.Lock()
	root = l
	mu.Unlock()
	return nil
}

// Named returns a sugared child of the root logger.
func Named(name string) (*zap.SugaredLogger, error) {
	if name == "" {
		return nil, fmt.Errorf("logger name is required")
	}
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(name).Sugar(), nil
}

func MustNamed(name string) *zap.SugaredLogger {
	l, err := Named(name)
	if err != nil {
		panic(err)
	}
	return l
}

func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return root.Sync()
}
