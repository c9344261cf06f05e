// Command emergency keeps a local log of emergency events.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gofrs/uuid/v5"
	"github.com/xlab/closer"
	"go.uber.org/zap"

	"github.com/wazxo/EmercengyAPP/internal/config"
	"github.com/wazxo/EmercengyAPP/internal/photo"
	"github.com/wazxo/EmercengyAPP/internal/service"
	"github.com/wazxo/EmercengyAPP/internal/storage"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "emergency.yaml", "YAML config file")
	db := flag.String("db", "", "SQLite file or postgres:// URL (overrides config)")
	logLevel := flag.String("log-level", "", "debug|info|warn|error (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *db, *logLevel)
	if err != nil {
		fail(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fail(err)
	}
	closer.Bind(func() { _ = logger.Sync() })

	logger = logger.With(zap.String("session", uuid.Must(uuid.NewV4()).String()))
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("backend", string(backendOf(cfg.Database))),
	)

	ctx := context.Background()

	repo, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("open storage", zap.Error(err))
		fail(err)
	}
	closer.Bind(func() {
		if err := repo.Close(); err != nil {
			logger.Error("close storage", zap.Error(err))
		}
	})

	mode, err := photo.ParseMode(cfg.PhotoMode)
	if err != nil {
		fail(err)
	}

	coord := service.NewCoordinator(repo,
		service.WithLogger(logger),
		service.WithOpTimeout(cfg.OpTimeout),
		service.WithRefetch(cfg.RefetchAfterWrite),
	)

	if err := newShell(coord, os.Stdin, os.Stdout, mode, logger).run(ctx); err != nil {
		logger.Error("shell", zap.Error(err))
		fail(err)
	}
	closer.Close()
}

// loadConfig reads the file and applies command-line overrides.
func loadConfig(path, db, logLevel string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if db != "" {
		cfg.Database = db
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	cfg.Normalize()
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	conf := zap.NewProductionConfig()
	conf.Level = lvl
	return conf.Build()
}

func backendOf(dsn string) storage.Backend {
	b, _, err := storage.Parse(dsn)
	if err != nil {
		return "unsupported"
	}
	return b
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	closer.Exit(1)
}
