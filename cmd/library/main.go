package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/buildinfo"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/cli"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/config"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/filex"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/integrity"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/library"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/logging"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/persist"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/storage"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("data dir: %v", err)
	}

	// The primary store may legitimately fail to open (locked by another
	// process, unsupported filesystem). The adapter then runs fallback-only.
	var primary storage.Backend
	badgerStore, err := storage.OpenBadger(storage.BadgerConfig{
		Dir:    filepath.Join(cfg.DataDir, "badger"),
		Logger: logger,
	})
	if err != nil {
		logger.Warn(ctx, "primary store unavailable", "error", err.Error())
	} else {
		primary = badgerStore
		defer badgerStore.Close()
	}

	sqliteStore, err := storage.OpenSQLite(ctx,
		filepath.Join(cfg.DataDir, "fallback.db"), cfg.FallbackQuota)
	if err != nil {
		log.Fatalf("fallback store: %v", err)
	}
	defer sqliteStore.Close()

	adapter, err := storage.NewAdapter(ctx, primary, sqliteStore, logger)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	coord := persist.NewCoordinator(adapter, logger,
		persist.WithVerifyDelay(cfg.VerifyDelay))

	svc, err := library.New(ctx, coord, logger,
		library.WithAutosaveInterval(cfg.AutosaveInterval))
	if err != nil {
		log.Fatalf("library: %v", err)
	}

	go svc.Run(ctx)
	go integrity.NewChecker(svc, coord, adapter, logger,
		integrity.WithInterval(cfg.IntegrityInterval),
		integrity.WithBackupMaxAge(cfg.BackupMaxAge)).Run(ctx)

	exportDir, err := filex.EnsureSubdDir("exports")
	if err != nil {
		log.Fatalf("export dir: %v", err)
	}

	cli.NewApp(svc, adapter, exportDir).Run(ctx)
	stop()

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.Close(closeCtx); err != nil {
		logger.Error(closeCtx, "final flush failed", "error", err.Error())
	}
}
