package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/buildinfo"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/config"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/logging"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/reader"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/storage"
)

// The reader shell opens the same stores as the library manager but only
// ever reads from them.
func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	app := reader.NewApp(reader.NewView(adapter))
	if err := app.Run(ctx, os.Stdin); err != nil && err != context.Canceled {
		log.Fatalf("%v", err)
	}
}
