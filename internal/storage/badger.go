package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/logging"
)

// BadgerStore is the high-capacity transactional object store. Capacity is
// bound only by disk space, so full-fidelity documents (embedded cover
// images included) are written here without compaction.
type BadgerStore struct {
	db  *badger.DB
	dir string
}

// BadgerConfig holds the knobs for opening a BadgerStore.
type BadgerConfig struct {
	// Dir is the database directory. Required unless InMemory is set.
	Dir string

	// InMemory keeps everything in RAM. Used by tests.
	InMemory bool

	// SyncWrites forces an fsync per write for durability.
	SyncWrites bool

	// Logger receives Badger's internal log output. Nil disables it.
	Logger logging.Logger
}

// badgerLogger adapts logging.Logger to Badger's Logger interface.
type badgerLogger struct {
	log logging.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(context.Background(), fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(context.Background(), fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.log.Debug(context.Background(), fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(context.Background(), fmt.Sprintf(format, args...))
}

// OpenBadger opens (and creates if needed) a BadgerStore.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Dir == "" {
		return nil, fmt.Errorf("%w: badger dir is required", ErrUnavailable)
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("%w: create dir %s: %v", ErrUnavailable, cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{log: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger: %v", ErrUnavailable, err)
	}
	return &BadgerStore{db: db, dir: cfg.Dir}, nil
}

func (s *BadgerStore) Name() string { return "badger" }

func (s *BadgerStore) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("badger save %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("badger load %s: %w", key, err)
	}
	return out, nil
}

func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("badger delete %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Close() error { return s.db.Close() }

// Sizes reports the on-disk footprint (LSM plus value log).
func (s *BadgerStore) Sizes() int64 {
	lsm, vlog := s.db.Size()
	return lsm + vlog
}
