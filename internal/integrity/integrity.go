// Package integrity runs periodic self-checks over the live library and
// its stored copies, repairing what it can. Each cycle is independent: a
// panic or error in one cycle is logged, a best-effort save is made, and
// the next cycle runs on schedule.
package integrity

import (
	"context"
	"fmt"
	"time"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/logging"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

const (
	// DefaultInterval is how often the checker sweeps.
	DefaultInterval = 2 * time.Minute

	// DefaultBackupMaxAge is how stale the backup copy may get before a
	// sweep refreshes it.
	DefaultBackupMaxAge = 10 * time.Minute
)

// Document is the live in-memory library the checker inspects and, when
// needed, repairs.
type Document interface {
	// Books returns a deep copy of the current book list.
	Books(ctx context.Context) []model.Book

	// Reset replaces the book list after a repair.
	Reset(ctx context.Context, books []model.Book)
}

// Persister is the subset of the persistence coordinator the checker uses.
type Persister interface {
	Persist(ctx context.Context, books []model.Book) error
	Snapshot(ctx context.Context, books []model.Book) error
	Quarantine(ctx context.Context, books []model.Book) error
	Emergency(ctx context.Context, books []model.Book)
}

// Store provides read access to the stored copies.
type Store interface {
	LoadBooks(ctx context.Context) ([]model.Book, error)
	LoadBackup(ctx context.Context) (model.Backup, bool, error)
}

// Report summarizes one check cycle.
type Report struct {
	Checked       int
	Quarantined   int
	Repersisted   bool
	BackupRenewed bool
}

type Checker struct {
	doc          Document
	coord        Persister
	store        Store
	log          logging.Logger
	interval     time.Duration
	backupMaxAge time.Duration
	now          func() time.Time
}

// Option tweaks checker construction.
type Option func(*Checker)

func WithInterval(d time.Duration) Option {
	return func(c *Checker) { c.interval = d }
}

func WithBackupMaxAge(d time.Duration) Option {
	return func(c *Checker) { c.backupMaxAge = d }
}

func WithClock(now func() time.Time) Option {
	return func(c *Checker) { c.now = now }
}

func NewChecker(doc Document, coord Persister, store Store, log logging.Logger, opts ...Option) *Checker {
	if log == nil {
		log = logging.Nop()
	}
	c := &Checker{
		doc:          doc,
		coord:        coord,
		store:        store,
		log:          log,
		interval:     DefaultInterval,
		backupMaxAge: DefaultBackupMaxAge,
		now:          time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run performs one immediate check and then sweeps on the configured
// interval until ctx is cancelled.
func (c *Checker) Run(ctx context.Context) {
	c.Check(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}

// Check runs one full cycle. Failures never propagate; the cycle logs,
// attempts an emergency save and returns what it managed to do.
func (c *Checker) Check(ctx context.Context) (rep Report) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error(ctx, "integrity check panicked", "panic", fmt.Sprint(r))
			c.coord.Emergency(ctx, c.doc.Books(ctx))
		}
	}()

	books := c.doc.Books(ctx)
	rep.Checked = len(books)

	// 1. Sweep the live document for malformed entries.
	kept, dropped := sweep(books)
	if len(dropped) > 0 {
		rep.Quarantined = len(dropped)
		c.log.Warn(ctx, "integrity sweep quarantining books", "count", len(dropped))
		if err := c.coord.Quarantine(ctx, dropped); err != nil {
			c.log.Error(ctx, "quarantine failed", "error", err.Error())
		}
		c.doc.Reset(ctx, kept)
		books = kept
	}

	// 2. Confirm the stored copy is readable and in sync.
	stored, err := c.store.LoadBooks(ctx)
	stale := err != nil
	if err == nil {
		stale = !sameIDs(books, stored)
	}
	if stale {
		if err != nil {
			c.log.Warn(ctx, "stored document unreadable, re-persisting", "error", err.Error())
		} else {
			c.log.Warn(ctx, "stored document out of sync, re-persisting",
				"memory", len(books), "stored", len(stored))
		}
		if perr := c.coord.Persist(ctx, books); perr != nil {
			c.log.Error(ctx, "re-persist failed", "error", perr.Error())
			c.coord.Emergency(ctx, books)
		}
		rep.Repersisted = true
	}

	// 3. Refresh the backup when missing or stale.
	backup, ok, berr := c.store.LoadBackup(ctx)
	needBackup := berr != nil || !ok
	if !needBackup {
		needBackup = c.now().Sub(backup.LastSaved) > c.backupMaxAge
	}
	if needBackup {
		if serr := c.coord.Snapshot(ctx, books); serr != nil {
			c.log.Error(ctx, "backup refresh failed", "error", serr.Error())
		} else {
			rep.BackupRenewed = true
		}
	}

	c.log.Debug(ctx, "integrity check complete",
		"books", rep.Checked, "quarantined", rep.Quarantined,
		"repersisted", rep.Repersisted, "backupRenewed", rep.BackupRenewed)
	return rep
}

func sweep(books []model.Book) (kept, dropped []model.Book) {
	kept = make([]model.Book, 0, len(books))
	for _, b := range books {
		if !model.WellFormed(b) {
			dropped = append(dropped, b)
			continue
		}
		if b.Chapters == nil {
			b.Chapters = []model.Chapter{}
		}
		kept = append(kept, b)
	}
	return kept, dropped
}

func sameIDs(a, b []model.Book) bool {
	if len(a) != len(b) {
		return false
	}
	ids := model.BookIDs(b)
	for _, x := range a {
		if _, ok := ids[x.ID]; !ok {
			return false
		}
	}
	return true
}
