// Package persist coordinates saving, verifying and restoring the library
// document. All mutation of the stored document goes through a single
// Coordinator so that concurrent autosave, integrity sweeps and manual
// syncs never interleave their read-modify-write cycles.
package persist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/compact"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/logging"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/storage"
)

// DefaultVerifyDelay is how long a persist waits before reading the
// document back to confirm the write landed.
const DefaultVerifyDelay = 100 * time.Millisecond

// ErrVerifyFailed reports that a saved document did not read back with
// the same set of book IDs, even after the retry.
var ErrVerifyFailed = errors.New("persist: save verification failed")

// Store is the storage surface the coordinator needs.
type Store interface {
	SaveBooks(ctx context.Context, books []model.Book) error
	LoadBooks(ctx context.Context) ([]model.Book, error)
	SaveSettings(ctx context.Context, s model.Settings) error
	LoadSettings(ctx context.Context) (model.Settings, error)
	SaveBackup(ctx context.Context, b model.Backup) error
	LoadBackup(ctx context.Context) (model.Backup, bool, error)
	SaveQuarantine(ctx context.Context, books []model.Book) error
}

// Coordinator owns all persistence of the library document.
type Coordinator struct {
	mu          sync.Mutex
	store       Store
	log         logging.Logger
	verifyDelay time.Duration
	now         func() time.Time
}

// Option tweaks coordinator construction.
type Option func(*Coordinator)

// WithVerifyDelay overrides the post-save verification delay. Tests use
// this to avoid sleeping.
func WithVerifyDelay(d time.Duration) Option {
	return func(c *Coordinator) { c.verifyDelay = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func NewCoordinator(store Store, log logging.Logger, opts ...Option) *Coordinator {
	if log == nil {
		log = logging.Nop()
	}
	c := &Coordinator{
		store:       store,
		log:         log,
		verifyDelay: DefaultVerifyDelay,
		now:         time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Persist compacts and saves the document, then verifies the write by
// reading it back after a short delay and comparing book ID sets. A
// failed verification triggers exactly one retried save before the
// error is returned. The input slice is never mutated.
func (c *Coordinator) Persist(ctx context.Context, books []model.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persistLocked(ctx, books)
}

func (c *Coordinator) persistLocked(ctx context.Context, books []model.Book) error {
	reduced := compact.CoordinatorPolicy().Apply(books)
	want := model.BookIDs(reduced)

	attempt := 0
	backoff := retry.WithMaxRetries(1, retry.NewConstant(c.verifyDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := c.store.SaveBooks(ctx, reduced); err != nil {
			return fmt.Errorf("save books: %w", err)
		}
		if err := c.verify(ctx, want); err != nil {
			c.log.Warn(ctx, "persist verification failed, retrying save",
				"attempt", attempt, "books", len(reduced), "error", err.Error())
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.log.Debug(ctx, "library persisted", "books", len(reduced), "attempts", attempt)
	return nil
}

// verify waits out the delay and confirms the stored document holds
// exactly the expected book IDs.
func (c *Coordinator) verify(ctx context.Context, want map[string]struct{}) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.verifyDelay):
	}

	got, err := c.store.LoadBooks(ctx)
	if err != nil {
		return fmt.Errorf("%w: readback: %v", ErrVerifyFailed, err)
	}
	have := model.BookIDs(got)
	if len(have) != len(want) {
		return fmt.Errorf("%w: stored %d books, expected %d", ErrVerifyFailed, len(have), len(want))
	}
	for id := range want {
		if _, ok := have[id]; !ok {
			return fmt.Errorf("%w: book %s missing after save", ErrVerifyFailed, id)
		}
	}
	return nil
}

// Restore loads the library document, falling back to the backup when
// the main document is missing or unreadable. Books that fail the
// well-formedness check are quarantined rather than silently dropped.
// A restore served from backup promotes the backup by re-persisting it
// as the main document.
func (c *Coordinator) Restore(ctx context.Context) ([]model.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	books, err := c.store.LoadBooks(ctx)
	fromBackup := false
	if err != nil || books == nil {
		if err != nil {
			c.log.Warn(ctx, "main document unreadable, trying backup", "error", err.Error())
		}
		backup, ok, berr := c.store.LoadBackup(ctx)
		if berr != nil || !ok {
			if err != nil {
				// Both copies are gone. Surface the original failure.
				return nil, fmt.Errorf("restore: %w", err)
			}
			return []model.Book{}, nil
		}
		books = backup.Books
		fromBackup = true
		c.log.Info(ctx, "restored library from backup",
			"books", len(books), "lastSaved", backup.LastSaved)
	}

	books, dropped := filterWellFormed(books)
	if len(dropped) > 0 {
		c.log.Warn(ctx, "quarantined malformed books", "count", len(dropped))
		if qerr := c.store.SaveQuarantine(ctx, dropped); qerr != nil {
			c.log.Error(ctx, "quarantine write failed", "error", qerr.Error())
		}
	}

	if fromBackup || len(dropped) > 0 {
		if perr := c.persistLocked(ctx, books); perr != nil {
			c.log.Error(ctx, "re-persist after recovery failed", "error", perr.Error())
		}
	}
	return books, nil
}

// filterWellFormed splits books into keepers and rejects, normalizing
// nil chapter lists on the keepers.
func filterWellFormed(books []model.Book) (kept, dropped []model.Book) {
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

// Snapshot writes the current document as the backup copy. It runs the
// same compaction as Persist so the backup is never larger than the
// main document.
func (c *Coordinator) Snapshot(ctx context.Context, books []model.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := model.Backup{
		Books:     compact.CoordinatorPolicy().Apply(books),
		LastSaved: c.now().UTC(),
	}
	if err := c.store.SaveBackup(ctx, b); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	c.log.Debug(ctx, "backup written", "books", len(b.Books))
	return nil
}

// SaveSettings persists the settings blob.
func (c *Coordinator) SaveSettings(ctx context.Context, s model.Settings) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.SaveSettings(ctx, s)
}

// LoadSettings loads the settings blob, or defaults when absent.
func (c *Coordinator) LoadSettings(ctx context.Context) (model.Settings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.LoadSettings(ctx)
}

// Quarantine stores books that failed an integrity check so they can be
// inspected later instead of being silently discarded.
func (c *Coordinator) Quarantine(ctx context.Context, books []model.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.SaveQuarantine(ctx, books)
}

// Emergency performs a best-effort save without verification. Used by
// recovery paths where a partial write beats no write.
func (c *Coordinator) Emergency(ctx context.Context, books []model.Book) {
	c.mu.Lock()
	defer c.mu.Unlock()
	reduced := compact.CoordinatorPolicy().Apply(books)
	if err := c.store.SaveBooks(ctx, reduced); err != nil {
		c.log.Error(ctx, "emergency save failed", "error", err.Error())
	}
}

var _ Store = (*storage.Adapter)(nil)
