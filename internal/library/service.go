// Package library implements the application service that owns the
// in-memory library document. All reads and mutations go through the
// Service; mutations are written through to storage immediately and an
// autosave ticker flushes again on an interval as a safety net.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/logging"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

// DefaultAutosaveInterval is the default cadence of the background flush.
const DefaultAutosaveInterval = 30 * time.Second

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrChapterNotFound   = errors.New("chapter not found")
	ErrCharacterNotFound = errors.New("character not found")
)

// Persister is the persistence surface the service writes through to.
type Persister interface {
	Persist(ctx context.Context, books []model.Book) error
	Restore(ctx context.Context) ([]model.Book, error)
	Snapshot(ctx context.Context, books []model.Book) error
	SaveSettings(ctx context.Context, s model.Settings) error
	LoadSettings(ctx context.Context) (model.Settings, error)
	Emergency(ctx context.Context, books []model.Book)
}

// Service owns the library document and its settings.
type Service struct {
	mu       sync.Mutex
	coord    Persister
	log      logging.Logger
	books    []model.Book
	settings model.Settings
	now      func() time.Time

	autosave time.Duration
}

// Option tweaks service construction.
type Option func(*Service)

// WithAutosaveInterval overrides the autosave period.
func WithAutosaveInterval(d time.Duration) Option {
	return func(s *Service) { s.autosave = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New restores the document and settings from storage. An empty library
// is seeded with the sample books so a first run is not a blank page.
func New(ctx context.Context, coord Persister, log logging.Logger, opts ...Option) (*Service, error) {
	if log == nil {
		log = logging.Nop()
	}
	s := &Service{
		coord:    coord,
		log:      log,
		now:      time.Now,
		autosave: DefaultAutosaveInterval,
	}
	for _, o := range opts {
		o(s)
	}

	books, err := coord.Restore(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore library: %w", err)
	}
	settings, err := coord.LoadSettings(ctx)
	if err != nil {
		log.Warn(ctx, "settings unreadable, using defaults", "error", err.Error())
		settings = model.DefaultSettings()
	}
	s.books = books
	s.settings = settings

	if len(s.books) == 0 {
		s.books = sampleBooks()
		log.Info(ctx, "seeded sample library", "books", len(s.books))
		if err := coord.Persist(ctx, s.books); err != nil {
			log.Warn(ctx, "could not persist sample library", "error", err.Error())
		}
	}

	log.Info(ctx, "library loaded", "books", len(s.books))
	return s, nil
}

// Run flushes on the autosave interval until ctx is cancelled, then does
// a final flush.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.autosave)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Flush(context.WithoutCancel(ctx)); err != nil {
				s.log.Warn(ctx, "autosave failed", "error", err.Error())
			}
		}
	}
}

// Flush persists the document and settings.
func (s *Service) Flush(ctx context.Context) error {
	s.mu.Lock()
	books := model.CloneBooks(s.books)
	settings := s.settings
	s.mu.Unlock()

	if err := s.coord.Persist(ctx, books); err != nil {
		return err
	}
	return s.coord.SaveSettings(ctx, settings)
}

// Close flushes everything and writes a final backup.
func (s *Service) Close(ctx context.Context) error {
	if err := s.Flush(ctx); err != nil {
		s.mu.Lock()
		books := model.CloneBooks(s.books)
		s.mu.Unlock()
		s.coord.Emergency(ctx, books)
		return err
	}
	s.mu.Lock()
	books := model.CloneBooks(s.books)
	s.mu.Unlock()
	return s.coord.Snapshot(ctx, books)
}

// ForceSync persists immediately and refreshes the backup.
func (s *Service) ForceSync(ctx context.Context) error {
	if err := s.Flush(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	books := model.CloneBooks(s.books)
	s.mu.Unlock()
	return s.coord.Snapshot(ctx, books)
}

// Books returns a deep copy of the document in display order.
func (s *Service) Books(ctx context.Context) []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneBooks(s.books)
}

// Reset replaces the document. Used by the integrity checker after a
// repair sweep.
func (s *Service) Reset(ctx context.Context, books []model.Book) {
	s.mu.Lock()
	s.books = model.CloneBooks(books)
	s.mu.Unlock()
	s.log.Info(ctx, "library document replaced", "books", len(books))
}

// GetBook finds a book by id.
func (s *Service) GetBook(id string) (model.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ID == id {
			return b.Clone(), true
		}
	}
	return model.Book{}, false
}

// Filter selects books matching all the given criteria. Zero values
// match everything; search is a case-insensitive substring match over
// title, author and description.
func (s *Service) Filter(status model.Status, genre model.Genre, search string) []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]model.Book, 0, len(s.books))
	for _, b := range s.books {
		if status != "" && b.Status != status {
			continue
		}
		if genre != "" && b.Genre != genre {
			continue
		}
		if search != "" && !matches(b, search) {
			continue
		}
		out = append(out, b.Clone())
	}
	return out
}

func matches(b model.Book, search string) bool {
	return strings.Contains(strings.ToLower(b.Title), search) ||
		strings.Contains(strings.ToLower(b.Author), search) ||
		strings.Contains(strings.ToLower(b.Description), search)
}

// AddBook validates and prepends a new book, so the newest entry shows
// first.
func (s *Service) AddBook(ctx context.Context, b model.Book) (model.Book, error) {
	if err := model.ValidateBook(b); err != nil {
		return model.Book{}, err
	}
	if b.Chapters == nil {
		b.Chapters = []model.Chapter{}
	}

	s.mu.Lock()
	s.books = append([]model.Book{b}, s.books...)
	s.record(model.ActivityCreate, fmt.Sprintf("Nieuw boek %q aangemaakt", b.Title))
	s.mu.Unlock()

	return b, s.saveAll(ctx)
}

// UpdateBook replaces a book's fields. Growing the page count counts as
// written pages toward the writing goals.
func (s *Service) UpdateBook(ctx context.Context, b model.Book) (model.Book, error) {
	b.Progress = model.ClampProgress(b.Progress)
	if b.Pages < 0 {
		b.Pages = 0
	}
	if err := model.ValidateBook(b); err != nil {
		return model.Book{}, err
	}

	s.mu.Lock()
	i := s.indexOf(b.ID)
	if i < 0 {
		s.mu.Unlock()
		return model.Book{}, fmt.Errorf("%w: %s", ErrBookNotFound, b.ID)
	}
	old := s.books[i]
	b.CreatedAt = old.CreatedAt
	b.Touch()
	s.books[i] = b

	if b.Pages > old.Pages {
		s.creditPages(b.Pages - old.Pages)
	}
	if old.Status != model.StatusPublished && b.Status == model.StatusPublished {
		s.record(model.ActivityPublish, fmt.Sprintf("Boek %q gepubliceerd", b.Title))
	} else {
		s.record(model.ActivityEdit, fmt.Sprintf("Boek %q bijgewerkt", b.Title))
	}
	s.mu.Unlock()

	return b, s.saveAll(ctx)
}

// DeleteBook removes a book permanently.
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}
	title := s.books[i].Title
	s.books = append(s.books[:i], s.books[i+1:]...)
	s.record(model.ActivityDelete, fmt.Sprintf("Boek %q verwijderd", title))
	s.mu.Unlock()

	return s.saveAll(ctx)
}

// indexOf must be called with the lock held.
func (s *Service) indexOf(id string) int {
	for i, b := range s.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// record must be called with the lock held.
func (s *Service) record(t model.ActivityType, description string) {
	s.settings.Activities = model.AppendActivity(s.settings.Activities, t, description)
}

// creditPages must be called with the lock held.
func (s *Service) creditPages(pages int) {
	s.settings.Stats.RecordPages(pages, s.now())
	s.record(model.ActivityWrite, fmt.Sprintf("%d pagina's toegevoegd", pages))
}

// saveAll writes the document and settings through the coordinator.
func (s *Service) saveAll(ctx context.Context) error {
	return s.Flush(ctx)
}
