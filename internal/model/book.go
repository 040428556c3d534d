package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Book is the top-level catalogue entry. Books are kept newest-first in the
// library document; a book's id is assigned at creation and never changes.
type Book struct {
	ID          string    `json:"id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Author      string    `json:"author"`
	Genre       Genre     `json:"genre" validate:"omitempty,oneof=fantasy sci-fi romance thriller adventure mystery horror comedy"`
	Status      Status    `json:"status" validate:"omitempty,oneof=draft in-progress published"`
	Description string    `json:"description"`
	Pages       int       `json:"pages" validate:"gte=0"`
	Progress    int       `json:"progress" validate:"gte=0,lte=100"`
	CoverURL    string    `json:"coverUrl"`
	Chapters    []Chapter `json:"chapters" validate:"dive"`
	Notes       Notes     `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Notes holds the free-form writing notes attached to a book.
type Notes struct {
	General       string      `json:"general"`
	Characters    []Character `json:"characters"`
	Worldbuilding string      `json:"worldbuilding"`
	Plot          string      `json:"plot"`
}

// Character is a single entry in a book's character list.
type Character struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewID returns a fresh opaque identifier.
func NewID() string { return uuid.NewString() }

// NewBook builds a Book with defaults applied: a fresh id, author "Unknown"
// when empty, status draft when empty, progress clamped to [0,100] and a
// non-nil chapters slice.
func NewBook(title, author string, genre Genre, status Status, description string, pages, progress int, coverURL string) Book {
	now := time.Now().UTC()
	if strings.TrimSpace(author) == "" {
		author = "Unknown"
	}
	if status == "" {
		status = StatusDraft
	}
	if pages < 0 {
		pages = 0
	}
	return Book{
		ID:          NewID(),
		Title:       strings.TrimSpace(title),
		Author:      strings.TrimSpace(author),
		Genre:       genre,
		Status:      status,
		Description: strings.TrimSpace(description),
		Pages:       pages,
		Progress:    ClampProgress(progress),
		CoverURL:    coverURL,
		Chapters:    []Chapter{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ClampProgress forces a progress value into [0,100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Touch updates the modification timestamp.
func (b *Book) Touch() { b.UpdatedAt = time.Now().UTC() }

// Clone returns a deep copy of the book. The compaction policy relies on
// this so the live in-memory copy is never truncated.
func (b Book) Clone() Book {
	out := b
	out.Chapters = make([]Chapter, len(b.Chapters))
	copy(out.Chapters, b.Chapters)
	out.Notes.Characters = make([]Character, len(b.Notes.Characters))
	copy(out.Notes.Characters, b.Notes.Characters)
	return out
}

// CloneBooks deep-copies a book list.
func CloneBooks(books []Book) []Book {
	out := make([]Book, len(books))
	for i, b := range books {
		out[i] = b.Clone()
	}
	return out
}

// BookIDs returns the set of book identifiers, used for save verification.
func BookIDs(books []Book) map[string]struct{} {
	ids := make(map[string]struct{}, len(books))
	for _, b := range books {
		ids[b.ID] = struct{}{}
	}
	return ids
}

// IsEmbeddedImage reports whether a cover value is an inline image encoding
// rather than an external URL.
func IsEmbeddedImage(coverURL string) bool {
	return strings.HasPrefix(coverURL, "data:")
}
