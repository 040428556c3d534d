package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/filex"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

// importPageSize is the rough character count per estimated page when
// ingesting a plain document.
const importPageSize = 250

// ExportStatistics writes the full snapshot (books, stats, activities)
// to a dated JSON file in dir and returns its path.
func (s *Service) ExportStatistics(ctx context.Context, dir string) (string, error) {
	s.mu.Lock()
	export := model.Export{
		Books:      model.CloneBooks(s.books),
		Stats:      s.settings.Stats,
		Activities: append([]model.Activity(nil), s.settings.Activities...),
		ExportDate: s.now().UTC(),
	}
	s.mu.Unlock()

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	name := fmt.Sprintf("arc-crusade-statistieken-%s.json", s.now().Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := filex.WriteAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// ExportBooks writes the book list alone to a dated JSON file in dir and
// returns its path.
func (s *Service) ExportBooks(ctx context.Context, dir string) (string, error) {
	s.mu.Lock()
	books := model.CloneBooks(s.books)
	s.mu.Unlock()

	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode books: %w", err)
	}
	name := fmt.Sprintf("arc-crusade-books-%s.json", s.now().Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := filex.WriteAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// ImportBooks replaces the whole document with a JSON book array read
// from r. Books without an id get a fresh one. An unreadable file leaves
// the current document untouched.
func (s *Service) ImportBooks(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read import: %w", err)
	}
	var books []model.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return 0, fmt.Errorf("%w: %s", model.ErrInvalidBook, err)
	}
	for i := range books {
		if books[i].ID == "" {
			books[i].ID = model.NewID()
		}
		if books[i].Chapters == nil {
			books[i].Chapters = []model.Chapter{}
		}
		for j := range books[i].Chapters {
			if books[i].Chapters[j].ID == "" {
				books[i].Chapters[j].ID = model.NewID()
			}
			if books[i].Chapters[j].Number == 0 {
				books[i].Chapters[j].Number = j + 1
			}
		}
	}

	s.mu.Lock()
	s.books = books
	s.record(model.ActivityCreate, fmt.Sprintf("%d boeken geïmporteerd", len(books)))
	s.mu.Unlock()

	return len(books), s.saveAll(ctx)
}

// DocumentImport describes a plain-text manuscript ingest.
type DocumentImport struct {
	Title       string
	Author      string
	Genre       model.Genre
	Description string

	// AutoSplit cuts the content into three parts instead of one
	// chapter holding everything.
	AutoSplit bool
}

// ImportDocument turns raw manuscript text into a new book. Page count
// is a rough estimate from the character count.
func (s *Service) ImportDocument(ctx context.Context, content string, opts DocumentImport) (model.Book, error) {
	if strings.TrimSpace(opts.Title) == "" {
		return model.Book{}, model.ErrTitleRequired
	}
	description := opts.Description
	if description == "" {
		description = "Geïmporteerd document"
	}

	pages := int(math.Ceil(float64(len(content)) / importPageSize))
	b := model.NewBook(opts.Title, opts.Author, opts.Genre, model.StatusDraft, description, pages, 0, "")

	if opts.AutoSplit {
		b.Chapters = splitDocument(content)
	} else {
		ch := model.NewChapter("Hoofdstuk 1", 1, "", "Single chapter import", model.ChapterComplete)
		ch.SetContent(content)
		b.Chapters = []model.Chapter{ch}
	}

	return s.AddBook(ctx, b)
}

// splitDocument cuts the text into three parts at the 33% and 66%
// character marks. Crude, but manuscripts rarely carry parseable chapter
// headings.
func splitDocument(content string) []model.Chapter {
	first := len(content) * 33 / 100
	second := len(content) * 66 / 100

	parts := []struct {
		title, notes, body string
	}{
		{"Deel 1", "Eerste deel", content[:first]},
		{"Deel 2", "Tweede deel", content[first:second]},
		{"Deel 3", "Derde deel", content[second:]},
	}

	chapters := make([]model.Chapter, 0, len(parts))
	for i, p := range parts {
		ch := model.NewChapter(p.title, i+1, "", p.notes, model.ChapterComplete)
		ch.SetContent(p.body)
		chapters = append(chapters, ch)
	}
	return chapters
}
