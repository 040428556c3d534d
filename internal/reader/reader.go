// Package reader implements the published-books view: a read-only
// window on the same store the library manages. Nothing here mutates the
// document.
package reader

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

// Loader is the read surface the view needs.
type Loader interface {
	LoadBooks(ctx context.Context) ([]model.Book, error)
}

// View serves the published slice of the library.
type View struct {
	store Loader
}

func NewView(store Loader) *View {
	return &View{store: store}
}

// Published returns the published books, newest first, as stored.
func (v *View) Published(ctx context.Context) ([]model.Book, error) {
	books, err := v.store.LoadBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load published books: %w", err)
	}
	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		if b.Status == model.StatusPublished {
			out = append(out, b)
		}
	}
	return out, nil
}

// Find locates one published book by id prefix or title substring.
func (v *View) Find(ctx context.Context, arg string) (model.Book, error) {
	books, err := v.Published(ctx)
	if err != nil {
		return model.Book{}, err
	}
	lower := strings.ToLower(arg)
	for _, b := range books {
		if strings.HasPrefix(b.ID, arg) || strings.Contains(strings.ToLower(b.Title), lower) {
			return b, nil
		}
	}
	return model.Book{}, fmt.Errorf("published book not found: %s", arg)
}

// Chapter returns one chapter of a published book by number, in reading
// order.
func (v *View) Chapter(ctx context.Context, bookArg string, number int) (model.Book, model.Chapter, error) {
	b, err := v.Find(ctx, bookArg)
	if err != nil {
		return model.Book{}, model.Chapter{}, err
	}
	chapters := readingOrder(b.Chapters)
	if number < 1 || number > len(chapters) {
		return b, model.Chapter{}, fmt.Errorf("book %q has chapters 1..%d", b.Title, len(chapters))
	}
	return b, chapters[number-1], nil
}

func readingOrder(chapters []model.Chapter) []model.Chapter {
	out := make([]model.Chapter, len(chapters))
	copy(out, chapters)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Stats aggregates the published slice.
type Stats struct {
	Books    int
	Chapters int
	Pages    int
	Words    int
}

// Stats computes aggregates over the published books.
func (v *View) Stats(ctx context.Context) (Stats, error) {
	books, err := v.Published(ctx)
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	for _, b := range books {
		s.Books++
		s.Pages += b.Pages
		s.Chapters += len(b.Chapters)
		for _, ch := range b.Chapters {
			s.Words += ch.WordCount
		}
	}
	return s, nil
}
