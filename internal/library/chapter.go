package library

import (
	"context"
	"fmt"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

// AddChapter appends a chapter to a book. A zero chapter number is
// assigned the next free position; an explicit number is kept as given.
func (s *Service) AddChapter(ctx context.Context, bookID string, ch model.Chapter) (model.Chapter, error) {
	s.mu.Lock()
	i := s.indexOf(bookID)
	if i < 0 {
		s.mu.Unlock()
		return model.Chapter{}, fmt.Errorf("%w: %s", ErrBookNotFound, bookID)
	}
	if ch.Number == 0 {
		ch.Number = len(s.books[i].Chapters) + 1
	}
	if err := model.ValidateChapter(ch); err != nil {
		s.mu.Unlock()
		return model.Chapter{}, err
	}
	s.books[i].Chapters = append(s.books[i].Chapters, ch)
	s.books[i].Touch()
	s.record(model.ActivityChapter, fmt.Sprintf("Hoofdstuk %q toegevoegd", ch.Title))
	s.mu.Unlock()

	return ch, s.saveAll(ctx)
}

// UpdateChapter replaces a chapter's metadata. Content is preserved;
// use SetChapterContent for writing.
func (s *Service) UpdateChapter(ctx context.Context, bookID string, ch model.Chapter) (model.Chapter, error) {
	if err := model.ValidateChapter(ch); err != nil {
		return model.Chapter{}, err
	}

	s.mu.Lock()
	i := s.indexOf(bookID)
	if i < 0 {
		s.mu.Unlock()
		return model.Chapter{}, fmt.Errorf("%w: %s", ErrBookNotFound, bookID)
	}
	j := chapterIndex(s.books[i].Chapters, ch.ID)
	if j < 0 {
		s.mu.Unlock()
		return model.Chapter{}, fmt.Errorf("%w: %s", ErrChapterNotFound, ch.ID)
	}
	old := s.books[i].Chapters[j]
	ch.Content = old.Content
	ch.WordCount = old.WordCount
	ch.CreatedAt = old.CreatedAt
	ch.LastModified = old.LastModified
	ch.UpdatedAt = s.now().UTC()
	s.books[i].Chapters[j] = ch
	s.books[i].Touch()
	s.record(model.ActivityChapter, fmt.Sprintf("Hoofdstuk %q bijgewerkt", ch.Title))
	s.mu.Unlock()

	return ch, s.saveAll(ctx)
}

// DeleteChapter removes a chapter from a book.
func (s *Service) DeleteChapter(ctx context.Context, bookID, chapterID string) error {
	s.mu.Lock()
	i := s.indexOf(bookID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrBookNotFound, bookID)
	}
	j := chapterIndex(s.books[i].Chapters, chapterID)
	if j < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrChapterNotFound, chapterID)
	}
	title := s.books[i].Chapters[j].Title
	s.books[i].Chapters = append(s.books[i].Chapters[:j], s.books[i].Chapters[j+1:]...)
	s.books[i].Touch()
	s.record(model.ActivityDelete, fmt.Sprintf("Hoofdstuk %q verwijderd", title))
	s.mu.Unlock()

	return s.saveAll(ctx)
}

// SetChapterContent replaces a chapter's body and recomputes its word
// count.
func (s *Service) SetChapterContent(ctx context.Context, bookID, chapterID, content string) (model.Chapter, error) {
	s.mu.Lock()
	i := s.indexOf(bookID)
	if i < 0 {
		s.mu.Unlock()
		return model.Chapter{}, fmt.Errorf("%w: %s", ErrBookNotFound, bookID)
	}
	j := chapterIndex(s.books[i].Chapters, chapterID)
	if j < 0 {
		s.mu.Unlock()
		return model.Chapter{}, fmt.Errorf("%w: %s", ErrChapterNotFound, chapterID)
	}
	ch := &s.books[i].Chapters[j]
	ch.SetContent(content)
	s.books[i].Touch()
	s.record(model.ActivityWrite, fmt.Sprintf("Hoofdstuk %q geschreven (%d woorden)", ch.Title, ch.WordCount))
	out := *ch
	s.mu.Unlock()

	return out, s.saveAll(ctx)
}

func chapterIndex(chapters []model.Chapter, id string) int {
	for i, c := range chapters {
		if c.ID == id {
			return i
		}
	}
	return -1
}
