package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

// SetNotes replaces a book's free-form notes. The character list is kept
// as is; it has its own operations.
func (s *Service) SetNotes(ctx context.Context, bookID, general, worldbuilding, plot string) error {
	s.mu.Lock()
	i := s.indexOf(bookID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrBookNotFound, bookID)
	}
	s.books[i].Notes.General = general
	s.books[i].Notes.Worldbuilding = worldbuilding
	s.books[i].Notes.Plot = plot
	s.books[i].Touch()
	s.record(model.ActivityEdit, fmt.Sprintf("Notities van %q bijgewerkt", s.books[i].Title))
	s.mu.Unlock()

	return s.saveAll(ctx)
}

// AddCharacter adds an entry to a book's character list.
func (s *Service) AddCharacter(ctx context.Context, bookID, name, role, description string) (model.Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Character{}, model.ErrTitleRequired
	}

	c := model.Character{
		ID:          model.NewID(),
		Name:        name,
		Role:        strings.TrimSpace(role),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	i := s.indexOf(bookID)
	if i < 0 {
		s.mu.Unlock()
		return model.Character{}, fmt.Errorf("%w: %s", ErrBookNotFound, bookID)
	}
	s.books[i].Notes.Characters = append(s.books[i].Notes.Characters, c)
	s.books[i].Touch()
	s.record(model.ActivityEdit, fmt.Sprintf("Karakter %q toegevoegd aan %q", c.Name, s.books[i].Title))
	s.mu.Unlock()

	return c, s.saveAll(ctx)
}

// DeleteCharacter removes an entry from a book's character list.
func (s *Service) DeleteCharacter(ctx context.Context, bookID, characterID string) error {
	s.mu.Lock()
	i := s.indexOf(bookID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrBookNotFound, bookID)
	}
	chars := s.books[i].Notes.Characters
	for j, c := range chars {
		if c.ID == characterID {
			s.books[i].Notes.Characters = append(chars[:j], chars[j+1:]...)
			s.books[i].Touch()
			s.mu.Unlock()
			return s.saveAll(ctx)
		}
	}
	s.mu.Unlock()
	return fmt.Errorf("%w: %s", ErrCharacterNotFound, characterID)
}
