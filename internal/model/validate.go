package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var (
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidBook   = errors.New("invalid book")
)

// ValidateBook checks the schema constraints on a book and its chapters.
// A missing title is reported via ErrTitleRequired so callers can show a
// targeted message; everything else wraps ErrInvalidBook.
func ValidateBook(b Book) error {
	if b.Title == "" {
		return ErrTitleRequired
	}
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBook, err)
	}
	return nil
}

// ValidateChapter checks the schema constraints on a single chapter.
func ValidateChapter(c Chapter) error {
	if c.Title == "" {
		return ErrTitleRequired
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBook, err)
	}
	return nil
}

// WellFormed reports whether a stored book passes the integrity sweep's
// structural checks: it must carry an id and a title. This is deliberately
// weaker than ValidateBook; old data with unknown enum values is still
// considered structurally sound.
func WellFormed(b Book) bool {
	return b.ID != "" && b.Title != ""
}
