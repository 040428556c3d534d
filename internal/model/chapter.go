package model

import (
	"strings"
	"time"
)

// Chapter is a single unit of writing inside a book. Content lives inline;
// wordCount is derived from it and recomputed on every content edit.
type Chapter struct {
	ID           string        `json:"id" validate:"required"`
	Title        string        `json:"title" validate:"required"`
	Number       int           `json:"number" validate:"gte=1"`
	Content      string        `json:"content"`
	WordCount    int           `json:"wordCount" validate:"gte=0"`
	Status       ChapterStatus `json:"status" validate:"omitempty,oneof=planned draft writing review complete"`
	Summary      string        `json:"summary"`
	Notes        string        `json:"notes"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	LastModified time.Time     `json:"lastModified"`
}

// NewChapter builds a chapter with defaults: fresh id, status planned when
// empty. A number of 0 means unset; it is assigned when the chapter is
// added to a book.
func NewChapter(title string, number int, summary, notes string, status ChapterStatus) Chapter {
	now := time.Now().UTC()
	if status == "" {
		status = ChapterPlanned
	}
	if number < 0 {
		number = 0
	}
	return Chapter{
		ID:        NewID(),
		Title:     strings.TrimSpace(title),
		Number:    number,
		Status:    status,
		Summary:   strings.TrimSpace(summary),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetContent replaces the chapter body, recomputes the word count and stamps
// lastModified.
func (c *Chapter) SetContent(content string) {
	c.Content = content
	c.WordCount = CountWords(content)
	now := time.Now().UTC()
	c.LastModified = now
	c.UpdatedAt = now
}

// CountWords counts whitespace-separated words.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// WritingStats are the live editor statistics shown while writing.
type WritingStats struct {
	Words          int
	Characters     int
	Paragraphs     int
	ReadingMinutes int
}

// TextStats computes editor statistics for a piece of chapter text.
// Reading time assumes roughly 200 words per minute, with a one minute floor.
func TextStats(content string) WritingStats {
	words := CountWords(content)
	paragraphs := 0
	for _, p := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return WritingStats{
		Words:          words,
		Characters:     len(content),
		Paragraphs:     paragraphs,
		ReadingMinutes: minutes,
	}
}
