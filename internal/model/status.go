// Package model defines the book library's domain types: books, chapters,
// notes, characters, the activity feed and persisted settings. The JSON field
// names are part of the stored data layout and must stay stable.
package model

// Status is the publication state of a book.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in-progress"
	StatusPublished  Status = "published"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusPublished:
		return true
	}
	return false
}

// Genre classifies a book. The set mirrors what the reader view knows how
// to display.
type Genre string

const (
	GenreFantasy   Genre = "fantasy"
	GenreSciFi     Genre = "sci-fi"
	GenreRomance   Genre = "romance"
	GenreThriller  Genre = "thriller"
	GenreAdventure Genre = "adventure"
	GenreMystery   Genre = "mystery"
	GenreHorror    Genre = "horror"
	GenreComedy    Genre = "comedy"
)

func (g Genre) Valid() bool {
	switch g {
	case GenreFantasy, GenreSciFi, GenreRomance, GenreThriller,
		GenreAdventure, GenreMystery, GenreHorror, GenreComedy:
		return true
	}
	return false
}

// DisplayName returns a human-readable genre label.
func (g Genre) DisplayName() string {
	names := map[Genre]string{
		GenreFantasy:   "Fantasy",
		GenreSciFi:     "Sci-Fi",
		GenreRomance:   "Romance",
		GenreThriller:  "Thriller",
		GenreAdventure: "Adventure",
		GenreMystery:   "Mystery",
		GenreHorror:    "Horror",
		GenreComedy:    "Comedy",
	}
	if n, ok := names[g]; ok {
		return n
	}
	if g == "" {
		return "Unknown"
	}
	return string(g)
}

// ChapterStatus tracks how far along a chapter is.
type ChapterStatus string

const (
	ChapterPlanned  ChapterStatus = "planned"
	ChapterDraft    ChapterStatus = "draft"
	ChapterWriting  ChapterStatus = "writing"
	ChapterReview   ChapterStatus = "review"
	ChapterComplete ChapterStatus = "complete"
)

func (s ChapterStatus) Valid() bool {
	switch s {
	case ChapterPlanned, ChapterDraft, ChapterWriting, ChapterReview, ChapterComplete:
		return true
	}
	return false
}
