package reader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

type fakeLoader struct {
	books []model.Book
	err   error
}

func (f *fakeLoader) LoadBooks(_ context.Context) ([]model.Book, error) {
	return f.books, f.err
}

func testBooks(t *testing.T) []model.Book {
	t.Helper()
	published := model.NewBook("Het Verloren Koninkrijk", "Arc Crusade", model.GenreAdventure, model.StatusPublished, "", 420, 100, "")
	ch1 := model.NewChapter("Proloog", 2, "", "", model.ChapterComplete)
	ch1.SetContent("De wind huilde over de bergen.")
	ch2 := model.NewChapter("De reis begint", 1, "", "", model.ChapterComplete)
	ch2.SetContent("Het begon allemaal op een dinsdag.")
	published.Chapters = []model.Chapter{ch1, ch2}
	draft := model.NewBook("Sterren van Morgen", "Arc Crusade", model.GenreSciFi, model.StatusDraft, "", 280, 25, "")
	return []model.Book{published, draft}
}

func TestView_PublishedFiltersDrafts(t *testing.T) {
	v := NewView(&fakeLoader{books: testBooks(t)})
	books, err := v.Published(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Het Verloren Koninkrijk", books[0].Title)
}

func TestView_FindByTitleSubstring(t *testing.T) {
	v := NewView(&fakeLoader{books: testBooks(t)})
	b, err := v.Find(context.Background(), "verloren")
	require.NoError(t, err)
	assert.Equal(t, "Het Verloren Koninkrijk", b.Title)

	_, err = v.Find(context.Background(), "sterren")
	assert.Error(t, err, "draft books are not visible")
}

func TestView_ChapterReadingOrder(t *testing.T) {
	v := NewView(&fakeLoader{books: testBooks(t)})
	_, ch, err := v.Chapter(context.Background(), "verloren", 1)
	require.NoError(t, err)
	assert.Equal(t, "De reis begint", ch.Title, "chapters ordered by number, not storage order")

	_, _, err = v.Chapter(context.Background(), "verloren", 3)
	assert.Error(t, err)
}

func TestView_Stats(t *testing.T) {
	v := NewView(&fakeLoader{books: testBooks(t)})
	s, err := v.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Books: 1, Chapters: 2, Pages: 420, Words: 12}, s)
}

func TestView_LoadErrorPropagates(t *testing.T) {
	boom := errors.New("store gone")
	v := NewView(&fakeLoader{err: boom})
	_, err := v.Published(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestApp_RunListAndRead(t *testing.T) {
	v := NewView(&fakeLoader{books: testBooks(t)})
	app := NewApp(v)
	var lines []string
	app.out = func(a ...any) { lines = append(lines, strings.TrimRight(fmt.Sprintln(a...), "\n")) }

	in := strings.NewReader("list\nread verloren 2\nstats\nexit\n")
	require.NoError(t, app.Run(context.Background(), in))

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "Het Verloren Koninkrijk")
	assert.Contains(t, joined, "De wind huilde over de bergen.")
	assert.Contains(t, joined, "Gepubliceerde boeken: 1")
	assert.Contains(t, joined, "Tot ziens!")
}

func TestApp_UnknownCommandIsNotFatal(t *testing.T) {
	app := NewApp(NewView(&fakeLoader{}))
	var lines []string
	app.out = func(a ...any) { lines = append(lines, strings.TrimRight(fmt.Sprintln(a...), "\n")) }

	in := strings.NewReader("frobnicate\nexit\n")
	require.NoError(t, app.Run(context.Background(), in))
	assert.Contains(t, strings.Join(lines, "\n"), "onbekend commando")
}
