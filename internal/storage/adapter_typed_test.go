package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/compact"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

func newFallbackOnlyAdapter(t *testing.T, quota int64) *Adapter {
	t.Helper()
	a, err := NewAdapter(context.Background(), nil, newTestSQLite(t, quota), nil)
	require.NoError(t, err)
	return a
}

func TestAdapter_BooksRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := newFallbackOnlyAdapter(t, 0)

	books := []model.Book{
		model.NewBook("Dune", "Frank Herbert", model.GenreSciFi, model.StatusDraft, "", 412, 0, ""),
		model.NewBook("Ritselingen", "", model.GenreFantasy, "", "", 0, 0, ""),
	}
	require.NoError(t, a.SaveBooks(ctx, books))

	got, err := a.LoadBooks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, books[0].ID, got[0].ID)
	assert.Equal(t, "Unknown", got[1].Author)
}

func TestAdapter_LoadBooksMissingIsNilNil(t *testing.T) {
	a := newFallbackOnlyAdapter(t, 0)

	got, err := a.LoadBooks(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAdapter_LoadBooksDecodeErrorSurfaces(t *testing.T) {
	ctx := context.Background()
	a := newFallbackOnlyAdapter(t, 0)
	require.NoError(t, a.Save(ctx, KeyBooks, []byte("{not json")))

	_, err := a.LoadBooks(ctx)
	require.Error(t, err)
}

func TestAdapter_SaveBooksCompactsOnFallback(t *testing.T) {
	ctx := context.Background()
	a := newFallbackOnlyAdapter(t, 0)

	b := model.NewBook("Epos", "A", model.GenreFantasy, model.StatusDraft, "", 0, 0, "")
	ch := model.NewChapter("Deel 1", 1, "", "", model.ChapterPlanned)
	ch.SetContent(strings.Repeat("w ", compact.FallbackContentLimit))
	b.Chapters = append(b.Chapters, ch)
	b.CoverURL = "data:image/png;base64," + strings.Repeat("A", compact.FallbackCoverLimit)

	require.NoError(t, a.SaveBooks(ctx, []model.Book{b}))

	got, err := a.LoadBooks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].CoverURL)
	assert.True(t, strings.HasSuffix(got[0].Chapters[0].Content, compact.TruncationMarker))
	assert.Len(t, got[0].Chapters[0].Content, compact.FallbackContentLimit+len(compact.TruncationMarker))

	// The in-memory value the caller handed over must stay intact.
	assert.NotEmpty(t, b.CoverURL)
}

func TestAdapter_SaveBooksCompactsOnDemotion(t *testing.T) {
	ctx := context.Background()
	flaky := &flakyBackend{inner: newTestBadger(t)}
	a, err := NewAdapter(ctx, flaky, newTestSQLite(t, 0), nil)
	require.NoError(t, err)
	require.True(t, a.Primary())

	b := model.NewBook("Epos", "A", model.GenreFantasy, model.StatusDraft, "", 0, 0, "")
	ch := model.NewChapter("Deel 1", 1, "", "", model.ChapterPlanned)
	ch.SetContent(strings.Repeat("w ", compact.FallbackContentLimit))
	b.Chapters = append(b.Chapters, ch)

	flaky.failing = true

	// The mid-save retry lands on the fallback already compacted.
	require.NoError(t, a.SaveBooks(ctx, []model.Book{b}))
	require.False(t, a.Primary())

	got, err := a.LoadBooks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, strings.HasSuffix(got[0].Chapters[0].Content, compact.TruncationMarker))
	assert.Len(t, got[0].Chapters[0].Content, compact.FallbackContentLimit+len(compact.TruncationMarker))
}

func TestAdapter_SettingsRoundTripAndLegacyKeys(t *testing.T) {
	ctx := context.Background()
	a := newFallbackOnlyAdapter(t, 0)

	s, err := a.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), s)

	s.Theme = "dark"
	s.Stats.DailyGoal = 5
	require.NoError(t, a.SaveSettings(ctx, s))

	got, err := a.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
	assert.Equal(t, 5, got.Stats.DailyGoal)
}

func TestAdapter_LoadSettingsLegacyFallback(t *testing.T) {
	ctx := context.Background()
	a := newFallbackOnlyAdapter(t, 0)

	// Only legacy keys present, no consolidated blob.
	require.NoError(t, a.Save(ctx, KeyTheme, []byte("dark")))
	require.NoError(t, a.Save(ctx, KeyViewMode, []byte("list")))

	got, err := a.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
	assert.Equal(t, "list", got.ViewMode)
	assert.Equal(t, "library", got.CurrentView)
}

func TestAdapter_BackupRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := newFallbackOnlyAdapter(t, 0)

	_, ok, err := a.LoadBackup(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	saved := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	b := model.Backup{
		Books:     []model.Book{model.NewBook("X", "", model.GenreHorror, "", "", 0, 0, "")},
		LastSaved: saved,
	}
	require.NoError(t, a.SaveBackup(ctx, b))

	got, ok, err := a.LoadBackup(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.LastSaved.Equal(saved))
	require.Len(t, got.Books, 1)
}

func TestAdapter_QuarantineAccumulates(t *testing.T) {
	ctx := context.Background()
	a := newFallbackOnlyAdapter(t, 0)

	require.NoError(t, a.SaveQuarantine(ctx, []model.Book{{ID: "1", Title: "a"}}))
	require.NoError(t, a.SaveQuarantine(ctx, []model.Book{{ID: "2", Title: "b"}}))
	require.NoError(t, a.SaveQuarantine(ctx, nil))

	data, err := a.Load(ctx, KeyQuarantine)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"1"`)
	assert.Contains(t, string(data), `"2"`)
}

func TestAdapter_InfoReportsFallbackQuota(t *testing.T) {
	ctx := context.Background()
	a := newFallbackOnlyAdapter(t, 1024)
	require.NoError(t, a.Save(ctx, "k", []byte("vvvv")))

	info := a.Info(ctx)
	assert.Equal(t, "sqlite", info.Type)
	assert.Equal(t, int64(1024), info.Limit)
	assert.Equal(t, int64(5), info.UsedBytes)
}
