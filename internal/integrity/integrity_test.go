package integrity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

type fakeDoc struct {
	books  []model.Book
	resets int
}

func (d *fakeDoc) Books(context.Context) []model.Book {
	return model.CloneBooks(d.books)
}

func (d *fakeDoc) Reset(_ context.Context, books []model.Book) {
	d.resets++
	d.books = books
}

type fakeCoord struct {
	persisted   [][]model.Book
	persistErr  error
	snapshots   int
	quarantined []model.Book
	emergencies int
}

func (c *fakeCoord) Persist(_ context.Context, books []model.Book) error {
	if c.persistErr != nil {
		return c.persistErr
	}
	c.persisted = append(c.persisted, books)
	return nil
}

func (c *fakeCoord) Snapshot(context.Context, []model.Book) error {
	c.snapshots++
	return nil
}

func (c *fakeCoord) Quarantine(_ context.Context, books []model.Book) error {
	c.quarantined = append(c.quarantined, books...)
	return nil
}

func (c *fakeCoord) Emergency(context.Context, []model.Book) {
	c.emergencies++
}

type fakeStore struct {
	books    []model.Book
	loadErr  error
	backup   *model.Backup
	backupOK bool
}

func (s *fakeStore) LoadBooks(context.Context) ([]model.Book, error) {
	return s.books, s.loadErr
}

func (s *fakeStore) LoadBackup(context.Context) (model.Backup, bool, error) {
	if !s.backupOK {
		return model.Backup{}, false, nil
	}
	return *s.backup, true, nil
}

func goodBook() model.Book {
	return model.NewBook("Boek", "A", model.GenreFantasy, model.StatusDraft, "", 0, 0, "")
}

func TestChecker_HealthyCycleDoesNothing(t *testing.T) {
	b := goodBook()
	doc := &fakeDoc{books: []model.Book{b}}
	coord := &fakeCoord{}
	now := time.Now()
	store := &fakeStore{
		books:    []model.Book{b},
		backup:   &model.Backup{Books: []model.Book{b}, LastSaved: now},
		backupOK: true,
	}
	c := NewChecker(doc, coord, store, nil, WithClock(func() time.Time { return now }))

	rep := c.Check(context.Background())
	assert.Equal(t, 1, rep.Checked)
	assert.Zero(t, rep.Quarantined)
	assert.False(t, rep.Repersisted)
	assert.False(t, rep.BackupRenewed)
	assert.Zero(t, doc.resets)
	assert.Empty(t, coord.persisted)
}

func TestChecker_QuarantinesMalformedAndResets(t *testing.T) {
	good := goodBook()
	doc := &fakeDoc{books: []model.Book{good, {ID: "", Title: "broken"}}}
	coord := &fakeCoord{}
	store := &fakeStore{books: []model.Book{good}}
	c := NewChecker(doc, coord, store, nil)

	rep := c.Check(context.Background())
	assert.Equal(t, 1, rep.Quarantined)
	assert.Len(t, coord.quarantined, 1)
	assert.Equal(t, 1, doc.resets)
	require.Len(t, doc.books, 1)
	assert.Equal(t, good.ID, doc.books[0].ID)
}

func TestChecker_RepersistsWhenStoredCopyUnreadable(t *testing.T) {
	b := goodBook()
	doc := &fakeDoc{books: []model.Book{b}}
	coord := &fakeCoord{}
	store := &fakeStore{loadErr: errors.New("decode books: bad json")}
	c := NewChecker(doc, coord, store, nil)

	rep := c.Check(context.Background())
	assert.True(t, rep.Repersisted)
	require.Len(t, coord.persisted, 1)
	assert.Len(t, coord.persisted[0], 1)
}

func TestChecker_RepersistsWhenStoredCopyOutOfSync(t *testing.T) {
	b := goodBook()
	doc := &fakeDoc{books: []model.Book{b}}
	coord := &fakeCoord{}
	store := &fakeStore{books: nil}
	c := NewChecker(doc, coord, store, nil)

	rep := c.Check(context.Background())
	assert.True(t, rep.Repersisted)
}

func TestChecker_EmergencySaveWhenRepersistFails(t *testing.T) {
	doc := &fakeDoc{books: []model.Book{goodBook()}}
	coord := &fakeCoord{persistErr: errors.New("verify failed")}
	store := &fakeStore{loadErr: errors.New("gone")}
	c := NewChecker(doc, coord, store, nil)

	c.Check(context.Background())
	assert.Equal(t, 1, coord.emergencies)
}

func TestChecker_RenewsMissingBackup(t *testing.T) {
	b := goodBook()
	doc := &fakeDoc{books: []model.Book{b}}
	coord := &fakeCoord{}
	store := &fakeStore{books: []model.Book{b}}
	c := NewChecker(doc, coord, store, nil)

	rep := c.Check(context.Background())
	assert.True(t, rep.BackupRenewed)
	assert.Equal(t, 1, coord.snapshots)
}

func TestChecker_RenewsStaleBackup(t *testing.T) {
	b := goodBook()
	now := time.Now()
	doc := &fakeDoc{books: []model.Book{b}}
	coord := &fakeCoord{}
	store := &fakeStore{
		books:    []model.Book{b},
		backup:   &model.Backup{Books: []model.Book{b}, LastSaved: now.Add(-time.Hour)},
		backupOK: true,
	}
	c := NewChecker(doc, coord, store, nil, WithClock(func() time.Time { return now }))

	rep := c.Check(context.Background())
	assert.True(t, rep.BackupRenewed)
}

func TestChecker_FreshBackupLeftAlone(t *testing.T) {
	b := goodBook()
	now := time.Now()
	doc := &fakeDoc{books: []model.Book{b}}
	coord := &fakeCoord{}
	store := &fakeStore{
		books:    []model.Book{b},
		backup:   &model.Backup{Books: []model.Book{b}, LastSaved: now.Add(-time.Minute)},
		backupOK: true,
	}
	c := NewChecker(doc, coord, store, nil, WithClock(func() time.Time { return now }))

	rep := c.Check(context.Background())
	assert.False(t, rep.BackupRenewed)
	assert.Zero(t, coord.snapshots)
}

type panickyStore struct{ fakeStore }

func (panickyStore) LoadBooks(context.Context) ([]model.Book, error) {
	panic("corrupted page")
}

func TestChecker_RecoversFromPanic(t *testing.T) {
	doc := &fakeDoc{books: []model.Book{goodBook()}}
	coord := &fakeCoord{}
	c := NewChecker(doc, coord, &panickyStore{}, nil)

	require.NotPanics(t, func() { c.Check(context.Background()) })
	assert.Equal(t, 1, coord.emergencies)
}

func TestChecker_RunStopsOnCancel(t *testing.T) {
	b := goodBook()
	now := time.Now()
	doc := &fakeDoc{books: []model.Book{b}}
	coord := &fakeCoord{}
	store := &fakeStore{
		books:    []model.Book{b},
		backup:   &model.Backup{Books: []model.Book{b}, LastSaved: now},
		backupOK: true,
	}
	c := NewChecker(doc, coord, store, nil,
		WithInterval(5*time.Millisecond),
		WithClock(func() time.Time { return now }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("checker did not stop after cancel")
	}
}
