package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/compact"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/logging"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

const probeKey = "__capability_probe__"

// Adapter routes reads and writes to the primary store and falls back to
// the quota-bound store when the primary is unavailable. The capability
// probe runs once at construction; a primary that fails the probe is never
// retried for the lifetime of the adapter.
type Adapter struct {
	mu       sync.Mutex
	primary  Backend
	fallback Backend
	usePrim  bool
	log      logging.Logger
}

// NewAdapter probes primary and wires up routing. primary may be nil, in
// which case every operation goes straight to fallback. fallback is
// required.
func NewAdapter(ctx context.Context, primary, fallback Backend, log logging.Logger) (*Adapter, error) {
	if fallback == nil {
		return nil, errors.New("storage: fallback backend is required")
	}
	if log == nil {
		log = logging.Nop()
	}

	a := &Adapter{primary: primary, fallback: fallback, log: log}
	if primary != nil {
		if err := a.probe(ctx, primary); err != nil {
			log.Warn(ctx, "primary store failed capability probe, using fallback only",
				"store", primary.Name(), "error", err.Error())
		} else {
			a.usePrim = true
		}
	}
	return a, nil
}

// probe proves the backend can round-trip a value.
func (a *Adapter) probe(ctx context.Context, b Backend) error {
	payload := []byte(time.Now().UTC().Format(time.RFC3339Nano))
	if err := b.Save(ctx, probeKey, payload); err != nil {
		return err
	}
	got, err := b.Load(ctx, probeKey)
	if err != nil {
		return err
	}
	if string(got) != string(payload) {
		return fmt.Errorf("probe readback mismatch on %s", b.Name())
	}
	return b.Delete(ctx, probeKey)
}

// Primary reports whether the primary store passed its probe and is the
// current write target.
func (a *Adapter) Primary() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.usePrim
}

// active returns the preferred backend and the alternate for one retry.
func (a *Adapter) active() (Backend, Backend) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.usePrim {
		return a.primary, a.fallback
	}
	return a.fallback, nil
}

// demote switches routing to the fallback permanently.
func (a *Adapter) demote(ctx context.Context, cause error) {
	a.mu.Lock()
	was := a.usePrim
	a.usePrim = false
	a.mu.Unlock()
	if was {
		a.log.Warn(ctx, "demoting primary store after failure",
			"store", a.primary.Name(), "error", cause.Error())
	}
}

func (a *Adapter) Save(ctx context.Context, key string, value []byte) error {
	pref, alt := a.active()
	err := pref.Save(ctx, key, value)
	if err == nil {
		return nil
	}
	if alt == nil {
		return err
	}
	a.demote(ctx, err)
	return alt.Save(ctx, key, value)
}

func (a *Adapter) Load(ctx context.Context, key string) ([]byte, error) {
	pref, alt := a.active()
	data, err := pref.Load(ctx, key)
	if err == nil {
		// A missing key on the primary may still exist on the fallback,
		// left over from a session that ran in degraded mode.
		if data == nil && alt != nil {
			return alt.Load(ctx, key)
		}
		return data, nil
	}
	if alt == nil {
		return nil, err
	}
	a.demote(ctx, err)
	return alt.Load(ctx, key)
}

func (a *Adapter) Delete(ctx context.Context, key string) error {
	pref, alt := a.active()
	err := pref.Delete(ctx, key)
	if alt != nil {
		// Keep both stores consistent for deletes.
		if altErr := alt.Delete(ctx, key); err == nil {
			err = altErr
		}
	}
	return err
}

func (a *Adapter) Close() error {
	var errs []string
	if a.primary != nil {
		if err := a.primary.Close(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := a.fallback.Close(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("storage close: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (a *Adapter) Name() string {
	if a.Primary() {
		return a.primary.Name()
	}
	return a.fallback.Name()
}

// SaveBooks writes the document. When the write lands on the fallback
// store the document is first reduced under the fallback compaction
// policy so it fits the quota.
func (a *Adapter) SaveBooks(ctx context.Context, books []model.Book) error {
	// Write the primary directly so a mid-save failure retries on the
	// fallback with the compacted payload, never the full one.
	if a.Primary() {
		data, err := json.Marshal(books)
		if err != nil {
			return fmt.Errorf("encode books: %w", err)
		}
		err = a.primary.Save(ctx, KeyBooks, data)
		if err == nil {
			return nil
		}
		a.demote(ctx, err)
	}
	reduced := compact.FallbackPolicy().Apply(books)
	data, err := json.Marshal(reduced)
	if err != nil {
		return fmt.Errorf("encode compacted books: %w", err)
	}
	return a.fallback.Save(ctx, KeyBooks, data)
}

// LoadBooks reads and decodes the document. A missing document returns
// (nil, nil); a present but undecodable one returns an error so the
// caller can fall back to the backup.
func (a *Adapter) LoadBooks(ctx context.Context) ([]model.Book, error) {
	data, err := a.Load(ctx, KeyBooks)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var books []model.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

// SaveSettings writes the consolidated settings blob.
func (a *Adapter) SaveSettings(ctx context.Context, s model.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return a.Save(ctx, KeySettings, data)
}

// LoadSettings reads the consolidated settings blob. When absent it
// rebuilds settings from the legacy per-field keys, and defaults for
// whatever those do not cover.
func (a *Adapter) LoadSettings(ctx context.Context) (model.Settings, error) {
	s := model.DefaultSettings()

	data, err := a.Load(ctx, KeySettings)
	if err != nil {
		return s, err
	}
	if data != nil {
		if err := json.Unmarshal(data, &s); err != nil {
			return model.DefaultSettings(), fmt.Errorf("decode settings: %w", err)
		}
		return s, nil
	}

	// Legacy layout stored display preferences under individual keys.
	if v, err := a.Load(ctx, KeyTheme); err == nil && len(v) > 0 {
		s.Theme = string(v)
	}
	if v, err := a.Load(ctx, KeyViewMode); err == nil && len(v) > 0 {
		s.ViewMode = string(v)
	}
	if v, err := a.Load(ctx, KeyCurrentView); err == nil && len(v) > 0 {
		s.CurrentView = string(v)
	}
	return s, nil
}

// SaveBackup writes the backup document with its timestamp.
func (a *Adapter) SaveBackup(ctx context.Context, b model.Backup) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return a.Save(ctx, KeyBackup, data)
}

// LoadBackup reads the backup document. Missing returns a zero Backup
// and ok=false.
func (a *Adapter) LoadBackup(ctx context.Context) (model.Backup, bool, error) {
	data, err := a.Load(ctx, KeyBackup)
	if err != nil || data == nil {
		return model.Backup{}, false, err
	}
	var b model.Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return model.Backup{}, false, fmt.Errorf("decode backup: %w", err)
	}
	return b, true, nil
}

// SaveQuarantine appends books that failed integrity checks to the
// quarantine key so nothing is silently discarded.
func (a *Adapter) SaveQuarantine(ctx context.Context, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}
	existing, _ := a.Load(ctx, KeyQuarantine)
	var all []model.Book
	if existing != nil {
		// A corrupt quarantine blob is replaced rather than grown.
		_ = json.Unmarshal(existing, &all)
	}
	all = append(all, books...)
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode quarantine: %w", err)
	}
	return a.Save(ctx, KeyQuarantine, data)
}

// Info reports which store is active and its usage where known.
func (a *Adapter) Info(ctx context.Context) Info {
	info := Info{Type: a.Name()}
	if a.Primary() {
		if b, ok := a.primary.(*BadgerStore); ok {
			info.UsedBytes = b.Sizes()
		}
		return info
	}
	if s, ok := a.fallback.(*SQLiteStore); ok {
		info.Limit = s.Quota()
		if used, err := s.Used(ctx); err == nil {
			info.UsedBytes = used
		}
	}
	return info
}
