package library

import (
	"context"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

// Summary aggregates the dashboard numbers over the whole library.
type Summary struct {
	TotalBooks  int
	Drafts      int
	InProgress  int
	Published   int
	TotalPages  int
	TotalWords  int
	GenreCounts map[model.Genre]int
}

// Summarize computes the dashboard aggregates.
func (s *Service) Summarize() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{GenreCounts: make(map[model.Genre]int)}
	for _, b := range s.books {
		sum.TotalBooks++
		sum.TotalPages += b.Pages
		sum.GenreCounts[b.Genre]++
		switch b.Status {
		case model.StatusDraft:
			sum.Drafts++
		case model.StatusInProgress:
			sum.InProgress++
		case model.StatusPublished:
			sum.Published++
		}
		for _, ch := range b.Chapters {
			sum.TotalWords += ch.WordCount
		}
	}
	return sum
}

// Stats returns the current writing-goal state.
func (s *Service) Stats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Stats
}

// SetGoals updates the daily and weekly page goals. Values below 1 are
// raised to 1.
func (s *Service) SetGoals(ctx context.Context, daily, weekly int) error {
	if daily < 1 {
		daily = 1
	}
	if weekly < 1 {
		weekly = 1
	}
	s.mu.Lock()
	s.settings.Stats.DailyGoal = daily
	s.settings.Stats.WeeklyGoal = weekly
	s.mu.Unlock()
	return s.saveAll(ctx)
}

// ResetStatistics clears goals progress, the streak and the activity
// feed. Irreversible; callers confirm first.
func (s *Service) ResetStatistics(ctx context.Context) error {
	s.mu.Lock()
	s.settings.Stats = model.DefaultStats()
	s.settings.Activities = []model.Activity{}
	s.mu.Unlock()
	return s.saveAll(ctx)
}

// Activities returns the feed newest-last, as stored.
func (s *Service) Activities() []model.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Activity, len(s.settings.Activities))
	copy(out, s.settings.Activities)
	return out
}

// Settings returns a copy of the persisted settings.
func (s *Service) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.settings
	out.Activities = append([]model.Activity(nil), s.settings.Activities...)
	return out
}

// SetTheme switches between light and dark.
func (s *Service) SetTheme(ctx context.Context, theme string) error {
	s.mu.Lock()
	s.settings.Theme = theme
	s.mu.Unlock()
	return s.saveAll(ctx)
}

// SetViewMode switches between grid and list display.
func (s *Service) SetViewMode(ctx context.Context, mode string) error {
	s.mu.Lock()
	s.settings.ViewMode = mode
	s.mu.Unlock()
	return s.saveAll(ctx)
}

// SetCurrentView switches between the library and dashboard views.
func (s *Service) SetCurrentView(ctx context.Context, view string) error {
	s.mu.Lock()
	s.settings.CurrentView = view
	s.mu.Unlock()
	return s.saveAll(ctx)
}
