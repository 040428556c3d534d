package model

import "time"

// dateLayout is the day granularity used for writing-goal bookkeeping.
const dateLayout = "2006-01-02"

// Stats tracks writing goals and streaks across sessions.
type Stats struct {
	DailyGoal       int    `json:"dailyGoal"`
	WeeklyGoal      int    `json:"weeklyGoal"`
	DailyProgress   int    `json:"dailyProgress"`
	WeeklyProgress  int    `json:"weeklyProgress"`
	WritingStreak   int    `json:"writingStreak"`
	LastWritingDate string `json:"lastWritingDate"`
}

// DefaultStats returns the initial goal configuration.
func DefaultStats() Stats {
	return Stats{DailyGoal: 2, WeeklyGoal: 14}
}

// RecordPages credits written pages against the daily and weekly goals and
// maintains the writing streak: writing on consecutive days extends it, a
// gap resets it to 1, and multiple sessions on one day count once.
func (s *Stats) RecordPages(pages int, now time.Time) {
	today := now.Format(dateLayout)
	prev := s.LastWritingDate

	if prev != today {
		s.DailyProgress = 0
		s.LastWritingDate = today
	}

	s.DailyProgress += pages
	s.WeeklyProgress += pages

	if prev == "" {
		s.WritingStreak = 1
		return
	}
	prevDay, err := time.Parse(dateLayout, prev)
	if err != nil {
		s.WritingStreak = 1
		return
	}
	curDay, _ := time.Parse(dateLayout, today)
	switch days := int(curDay.Sub(prevDay).Hours() / 24); {
	case days == 1:
		s.WritingStreak++
	case days > 1:
		s.WritingStreak = 1
	}
}

// Settings is the persisted UI and goal state stored under the settings key.
type Settings struct {
	Theme       string     `json:"theme"`
	CurrentView string     `json:"currentView"`
	ViewMode    string     `json:"viewMode"`
	Stats       Stats      `json:"stats"`
	Activities  []Activity `json:"activities"`
}

// DefaultSettings returns the state of a fresh installation.
func DefaultSettings() Settings {
	return Settings{
		Theme:       "light",
		CurrentView: "library",
		ViewMode:    "grid",
		Stats:       DefaultStats(),
		Activities:  []Activity{},
	}
}

// Backup is the secondary recovery copy stored under the backup key.
type Backup struct {
	Books     []Book    `json:"books"`
	LastSaved time.Time `json:"lastSaved"`
}

// Export is the full snapshot written by the statistics export.
type Export struct {
	Books      []Book     `json:"books"`
	Stats      Stats      `json:"stats"`
	Activities []Activity `json:"activities"`
	ExportDate time.Time  `json:"exportDate"`
}
