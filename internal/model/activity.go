package model

import "time"

// ActivityType tags an entry in the recent-activity feed.
type ActivityType string

const (
	ActivityCreate  ActivityType = "create"
	ActivityEdit    ActivityType = "edit"
	ActivityDelete  ActivityType = "delete"
	ActivityWrite   ActivityType = "write"
	ActivityPublish ActivityType = "publish"
	ActivityChapter ActivityType = "chapter"
)

// Activity is one feed entry.
type Activity struct {
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
}

// MaxActivities caps the feed; the oldest entries are dropped beyond it.
const MaxActivities = 50

// AppendActivity adds an entry to the feed and drops the oldest entries when
// the cap is exceeded.
func AppendActivity(feed []Activity, t ActivityType, description string) []Activity {
	feed = append(feed, Activity{
		Type:        t,
		Description: description,
		Timestamp:   time.Now().UTC(),
	})
	if len(feed) > MaxActivities {
		feed = feed[len(feed)-MaxActivities:]
	}
	return feed
}
