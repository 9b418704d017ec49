package audit

import "time"

// Entry is one recorded mutation. old/new values are JSON snapshots.
type Entry struct {
	ID          string
	Action      string
	Module      string
	EntityType  string
	EntityID    string
	PerformedBy string
	OldValue    map[string]interface{}
	NewValue    map[string]interface{}
	IPAddress   *string
	UserAgent   *string
	CreatedAt   time.Time
}

type Filter struct {
	Module      *string
	Action      *string
	PerformedBy *string
	From        *time.Time
	To          *time.Time
	Page        int
	Limit       int
}
