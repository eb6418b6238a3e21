package domain

import "time"

type Application struct {
	ID          int64
	Name        string
	Description string
	Creator     string
	WorkspaceID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Tag struct {
	ID          int64
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
}

// ApplicationTagLink is one element of the application<->tag relation. The
// relation is a set: at most one link exists per (ApplicationID, TagID) pair.
type ApplicationTagLink struct {
	ApplicationID int64
	TagID         int64
	AssignedAt    time.Time
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Recommendation struct {
	ID               int64
	Title            string
	Description      string
	PotentialSavings *float64
	Priority         Priority
	Category         string
	IsActive         bool
	CreatedAt        time.Time
}
