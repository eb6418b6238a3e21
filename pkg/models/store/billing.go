package store

import "time"

// UsageRecord mirrors one row of the billing_usage table. Quantity and price
// travel as floats at this layer; the analytics core converts them to decimals
// before any arithmetic.
type UsageRecord struct {
	ID            string
	WorkspaceID   string
	SKUName       string
	Cloud         string
	UsageDate     time.Time
	UsageUnit     string
	UsageQuantity float64
	UnitPrice     float64
	Metadata      map[string]string
}

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

type ApplicationTag struct {
	ApplicationID int64
	TagID         int64
	AssignedAt    time.Time
}

type Recommendation struct {
	ID               int64
	Title            string
	Description      string
	PotentialSavings *float64
	Priority         string
	Category         string
	IsActive         bool
	CreatedAt        time.Time
}
