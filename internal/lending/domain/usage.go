package domain

import "time"

type UsageAction string

const (
	ActionCheckout UsageAction = "checkout"
	ActionCheckin  UsageAction = "checkin"

	// ActionReturn marks units handed back automatically when a project is
	// deleted.
	ActionReturn UsageAction = "return"
)

// UsageRecord is one entry in the append-only usage log. Records are never
// updated or deleted, including when their project is.
type UsageRecord struct {
	ID         string // ULID, sorts by creation time
	ProjectRef string // internal project id
	ProjectID  string // current public project id; the one written with the record once the project is gone
	HWSetName  string
	Username   string
	Action     UsageAction
	Qty        int
	Timestamp  time.Time
}
