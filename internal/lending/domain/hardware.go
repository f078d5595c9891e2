package domain

import "time"

// HardwareSet is a named pool of identical units. Available never exceeds
// Capacity, and Capacity minus Available equals the sum of every project's
// holding of the set.
type HardwareSet struct {
	Name      string
	Capacity  int
	Available int
	Version   int64
	CreatedAt time.Time
}

// InUse is the number of units currently checked out across all projects.
func (h HardwareSet) InUse() int { return h.Capacity - h.Available }
