package domain

import (
	"slices"
	"time"
)

// Project groups users who share hardware holdings.
//
// ID is the internal key referenced by members, holdings and usage rows and
// never changes. ProjectID is the public identifier users see and may be
// changed by the owner.
type Project struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	Owner       string
	Members     []string       // sorted, always includes Owner
	Holdings    map[string]int // hardware set name -> units held, zero entries omitted
	Version     int64
	CreatedAt   time.Time
}

func (p Project) IsMember(username string) bool {
	return slices.Contains(p.Members, username)
}

func (p Project) IsOwner(username string) bool {
	return p.Owner == username
}

// Holding returns the units of set held by the project.
func (p Project) Holding(set string) int {
	return p.Holdings[set]
}
