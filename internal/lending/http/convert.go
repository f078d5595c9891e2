package http

import (
	"maps"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/service"
	"github.com/aussiebroadwan/hwlend/pkg/lendsdk"
)

func toUser(u domain.User) lendsdk.User {
	return lendsdk.User{
		Username:   u.Username,
		Email:      u.Email,
		Role:       string(u.Role),
		MFAEnabled: u.MFAEnabled,
		CreatedAt:  u.CreatedAt,
	}
}

func toHardwareSet(h domain.HardwareSet) lendsdk.HardwareSet {
	return lendsdk.HardwareSet{Name: h.Name, Capacity: h.Capacity, Available: h.Available}
}

func toSetInventory(i service.SetInventory) lendsdk.SetInventory {
	holdings := map[string]int{}
	maps.Copy(holdings, i.Holdings)
	return lendsdk.SetInventory{
		Name:       i.Name,
		Capacity:   i.Capacity,
		Available:  i.Available,
		CheckedOut: i.CheckedOut(),
		Holdings:   holdings,
	}
}

func toProject(p domain.Project) lendsdk.Project {
	members := p.Members
	if members == nil {
		members = []string{}
	}
	holdings := map[string]int{}
	maps.Copy(holdings, p.Holdings)

	return lendsdk.Project{
		ProjectID:   p.ProjectID,
		Name:        p.Name,
		Description: p.Description,
		Owner:       p.Owner,
		Members:     members,
		Holdings:    holdings,
		CreatedAt:   p.CreatedAt,
	}
}

func toMovement(m service.Movement) lendsdk.Movement {
	return lendsdk.Movement{
		ProjectID: m.ProjectID,
		HWSet:     m.HWSetName,
		Action:    string(m.Action),
		Qty:       m.Qty,
		Available: m.Available,
		Holding:   m.Holding,
	}
}

func toUsageRecord(r domain.UsageRecord) lendsdk.UsageRecord {
	return lendsdk.UsageRecord{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		HWSet:     r.HWSetName,
		Username:  r.Username,
		Action:    string(r.Action),
		Qty:       r.Qty,
		Timestamp: r.Timestamp,
	}
}
