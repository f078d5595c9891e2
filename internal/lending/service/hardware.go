package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"
)

// HardwareService is the registry of hardware sets. Stock levels are only
// moved by InventoryService and project deletion.
type HardwareService struct {
	Store store.Store
}

// CreateHardwareSet registers a new set with every unit available.
func (s *HardwareService) CreateHardwareSet(ctx context.Context, name string, capacity int) (domain.HardwareSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.HardwareSet{}, ErrInvalidRequest
	}
	if capacity < 1 {
		return domain.HardwareSet{}, ErrInvalidCapacity
	}

	err := s.Store.HardwareSets().CreateHardwareSet(ctx, domain.HardwareSet{
		Name:      name,
		Capacity:  capacity,
		Available: capacity,
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.HardwareSet{}, ErrDuplicateName
	case err != nil:
		return domain.HardwareSet{}, internal(err)
	}

	slogx.FromContext(ctx).Info("hardware set created", "hw_set", name, "capacity", capacity)
	return s.GetHardwareSet(ctx, name)
}

// ListHardware returns a snapshot of every set, ordered by name.
func (s *HardwareService) ListHardware(ctx context.Context) ([]domain.HardwareSet, error) {
	sets, err := s.Store.HardwareSets().ListHardwareSets(ctx)
	if err != nil {
		return nil, internal(err)
	}
	if sets == nil {
		sets = []domain.HardwareSet{}
	}
	return sets, nil
}

// SetInventory is one hardware set with the units each project holds,
// keyed by public project id.
type SetInventory struct {
	domain.HardwareSet
	Holdings map[string]int
}

// CheckedOut is the number of units currently held by projects.
func (i SetInventory) CheckedOut() int {
	n := 0
	for _, qty := range i.Holdings {
		n += qty
	}
	return n
}

// Inventory reports every set with its per-project holdings. Sets and
// projects are read in one transaction, so for each set available plus the
// holdings equals capacity.
func (s *HardwareService) Inventory(ctx context.Context) ([]SetInventory, error) {
	var out []SetInventory
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		sets, err := tx.HardwareSets().ListHardwareSets(ctx)
		if err != nil {
			return err
		}
		projects, err := tx.Projects().ListAll(ctx)
		if err != nil {
			return err
		}

		out = make([]SetInventory, 0, len(sets))
		for _, h := range sets {
			inv := SetInventory{HardwareSet: h, Holdings: map[string]int{}}
			for _, p := range projects {
				if qty := p.Holding(h.Name); qty > 0 {
					inv.Holdings[p.ProjectID] = qty
				}
			}
			out = append(out, inv)
		}
		return nil
	})
	if err != nil {
		return nil, internal(err)
	}
	return out, nil
}

func (s *HardwareService) GetHardwareSet(ctx context.Context, name string) (domain.HardwareSet, error) {
	h, err := s.Store.HardwareSets().GetHardwareSet(ctx, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.HardwareSet{}, errHardwareNotFound
	case err != nil:
		return domain.HardwareSet{}, internal(err)
	}
	return h, nil
}
