package service

import (
	"context"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
)

const (
	DefaultUsageLimit = 50
	MaxUsageLimit     = 500
)

// UsageService reads the usage log.
type UsageService struct {
	Store store.Store
}

// GetUsageHistory returns up to limit records for the project, newest first.
// A zero limit means DefaultUsageLimit; other values are clamped to
// [1, MaxUsageLimit].
func (s *UsageService) GetUsageHistory(ctx context.Context, projectID string, limit int) ([]domain.UsageRecord, error) {
	p, err := getProject(ctx, s.Store, projectID)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, internal(err)
	}
	return s.list(ctx, p, limit)
}

// GetUsageHistoryForMember is GetUsageHistory restricted to members.
func (s *UsageService) GetUsageHistoryForMember(ctx context.Context, projectID, username string, limit int) ([]domain.UsageRecord, error) {
	p, err := getProject(ctx, s.Store, projectID)
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, internal(err)
	}
	if !p.IsMember(username) {
		return nil, ErrNotAMember
	}
	return s.list(ctx, p, limit)
}

func (s *UsageService) list(ctx context.Context, p domain.Project, limit int) ([]domain.UsageRecord, error) {
	records, err := s.Store.Usage().ListUsage(ctx, p.ID, clampLimit(limit))
	if err != nil {
		return nil, internal(err)
	}
	if records == nil {
		records = []domain.UsageRecord{}
	}
	return records, nil
}

func clampLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultUsageLimit
	case limit < 1:
		return 1
	case limit > MaxUsageLimit:
		return MaxUsageLimit
	default:
		return limit
	}
}
