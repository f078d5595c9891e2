package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/pkg/idx"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"
)

// InventoryService moves units between hardware sets and projects.
type InventoryService struct {
	Store         store.Store
	MaxTxAttempts int

	// Now is used for usage timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Movement is the state after a successful checkout or checkin.
type Movement struct {
	ProjectID string
	HWSetName string
	Action    domain.UsageAction
	Qty       int
	Available int // units left in the set
	Holding   int // units the project now holds
}

// TransferLine is one hardware set in a multi-set request.
type TransferLine struct {
	HWSetName string
	Action    domain.UsageAction // checkout or checkin
	Qty       int
}

// TransferResult is the outcome of one line. Err is nil on success.
type TransferResult struct {
	Line     TransferLine
	Movement Movement
	Err      error
}

// Checkout moves qty units from the set into the project. Partial
// fulfilment is never done.
func (s *InventoryService) Checkout(ctx context.Context, projectID, hwSetName string, qty int, username string) (Movement, error) {
	return s.move(ctx, projectID, hwSetName, qty, username, domain.ActionCheckout)
}

// Checkin returns qty units from the project to the set.
func (s *InventoryService) Checkin(ctx context.Context, projectID, hwSetName string, qty int, username string) (Movement, error) {
	return s.move(ctx, projectID, hwSetName, qty, username, domain.ActionCheckin)
}

// Transfer applies each line in order as its own checkout or checkin. Lines
// are independent: a failed line does not undo earlier ones.
func (s *InventoryService) Transfer(ctx context.Context, projectID, username string, lines []TransferLine) ([]TransferResult, error) {
	if len(lines) == 0 {
		return nil, ErrInvalidRequest
	}

	results := make([]TransferResult, 0, len(lines))
	for _, line := range lines {
		res := TransferResult{Line: line}
		switch line.Action {
		case domain.ActionCheckout, domain.ActionCheckin:
			res.Movement, res.Err = s.move(ctx, projectID, line.HWSetName, line.Qty, username, line.Action)
		default:
			res.Err = ErrInvalidRequest
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *InventoryService) move(ctx context.Context, projectID, hwSetName string, qty int, username string, action domain.UsageAction) (Movement, error) {
	log := slogx.FromContext(ctx)

	if qty <= 0 {
		return Movement{}, ErrInvalidQuantity
	}

	var mv Movement
	err := runTx(ctx, s.Store, s.MaxTxAttempts, func(tx store.Tx) error {
		p, err := getProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		h, err := tx.HardwareSets().GetHardwareSet(ctx, hwSetName)
		if errors.Is(err, store.ErrNotFound) {
			return errHardwareNotFound
		}
		if err != nil {
			return err
		}
		if !p.IsMember(username) {
			return ErrNotAMember
		}

		held := p.Holding(hwSetName)
		available := h.Available
		switch action {
		case domain.ActionCheckout:
			if available < qty {
				return ErrInsufficientAvailability
			}
			available -= qty
			held += qty
		case domain.ActionCheckin:
			if held < qty {
				return ErrOverReturn
			}
			available += qty
			held -= qty
		}

		if err := tx.HardwareSets().UpdateAvailable(ctx, h.Name, available, h.Version); err != nil {
			return err
		}
		if err := tx.Projects().BumpVersion(ctx, p.ID, p.Version); err != nil {
			return err
		}
		if err := tx.Holdings().SetHolding(ctx, p.ID, h.Name, held); err != nil {
			return err
		}

		now := s.now()
		if err := tx.Usage().AppendUsage(ctx, domain.UsageRecord{
			ID:         idx.NewAt(now).String(),
			ProjectRef: p.ID,
			ProjectID:  p.ProjectID,
			HWSetName:  h.Name,
			Username:   username,
			Action:     action,
			Qty:        qty,
			Timestamp:  now,
		}); err != nil {
			return err
		}

		mv = Movement{
			ProjectID: p.ProjectID,
			HWSetName: h.Name,
			Action:    action,
			Qty:       qty,
			Available: available,
			Holding:   held,
		}
		return nil
	})
	if err != nil {
		if isDomainError(err) && !errors.Is(err, ErrInternal) {
			log.Warn("inventory request rejected", "action", action, "project_id", projectID, "hw_set", hwSetName, "qty", qty, "err", err)
		}
		return Movement{}, err
	}

	log.Info("inventory moved", "action", action, "project_id", projectID, "hw_set", hwSetName, "qty", qty, "available", mv.Available, "holding", mv.Holding)
	return mv, nil
}

func (s *InventoryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
