package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/pkg/idx"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"
)

// ProjectService manages projects and their membership.
type ProjectService struct {
	Store         store.Store
	MaxTxAttempts int
}

// ProjectUpdate lists the owner-editable fields. Nil fields are left alone.
type ProjectUpdate struct {
	ProjectID   *string
	Name        *string
	Description *string
}

// CreateProject creates a project owned by owner, who becomes its first
// member.
func (s *ProjectService) CreateProject(ctx context.Context, projectID, name, description, owner string) (domain.Project, error) {
	projectID = strings.TrimSpace(projectID)
	name = strings.TrimSpace(name)
	if projectID == "" || name == "" {
		return domain.Project{}, ErrInvalidRequest
	}

	var created domain.Project
	err := runTx(ctx, s.Store, s.MaxTxAttempts, func(tx store.Tx) error {
		if err := requireUser(ctx, tx, owner); err != nil {
			return err
		}

		p := domain.Project{
			ID:          idx.New().String(),
			ProjectID:   projectID,
			Name:        name,
			Description: description,
			Owner:       owner,
		}
		if err := tx.Projects().CreateProject(ctx, p); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateID
			}
			return err
		}
		if err := tx.Members().AddMember(ctx, p.ID, owner); err != nil {
			return err
		}

		var err error
		created, err = getProject(ctx, tx, projectID)
		return err
	})
	if err != nil {
		return domain.Project{}, err
	}

	slogx.FromContext(ctx).Info("project created", "project_id", projectID, "owner", owner)
	return created, nil
}

// JoinProject adds username to the project's members.
func (s *ProjectService) JoinProject(ctx context.Context, projectID, username string) error {
	err := runTx(ctx, s.Store, s.MaxTxAttempts, func(tx store.Tx) error {
		p, err := getProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if err := requireUser(ctx, tx, username); err != nil {
			return err
		}
		return addMember(ctx, tx, p, username)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("joined project", "project_id", projectID, "member", username)
	return nil
}

// LeaveProject removes username from the project. The owner cannot leave, and
// the project's holdings are not touched.
func (s *ProjectService) LeaveProject(ctx context.Context, projectID, username string) error {
	err := runTx(ctx, s.Store, s.MaxTxAttempts, func(tx store.Tx) error {
		p, err := getProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if p.IsOwner(username) {
			return ErrOwnerCannotLeave
		}
		if err := tx.Members().RemoveMember(ctx, p.ID, username); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errMembershipNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("left project", "project_id", projectID, "member", username)
	return nil
}

// RenameProject sets the display name. Owner only.
func (s *ProjectService) RenameProject(ctx context.Context, projectID, newName, requester string) (domain.Project, error) {
	return s.UpdateProject(ctx, projectID, requester, ProjectUpdate{Name: &newName})
}

// ChangeProjectID moves the project to a new public id. ErrDuplicateID when
// newID is taken; the old id stops resolving at once.
func (s *ProjectService) ChangeProjectID(ctx context.Context, oldID, newID, requester string) (domain.Project, error) {
	return s.UpdateProject(ctx, oldID, requester, ProjectUpdate{ProjectID: &newID})
}

// UpdateDescription replaces the description. Owner only.
func (s *ProjectService) UpdateDescription(ctx context.Context, projectID, text, requester string) (domain.Project, error) {
	return s.UpdateProject(ctx, projectID, requester, ProjectUpdate{Description: &text})
}

// UpdateProject applies every set field of u in one transaction. Only the
// owner may edit a project. Members, holdings and usage follow a project id
// change because they reference the internal id.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID, requester string, u ProjectUpdate) (domain.Project, error) {
	if u.ProjectID == nil && u.Name == nil && u.Description == nil {
		return domain.Project{}, ErrInvalidRequest
	}
	if u.ProjectID != nil {
		trimmed := strings.TrimSpace(*u.ProjectID)
		if trimmed == "" {
			return domain.Project{}, ErrInvalidRequest
		}
		u.ProjectID = &trimmed
	}
	if u.Name != nil {
		trimmed := strings.TrimSpace(*u.Name)
		if trimmed == "" {
			return domain.Project{}, ErrInvalidRequest
		}
		u.Name = &trimmed
	}

	var updated domain.Project
	err := runTx(ctx, s.Store, s.MaxTxAttempts, func(tx store.Tx) error {
		p, err := getProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if !p.IsOwner(requester) {
			return ErrNotOwner
		}

		if u.Name != nil && *u.Name != p.Name {
			if err := tx.Projects().UpdateName(ctx, p.ID, *u.Name); err != nil {
				return err
			}
		}
		if u.Description != nil && *u.Description != p.Description {
			if err := tx.Projects().UpdateDescription(ctx, p.ID, *u.Description); err != nil {
				return err
			}
		}
		current := p.ProjectID
		if u.ProjectID != nil && *u.ProjectID != p.ProjectID {
			if err := tx.Projects().UpdateProjectID(ctx, p.ID, *u.ProjectID); err != nil {
				if errors.Is(err, store.ErrAlreadyExists) {
					return ErrDuplicateID
				}
				return err
			}
			current = *u.ProjectID
		}

		updated, err = getProject(ctx, tx, current)
		return err
	})
	if err != nil {
		return domain.Project{}, err
	}

	slogx.FromContext(ctx).Info("project updated", "project_id", updated.ProjectID, "previous_project_id", projectID)
	return updated, nil
}

// InviteUser adds invitee to the project directly. Owner only.
func (s *ProjectService) InviteUser(ctx context.Context, projectID, invitee, requester string) error {
	err := runTx(ctx, s.Store, s.MaxTxAttempts, func(tx store.Tx) error {
		p, err := getProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if !p.IsOwner(requester) {
			return ErrNotOwner
		}
		if err := requireUser(ctx, tx, invitee); err != nil {
			return err
		}
		return addMember(ctx, tx, p, invitee)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user invited", "project_id", projectID, "invitee", invitee)
	return nil
}

// DeleteProject returns every holding to its hardware set and removes the
// project, all in one transaction. Owner only.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID, requester string) error {
	err := runTx(ctx, s.Store, s.MaxTxAttempts, func(tx store.Tx) error {
		p, err := getProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if !p.IsOwner(requester) {
			return ErrNotOwner
		}
		return deleteProject(ctx, tx, p, requester, time.Now())
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("project deleted", "project_id", projectID)
	return nil
}

// ListProjectsForUser returns the projects username belongs to.
func (s *ProjectService) ListProjectsForUser(ctx context.Context, username string) ([]domain.Project, error) {
	projects, err := s.Store.Projects().ListProjectsForUser(ctx, username)
	if err != nil {
		return nil, internal(err)
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, nil
}

// GetProjectDetails returns the full project state.
func (s *ProjectService) GetProjectDetails(ctx context.Context, projectID string) (domain.Project, error) {
	p, err := getProject(ctx, s.Store, projectID)
	if err != nil && !isDomainError(err) {
		return domain.Project{}, internal(err)
	}
	return p, err
}

// GetProjectForMember is GetProjectDetails restricted to project members.
func (s *ProjectService) GetProjectForMember(ctx context.Context, projectID, username string) (domain.Project, error) {
	p, err := s.GetProjectDetails(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if !p.IsMember(username) {
		return domain.Project{}, ErrNotAMember
	}
	return p, nil
}

// getProject loads a project and translates a miss into errProjectNotFound.
func getProject(ctx context.Context, st store.Store, projectID string) (domain.Project, error) {
	p, err := st.Projects().GetProject(ctx, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Project{}, errProjectNotFound
	}
	return p, err
}

func requireUser(ctx context.Context, st store.Store, username string) error {
	_, err := st.Users().GetUser(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func addMember(ctx context.Context, tx store.Tx, p domain.Project, username string) error {
	if p.IsMember(username) {
		return ErrAlreadyMember
	}
	err := tx.Members().AddMember(ctx, p.ID, username)
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrAlreadyMember
	}
	return err
}

// deleteProject hands every holding back to its set, recording a return in
// the usage log, then removes the project. The project version is checked
// first so a concurrent checkout forces a retry instead of losing units.
func deleteProject(ctx context.Context, tx store.Tx, p domain.Project, actor string, now time.Time) error {
	if err := tx.Projects().BumpVersion(ctx, p.ID, p.Version); err != nil {
		return err
	}

	sets := make([]string, 0, len(p.Holdings))
	for name := range p.Holdings {
		sets = append(sets, name)
	}
	slices.Sort(sets)

	for _, name := range sets {
		qty := p.Holdings[name]
		if qty <= 0 {
			continue
		}

		h, err := tx.HardwareSets().GetHardwareSet(ctx, name)
		if err != nil {
			return err
		}
		if err := tx.HardwareSets().UpdateAvailable(ctx, name, h.Available+qty, h.Version); err != nil {
			return err
		}
		if err := tx.Holdings().SetHolding(ctx, p.ID, name, 0); err != nil {
			return err
		}
		if err := tx.Usage().AppendUsage(ctx, domain.UsageRecord{
			ID:         idx.NewAt(now).String(),
			ProjectRef: p.ID,
			ProjectID:  p.ProjectID,
			HWSetName:  name,
			Username:   actor,
			Action:     domain.ActionReturn,
			Qty:        qty,
			Timestamp:  now,
		}); err != nil {
			return err
		}
	}

	return tx.Projects().DeleteProject(ctx, p.ID)
}
