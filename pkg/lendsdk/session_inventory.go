package lendsdk

import (
	"context"
	"net/http"
	"strconv"
)

// CreateHardwareSet registers a new set. Requires hardware:admin.
func (s *Session) CreateHardwareSet(ctx context.Context, name string, capacity int) (*HardwareSet, error) {
	var out HardwareSetResponse
	err := s.do(ctx, http.MethodPost, "/v1/hardware", CreateHardwareSetRequest{Name: name, Capacity: capacity}, &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out.HardwareSet, nil
}

// ListHardware returns every set ordered by name.
func (s *Session) ListHardware(ctx context.Context) ([]HardwareSet, error) {
	var out HardwareListResponse
	if err := s.do(ctx, http.MethodGet, "/v1/hardware", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.HardwareSets, nil
}

// GetInventory returns every set with per-project holdings. Requires
// hardware:admin.
func (s *Session) GetInventory(ctx context.Context) ([]SetInventory, error) {
	var out InventoryResponse
	if err := s.do(ctx, http.MethodGet, "/v1/inventory", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Inventory, nil
}

func (s *Session) GetHardwareSet(ctx context.Context, name string) (*HardwareSet, error) {
	var out HardwareSetResponse
	if err := s.do(ctx, http.MethodGet, hardwarePath(name), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.HardwareSet, nil
}

// CreateProject creates a project owned by the session user.
func (s *Session) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var out ProjectResponse
	if err := s.do(ctx, http.MethodPost, "/v1/projects", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

// ListProjects returns the projects the session user belongs to.
func (s *Session) ListProjects(ctx context.Context) ([]Project, error) {
	var out ProjectListResponse
	if err := s.do(ctx, http.MethodGet, "/v1/projects", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

// GetProject returns a project the session user is a member of.
func (s *Session) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var out ProjectResponse
	if err := s.do(ctx, http.MethodGet, projectPath(projectID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

// UpdateProject changes the project id, name or description. Owner only.
func (s *Session) UpdateProject(ctx context.Context, projectID string, req UpdateProjectRequest) (*Project, error) {
	var out ProjectResponse
	if err := s.do(ctx, http.MethodPatch, projectPath(projectID), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

// DeleteProject returns the project's holdings and deletes it. Owner only.
func (s *Session) DeleteProject(ctx context.Context, projectID string) error {
	return s.do(ctx, http.MethodDelete, projectPath(projectID), nil, nil, http.StatusOK)
}

func (s *Session) JoinProject(ctx context.Context, projectID string) error {
	return s.do(ctx, http.MethodPost, projectPath(projectID, "join"), nil, nil, http.StatusOK)
}

func (s *Session) LeaveProject(ctx context.Context, projectID string) error {
	return s.do(ctx, http.MethodPost, projectPath(projectID, "leave"), nil, nil, http.StatusOK)
}

// InviteUser adds username to the project. Owner only.
func (s *Session) InviteUser(ctx context.Context, projectID, username string) error {
	return s.do(ctx, http.MethodPost, projectPath(projectID, "invites"), InviteRequest{Username: username}, nil, http.StatusOK)
}

// Checkout moves qty units of hwSet into the project.
func (s *Session) Checkout(ctx context.Context, projectID, hwSet string, qty int) (*Movement, error) {
	return s.move(ctx, projectID, "checkout", hwSet, qty)
}

// Checkin returns qty units of hwSet from the project.
func (s *Session) Checkin(ctx context.Context, projectID, hwSet string, qty int) (*Movement, error) {
	return s.move(ctx, projectID, "checkin", hwSet, qty)
}

func (s *Session) move(ctx context.Context, projectID, action, hwSet string, qty int) (*Movement, error) {
	var out MovementResponse
	err := s.do(ctx, http.MethodPost, projectPath(projectID, action), InventoryRequest{HWSet: hwSet, Qty: qty}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out.Movement, nil
}

// Transfer applies several checkout/checkin lines. Each line succeeds or
// fails on its own; inspect the per-line results.
func (s *Session) Transfer(ctx context.Context, projectID string, lines []TransferLine) ([]TransferResult, error) {
	var out TransferResponse
	err := s.do(ctx, http.MethodPost, projectPath(projectID, "transfers"), TransferRequest{Lines: lines}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return out.Results, nil
}

// GetUsage returns the project's usage history, newest first. A zero limit
// uses the server default.
func (s *Session) GetUsage(ctx context.Context, projectID string, limit int) ([]UsageRecord, error) {
	path := projectPath(projectID, "usage")
	if limit != 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var out UsageResponse
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Records, nil
}
