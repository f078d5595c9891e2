package http

import (
	"net/http"

	"github.com/aussiebroadwan/hwlend/internal/lending/service"
	"github.com/aussiebroadwan/hwlend/pkg/httpx"
	"github.com/aussiebroadwan/hwlend/pkg/lendsdk"
)

// ProjectsHandler serves project lifecycle and membership. The acting user is
// always the token subject.
type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

// HandleCreate handles POST /v1/projects
//
//	@Summary		Create project
//	@Description	Creates a project owned by the caller, who becomes its first member.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lendsdk.CreateProjectRequest	true	"Project"
//	@Success		201		{object}	lendsdk.ProjectResponse
//	@Failure		400		{object}	lendsdk.Envelope	"invalid_request"
//	@Failure		409		{object}	lendsdk.Envelope	"duplicate_id"
//	@Router			/v1/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req lendsdk.CreateProjectRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	p, err := h.ProjectService.CreateProject(r.Context(), req.ProjectID, req.Name, req.Description, username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, lendsdk.ProjectResponse{Envelope: success("project created"), Project: toProject(p)})
}

// HandleList handles GET /v1/projects
//
//	@Summary		List my projects
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	lendsdk.ProjectListResponse
//	@Router			/v1/projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	projects, err := h.ProjectService.ListProjectsForUser(r.Context(), username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]lendsdk.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProject(p))
	}
	httpx.WriteJSON(w, http.StatusOK, lendsdk.ProjectListResponse{Envelope: success(""), Projects: out})
}

// HandleGet handles GET /v1/projects/{id}
//
//	@Summary		Get project
//	@Description	Members only.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	lendsdk.ProjectResponse
//	@Failure		403	{object}	lendsdk.Envelope	"not_a_member"
//	@Failure		404	{object}	lendsdk.Envelope	"not_found"
//	@Router			/v1/projects/{id} [get].
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := h.ProjectService.GetProjectForMember(r.Context(), r.PathValue("id"), username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lendsdk.ProjectResponse{Envelope: success(""), Project: toProject(p)})
}

// HandleUpdate handles PATCH /v1/projects/{id}
//
//	@Summary		Update project
//	@Description	Renames the project, changes its id or description. Fields left out are unchanged. Owner only.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Project id"
//	@Param			request	body		lendsdk.UpdateProjectRequest	true	"Fields to change"
//	@Success		200		{object}	lendsdk.ProjectResponse
//	@Failure		400		{object}	lendsdk.Envelope	"invalid_request"
//	@Failure		403		{object}	lendsdk.Envelope	"not_owner"
//	@Failure		404		{object}	lendsdk.Envelope	"not_found"
//	@Failure		409		{object}	lendsdk.Envelope	"duplicate_id"
//	@Router			/v1/projects/{id} [patch].
func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req lendsdk.UpdateProjectRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	p, err := h.ProjectService.UpdateProject(r.Context(), r.PathValue("id"), username, service.ProjectUpdate{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lendsdk.ProjectResponse{Envelope: success("project updated"), Project: toProject(p)})
}

// HandleDelete handles DELETE /v1/projects/{id}
//
//	@Summary		Delete project
//	@Description	Returns every holding to its hardware set and removes the project. Owner only.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	lendsdk.Envelope
//	@Failure		403	{object}	lendsdk.Envelope	"not_owner"
//	@Failure		404	{object}	lendsdk.Envelope	"not_found"
//	@Router			/v1/projects/{id} [delete].
func (h *ProjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.ProjectService.DeleteProject(r.Context(), r.PathValue("id"), username); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, success("project deleted"))
}

// HandleJoin handles POST /v1/projects/{id}/join
//
//	@Summary		Join project
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	lendsdk.Envelope
//	@Failure		404	{object}	lendsdk.Envelope	"not_found"
//	@Failure		409	{object}	lendsdk.Envelope	"already_member"
//	@Router			/v1/projects/{id}/join [post].
func (h *ProjectsHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.ProjectService.JoinProject(r.Context(), r.PathValue("id"), username); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, success("joined project"))
}

// HandleLeave handles POST /v1/projects/{id}/leave
//
//	@Summary		Leave project
//	@Description	Holdings stay with the project. The owner cannot leave.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	lendsdk.Envelope
//	@Failure		404	{object}	lendsdk.Envelope	"not_found"
//	@Failure		409	{object}	lendsdk.Envelope	"owner_cannot_leave"
//	@Router			/v1/projects/{id}/leave [post].
func (h *ProjectsHandler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.ProjectService.LeaveProject(r.Context(), r.PathValue("id"), username); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, success("left project"))
}

// HandleInvite handles POST /v1/projects/{id}/invites
//
//	@Summary		Invite user
//	@Description	Adds the user to the project directly. Owner only.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Project id"
//	@Param			request	body		lendsdk.InviteRequest	true	"Invitee"
//	@Success		200		{object}	lendsdk.Envelope
//	@Failure		403		{object}	lendsdk.Envelope	"not_owner"
//	@Failure		404		{object}	lendsdk.Envelope	"not_found, user_not_found"
//	@Failure		409		{object}	lendsdk.Envelope	"already_member"
//	@Router			/v1/projects/{id}/invites [post].
func (h *ProjectsHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req lendsdk.InviteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := h.ProjectService.InviteUser(r.Context(), r.PathValue("id"), req.Username, username); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, success("user invited"))
}
