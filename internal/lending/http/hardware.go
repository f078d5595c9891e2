package http

import (
	"net/http"

	"github.com/aussiebroadwan/hwlend/internal/lending/service"
	"github.com/aussiebroadwan/hwlend/pkg/httpx"
	"github.com/aussiebroadwan/hwlend/pkg/lendsdk"
)

type HardwareHandler struct {
	HardwareService *service.HardwareService
}

// HandleCreate handles POST /v1/hardware
//
//	@Summary		Create hardware set
//	@Tags			Hardware
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lendsdk.CreateHardwareSetRequest	true	"Name and capacity"
//	@Success		201		{object}	lendsdk.HardwareSetResponse
//	@Failure		400		{object}	lendsdk.Envelope	"invalid_request, invalid_capacity"
//	@Failure		403		{object}	lendsdk.Envelope	"insufficient_scope"
//	@Failure		409		{object}	lendsdk.Envelope	"duplicate_name"
//	@Router			/v1/hardware [post].
func (h *HardwareHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req lendsdk.CreateHardwareSetRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	set, err := h.HardwareService.CreateHardwareSet(r.Context(), req.Name, req.Capacity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, lendsdk.HardwareSetResponse{
		Envelope:    success("hardware set created"),
		HardwareSet: toHardwareSet(set),
	})
}

// HandleList handles GET /v1/hardware
//
//	@Summary		List hardware sets
//	@Tags			Hardware
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	lendsdk.HardwareListResponse
//	@Failure		401	{object}	lendsdk.Envelope	"unauthorized"
//	@Router			/v1/hardware [get].
func (h *HardwareHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	sets, err := h.HardwareService.ListHardware(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]lendsdk.HardwareSet, 0, len(sets))
	for _, s := range sets {
		out = append(out, toHardwareSet(s))
	}
	httpx.WriteJSON(w, http.StatusOK, lendsdk.HardwareListResponse{Envelope: success(""), HardwareSets: out})
}

// HandleInventory handles GET /v1/inventory
//
//	@Summary		Inventory overview
//	@Description	Every hardware set with capacity, availability and the units each project holds.
//	@Tags			Hardware
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	lendsdk.InventoryResponse
//	@Failure		403	{object}	lendsdk.Envelope	"insufficient_scope"
//	@Router			/v1/inventory [get].
func (h *HardwareHandler) HandleInventory(w http.ResponseWriter, r *http.Request) {
	inventory, err := h.HardwareService.Inventory(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]lendsdk.SetInventory, 0, len(inventory))
	for _, inv := range inventory {
		out = append(out, toSetInventory(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, lendsdk.InventoryResponse{Envelope: success(""), Inventory: out})
}

// HandleGet handles GET /v1/hardware/{name}
//
//	@Summary		Get hardware set
//	@Tags			Hardware
//	@Security		BearerAuth
//	@Produce		json
//	@Param			name	path		string	true	"Hardware set name"
//	@Success		200		{object}	lendsdk.HardwareSetResponse
//	@Failure		404		{object}	lendsdk.Envelope	"not_found"
//	@Router			/v1/hardware/{name} [get].
func (h *HardwareHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	set, err := h.HardwareService.GetHardwareSet(r.Context(), r.PathValue("name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lendsdk.HardwareSetResponse{Envelope: success(""), HardwareSet: toHardwareSet(set)})
}
