package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/service"
	"github.com/aussiebroadwan/hwlend/pkg/httpx"
	"github.com/aussiebroadwan/hwlend/pkg/lendsdk"
)

// maxTransferLines bounds a single transfer request.
const maxTransferLines = 50

// inventoryBody and transferBody mirror lendsdk.InventoryRequest and
// lendsdk.TransferRequest with qty left raw, so a quantity that is not an
// integer is reported as invalid_quantity rather than as a malformed body.
type inventoryBody struct {
	HWSet string          `json:"hw_set"`
	Qty   json.RawMessage `json:"qty"`
}

type transferLineBody struct {
	HWSet  string          `json:"hw_set"`
	Action string          `json:"action"`
	Qty    json.RawMessage `json:"qty"`
}

type transferBody struct {
	Lines []transferLineBody `json:"lines"`
}

// parseQty reports false for strings, fractions and other non-integers.
// A missing or null qty parses as 0, which the service rejects.
func parseQty(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, true
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

type InventoryHandler struct {
	InventoryService *service.InventoryService
	UsageService     *service.UsageService
}

// HandleCheckout handles POST /v1/projects/{id}/checkout
//
//	@Summary		Check out hardware
//	@Description	Moves units from a hardware set into the project. Either the full quantity is granted or nothing is.
//	@Tags			Inventory
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Project id"
//	@Param			request	body		lendsdk.InventoryRequest	true	"Set and quantity"
//	@Success		200		{object}	lendsdk.MovementResponse
//	@Failure		400		{object}	lendsdk.Envelope	"invalid_quantity"
//	@Failure		403		{object}	lendsdk.Envelope	"not_a_member"
//	@Failure		404		{object}	lendsdk.Envelope	"not_found"
//	@Failure		409		{object}	lendsdk.Envelope	"insufficient_availability"
//	@Router			/v1/projects/{id}/checkout [post].
func (h *InventoryHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.InventoryService.Checkout, "checked out")
}

// HandleCheckin handles POST /v1/projects/{id}/checkin
//
//	@Summary		Check in hardware
//	@Description	Returns units from the project to the hardware set.
//	@Tags			Inventory
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Project id"
//	@Param			request	body		lendsdk.InventoryRequest	true	"Set and quantity"
//	@Success		200		{object}	lendsdk.MovementResponse
//	@Failure		400		{object}	lendsdk.Envelope	"invalid_quantity"
//	@Failure		403		{object}	lendsdk.Envelope	"not_a_member"
//	@Failure		404		{object}	lendsdk.Envelope	"not_found"
//	@Failure		409		{object}	lendsdk.Envelope	"over_return"
//	@Router			/v1/projects/{id}/checkin [post].
func (h *InventoryHandler) HandleCheckin(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.InventoryService.Checkin, "checked in")
}

type moveFunc func(ctx context.Context, projectID, hwSetName string, qty int, username string) (service.Movement, error)

func (h *InventoryHandler) move(w http.ResponseWriter, r *http.Request, fn moveFunc, message string) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req inventoryBody
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	qty, ok := parseQty(req.Qty)
	if !ok {
		writeServiceError(w, r, service.ErrInvalidQuantity)
		return
	}

	mv, err := fn(r.Context(), r.PathValue("id"), req.HWSet, qty, username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lendsdk.MovementResponse{Envelope: success(message), Movement: toMovement(mv)})
}

// HandleTransfer handles POST /v1/projects/{id}/transfers
//
//	@Summary		Multi-set transfer
//	@Description	Applies each line as its own checkout or checkin. Lines succeed or fail independently; the response lists every outcome.
//	@Tags			Inventory
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Project id"
//	@Param			request	body		lendsdk.TransferRequest	true	"Lines"
//	@Success		200		{object}	lendsdk.TransferResponse
//	@Failure		400		{object}	lendsdk.Envelope	"invalid_request"
//	@Router			/v1/projects/{id}/transfers [post].
func (h *InventoryHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req transferBody
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if len(req.Lines) > maxTransferLines {
		writeBadRequest(w, "too many lines, at most "+strconv.Itoa(maxTransferLines))
		return
	}

	// A non-integer qty becomes 0 so the line fails with invalid_quantity
	// while the other lines still apply.
	lines := make([]service.TransferLine, 0, len(req.Lines))
	echo := make([]lendsdk.TransferLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		qty, _ := parseQty(l.Qty)
		lines = append(lines, service.TransferLine{HWSetName: l.HWSet, Action: domain.UsageAction(l.Action), Qty: qty})
		echo = append(echo, lendsdk.TransferLine{HWSet: l.HWSet, Action: l.Action, Qty: qty})
	}

	results, err := h.InventoryService.Transfer(r.Context(), r.PathValue("id"), username, lines)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]lendsdk.TransferResult, 0, len(results))
	failed := 0
	for i, res := range results {
		tr := lendsdk.TransferResult{Line: echo[i], Success: res.Err == nil}
		if res.Err != nil {
			failed++
			_, tr.Error = statusFor(res.Err)
			tr.Message = res.Err.Error()
			if tr.Error == lendsdk.CodeInternalError {
				tr.Message = "internal server error"
			}
		} else {
			mv := toMovement(res.Movement)
			tr.Movement = &mv
		}
		out = append(out, tr)
	}

	message := "all lines applied"
	if failed > 0 {
		message = strconv.Itoa(failed) + " of " + strconv.Itoa(len(out)) + " lines failed"
	}
	httpx.WriteJSON(w, http.StatusOK, lendsdk.TransferResponse{
		Envelope: lendsdk.Envelope{Success: failed == 0, Message: message},
		Results:  out,
	})
}

// HandleUsage handles GET /v1/projects/{id}/usage
//
//	@Summary		Usage history
//	@Description	Newest first. Members only.
//	@Tags			Inventory
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id		path		string	true	"Project id"
//	@Param			limit	query		int		false	"Maximum records (1-500, default 50)"
//	@Success		200		{object}	lendsdk.UsageResponse
//	@Failure		400		{object}	lendsdk.Envelope	"invalid_request"
//	@Failure		403		{object}	lendsdk.Envelope	"not_a_member"
//	@Failure		404		{object}	lendsdk.Envelope	"not_found"
//	@Router			/v1/projects/{id}/usage [get].
func (h *InventoryHandler) HandleUsage(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, "limit must be an integer")
			return
		}
		limit = n
	}

	records, err := h.UsageService.GetUsageHistoryForMember(r.Context(), r.PathValue("id"), username, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]lendsdk.UsageRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, toUsageRecord(rec))
	}
	httpx.WriteJSON(w, http.StatusOK, lendsdk.UsageResponse{Envelope: success(""), Records: out})
}
