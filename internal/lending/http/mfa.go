package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/hwlend/internal/lending/service"
	"github.com/aussiebroadwan/hwlend/pkg/httpx"
	"github.com/aussiebroadwan/hwlend/pkg/lendsdk"
)

// MFAHandler handles TOTP enrollment.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/totp/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret. MFA is enabled once a code is confirmed.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	lendsdk.TOTPEnrollResponse
//	@Failure		401	{object}	lendsdk.Envelope	"unauthorized"
//	@Failure		409	{object}	lendsdk.Envelope	"mfa_already_enabled"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	e, err := h.MFAService.Enroll(r.Context(), username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lendsdk.TOTPEnrollResponse{
		Envelope: success("confirm a code to enable MFA"),
		Secret:   e.Secret,
		URL:      e.URL,
		Issuer:   e.Issuer,
		Account:  e.Account,
	})
}

// HandleConfirm handles POST /v1/mfa/totp/confirm
//
//	@Summary		Confirm TOTP enrollment
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lendsdk.TOTPCodeRequest	true	"TOTP code"
//	@Success		200		{object}	lendsdk.Envelope
//	@Failure		401		{object}	lendsdk.Envelope	"unauthorized, invalid_totp_code"
//	@Failure		409		{object}	lendsdk.Envelope	"mfa_not_enrolled, mfa_already_enabled"
//	@Router			/v1/mfa/totp/confirm [post].
func (h *MFAHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	h.withCode(w, r, h.MFAService.Confirm, "MFA enabled")
}

// HandleDisable handles DELETE /v1/mfa/totp
//
//	@Summary		Disable TOTP MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lendsdk.TOTPCodeRequest	true	"Current TOTP code"
//	@Success		200		{object}	lendsdk.Envelope
//	@Failure		401		{object}	lendsdk.Envelope	"unauthorized, invalid_totp_code"
//	@Failure		409		{object}	lendsdk.Envelope	"mfa_not_enabled"
//	@Router			/v1/mfa/totp [delete].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	h.withCode(w, r, h.MFAService.Disable, "MFA disabled")
}

func (h *MFAHandler) withCode(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, username, code string) error, message string) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req lendsdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := fn(r.Context(), username, req.Code); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, success(message))
}
