package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/service"
	"github.com/aussiebroadwan/hwlend/pkg/httpx"
	"github.com/aussiebroadwan/hwlend/pkg/lendsdk"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"
)

// AccountsHandler serves registration, sign-in and account maintenance.
type AccountsHandler struct {
	AccountService *service.AccountService
	SessionService *service.SessionService
}

// HandleRegister handles POST /v1/accounts
//
//	@Summary		Register
//	@Description	Creates a regular user account. Passwords must be at least 8 characters.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lendsdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	lendsdk.UserResponse
//	@Failure		400		{object}	lendsdk.Envelope	"invalid_request"
//	@Failure		409		{object}	lendsdk.Envelope	"duplicate_name"
//	@Failure		429		{object}	lendsdk.Envelope	"rate_limit_exceeded"
//	@Router			/v1/accounts [post].
func (h *AccountsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req lendsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	u, err := h.AccountService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, lendsdk.UserResponse{
		Envelope: success("account created"),
		User:     toUser(u),
	})
}

// HandleLogin handles POST /v1/sessions
//
//	@Summary		Sign in
//	@Description	Verifies the password (and TOTP code when MFA is enabled) and returns an access token.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lendsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	lendsdk.SessionResponse
//	@Failure		400		{object}	lendsdk.Envelope	"invalid_request"
//	@Failure		401		{object}	lendsdk.Envelope	"invalid_credentials, mfa_required, invalid_totp_code"
//	@Failure		429		{object}	lendsdk.Envelope	"rate_limit_exceeded"
//	@Router			/v1/sessions [post].
func (h *AccountsHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req lendsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	u, err := h.AccountService.Authenticate(ctx, req.Username, req.Password, req.TOTPCode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s, err := h.SessionService.Issue(ctx, u)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lendsdk.SessionResponse{
		Envelope:    success("signed in"),
		AccessToken: s.AccessToken,
		TokenType:   s.TokenType,
		ExpiresIn:   int(time.Until(s.ExpiresAt).Seconds()),
		ExpiresAt:   s.ExpiresAt,
		Scope:       strings.Join(s.Scopes, " "),
	})
}

// HandleMe handles GET /v1/accounts/me
//
//	@Summary		Current account
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	lendsdk.UserResponse
//	@Failure		401	{object}	lendsdk.Envelope	"unauthorized"
//	@Router			/v1/accounts/me [get].
func (h *AccountsHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	u, err := h.AccountService.GetUser(r.Context(), username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lendsdk.UserResponse{Envelope: success(""), User: toUser(u)})
}

// HandleChangePassword handles POST /v1/accounts/password
//
//	@Summary		Change password
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lendsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	lendsdk.Envelope
//	@Failure		400		{object}	lendsdk.Envelope	"invalid_request"
//	@Failure		401		{object}	lendsdk.Envelope	"unauthorized, invalid_credentials"
//	@Router			/v1/accounts/password [post].
func (h *AccountsHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req lendsdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := h.AccountService.ChangePassword(r.Context(), username, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, success("password changed"))
}

// HandleRequestReset handles POST /v1/accounts/password-reset
//
//	@Summary		Request a password reset
//	@Description	Sends a reset token to the account owner. Always answers 202 so account existence is not revealed.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lendsdk.PasswordResetRequest	true	"Username"
//	@Success		202		{object}	lendsdk.Envelope
//	@Failure		400		{object}	lendsdk.Envelope	"invalid_request"
//	@Failure		429		{object}	lendsdk.Envelope	"rate_limit_exceeded"
//	@Router			/v1/accounts/password-reset [post].
func (h *AccountsHandler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req lendsdk.PasswordResetRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := h.AccountService.RequestPasswordReset(r.Context(), req.Username); err != nil {
		slogx.FromContext(r.Context()).Error("password reset request failed", "err", err)
	}

	httpx.WriteJSON(w, http.StatusAccepted, success("if the account exists a reset token has been sent"))
}

// HandleConfirmReset handles POST /v1/accounts/password-reset/confirm
//
//	@Summary		Reset password
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lendsdk.PasswordResetConfirmRequest	true	"Reset token and new password"
//	@Success		200		{object}	lendsdk.Envelope
//	@Failure		400		{object}	lendsdk.Envelope	"invalid_request, invalid_reset_token"
//	@Router			/v1/accounts/password-reset/confirm [post].
func (h *AccountsHandler) HandleConfirmReset(w http.ResponseWriter, r *http.Request) {
	var req lendsdk.PasswordResetConfirmRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := h.AccountService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, success("password reset"))
}

// HandleDeleteAccount handles DELETE /v1/accounts/me
//
//	@Summary		Delete account
//	@Description	Deletes owned projects (returning their holdings), leaves every other project and removes the account. All or nothing.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		lendsdk.DeleteAccountRequest	true	"Password confirmation"
//	@Success		200		{object}	lendsdk.Envelope
//	@Failure		401		{object}	lendsdk.Envelope	"unauthorized, invalid_credentials"
//	@Failure		500		{object}	lendsdk.Envelope	"internal_error"
//	@Router			/v1/accounts/me [delete].
func (h *AccountsHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req lendsdk.DeleteAccountRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := h.AccountService.DeleteAccount(r.Context(), username, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, success("account deleted"))
}
