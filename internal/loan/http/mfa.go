package http

import (
	"encoding/json"
	"net/http"

	"github.com/madivinecapital/loandesk/internal/loan/service"
	"github.com/madivinecapital/loandesk/pkg/httpx"
	"github.com/madivinecapital/loandesk/pkg/loansdk"
)

type MFAHandler struct {
	AuthService *service.AuthService
}

// HandleVerify completes a login MFA challenge.
//
//	@Summary		Verify an MFA challenge
//	@Description	Exchanges the challenge token from login plus a current TOTP code for a full session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loansdk.MFAVerifyRequest	true	"Challenge token and TOTP code"
//	@Success		200		{object}	loansdk.LoginResponse		"Session token"
//	@Failure		400		{object}	loansdk.ErrorResponse		"Invalid request body"
//	@Failure		401		{object}	loansdk.ErrorResponse		"Invalid challenge or code"
//	@Router			/v1/admin/mfa/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req loansdk.MFAVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	res, err := h.AuthService.VerifyTOTP(r.Context(), req.ChallengeToken, req.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loansdk.LoginResponse{
		Token:     res.SessionToken,
		TokenType: "Bearer",
	})
}

// HandleEnroll generates a TOTP secret for the logged-in admin.
//
//	@Summary		Enroll a TOTP second factor
//	@Description	Generates a new TOTP secret for the session's admin. The secret stays inactive until confirmed via the activate endpoint. Re-enrolling replaces an unactivated secret.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	loansdk.MFAEnrollResponse	"Secret and otpauth URL"
//	@Failure		401	{object}	loansdk.ErrorResponse		"Missing or invalid session"
//	@Router			/v1/admin/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	res, err := h.AuthService.EnrollTOTP(r.Context(), sessionFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loansdk.MFAEnrollResponse{
		Secret: res.Secret,
		URL:    res.URL,
	})
}

// HandleActivate confirms an enrolled TOTP secret.
//
//	@Summary		Activate the enrolled TOTP secret
//	@Description	Confirms the enrolled secret with a current code and turns MFA on for the account.
//	@Tags			Auth
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	loansdk.MFACodeRequest	true	"Current TOTP code"
//	@Success		204		"MFA activated"
//	@Failure		401		{object}	loansdk.ErrorResponse	"Invalid code"
//	@Failure		409		{object}	loansdk.ErrorResponse	"No secret enrolled"
//	@Router			/v1/admin/mfa/totp/activate [post].
func (h *MFAHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	var req loansdk.MFACodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	if err := h.AuthService.ActivateTOTP(r.Context(), sessionFromContext(r.Context()), req.Code); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDisable turns the TOTP second factor off.
//
//	@Summary		Disable the TOTP second factor
//	@Description	Removes the TOTP secret from the account. A current code is required so a stolen session alone cannot strip the second factor.
//	@Tags			Auth
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	loansdk.MFACodeRequest	true	"Current TOTP code"
//	@Success		204		"MFA disabled"
//	@Failure		401		{object}	loansdk.ErrorResponse	"Invalid code"
//	@Failure		409		{object}	loansdk.ErrorResponse	"MFA is not enabled"
//	@Router			/v1/admin/mfa/totp [delete].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	var req loansdk.MFACodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	if err := h.AuthService.DisableTOTP(r.Context(), sessionFromContext(r.Context()), req.Code); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
