package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/madivinecapital/loandesk/internal/loan/service"
	"github.com/madivinecapital/loandesk/pkg/httpx"
	"github.com/madivinecapital/loandesk/pkg/loansdk"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles admin email/password login.
//
//	@Summary		Admin login
//	@Description	Authenticates an administrator. Accounts with MFA enabled receive a short-lived challenge token (mfa_required=true) to exchange at the MFA verify endpoint instead of a session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loansdk.LoginRequest	true	"Admin credentials"
//	@Success		200		{object}	loansdk.LoginResponse	"Session token, or MFA challenge"
//	@Failure		400		{object}	loansdk.ErrorResponse	"Invalid request body"
//	@Failure		401		{object}	loansdk.ErrorResponse	"Invalid email or password"
//	@Router			/v1/admin/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loansdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	res, err := h.AuthService.Authenticate(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, loansdk.LoginResponse{
			Token:     res.SessionToken,
			TokenType: "Bearer",
		})
	case errors.Is(err, service.ErrMFARequired):
		httpx.WriteJSON(w, http.StatusOK, loansdk.LoginResponse{
			MFARequired:    true,
			ChallengeToken: res.ChallengeToken,
		})
	default:
		writeServiceError(w, err)
	}
}
