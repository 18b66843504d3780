package http

import (
	"encoding/json"
	"net/http"

	"github.com/madivinecapital/loandesk/internal/loan/service"
	"github.com/madivinecapital/loandesk/pkg/httpx"
	"github.com/madivinecapital/loandesk/pkg/loansdk"
)

type PasswordHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP replaces the logged-in admin's password.
//
//	@Summary		Change the admin password
//	@Description	Replaces the session admin's password. The current password must be supplied; existing session tokens stay valid until they expire.
//	@Tags			Auth
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	loansdk.PasswordChangeRequest	true	"Current and new password"
//	@Success		204		"Password changed"
//	@Failure		400		{object}	loansdk.ValidationErrorResponse	"Invalid request body or weak password"
//	@Failure		401		{object}	loansdk.ErrorResponse			"Wrong current password"
//	@Router			/v1/admin/password [put].
func (h *PasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loansdk.PasswordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	if len(req.NewPassword) < minPasswordLen {
		httpx.WriteJSON(w, http.StatusBadRequest, loansdk.ValidationErrorResponse{
			Code:    "validation_error",
			Message: "validation failed for some fields",
			Details: map[string]string{"new_password": "must be at least 12 characters"},
		})
		return
	}

	err := h.AuthService.ChangePassword(r.Context(), sessionFromContext(r.Context()),
		req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
