package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/madivinecapital/loandesk/internal/loan/service"
	"github.com/madivinecapital/loandesk/pkg/httpx"
	"github.com/madivinecapital/loandesk/pkg/loansdk"
	"github.com/madivinecapital/loandesk/pkg/slogx"
)

const minPasswordLen = 12

type SetupHandler struct {
	SetupService *service.SetupService
}

// ServeHTTP handles one-time creation of the first admin account.
//
//	@Summary		Create the first administrator
//	@Description	Creates the initial admin account. Only available while the admin table is empty and a setup token is configured; the token must be presented in the X-Setup-Token header.
//	@Tags			Setup
//	@Accept			json
//	@Produce		json
//	@Param			X-Setup-Token	header		string							true	"Deploy-time setup token"
//	@Param			request			body		loansdk.SetupRequest			true	"First admin credentials"
//	@Success		201				{object}	loansdk.SetupResponse			"Admin account created"
//	@Failure		400				{object}	loansdk.ValidationErrorResponse	"Invalid request body or weak credentials"
//	@Failure		401				{object}	loansdk.ErrorResponse			"Missing or invalid setup token, or setup already completed"
//	@Failure		500				{object}	loansdk.ErrorResponse			"Failed to create the admin account"
//	@Router			/v1/setup [post].
func (h *SetupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	var req loansdk.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	details := map[string]string{}
	if !strings.Contains(req.Email, "@") {
		details["email"] = "must be a valid email address"
	}
	if len(req.Password) < minPasswordLen {
		details["password"] = "must be at least 12 characters"
	}
	if len(details) > 0 {
		httpx.WriteJSON(w, http.StatusBadRequest, loansdk.ValidationErrorResponse{
			Code:    "validation_error",
			Message: "validation failed for some fields",
			Details: details,
		})
		return
	}

	admin, err := h.SetupService.CreateFirstAdmin(r.Context(),
		r.Header.Get("X-Setup-Token"), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSetupToken):
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid setup token")
		case errors.Is(err, service.ErrSetupComplete):
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Setup has already been completed")
		default:
			l.Error("first admin creation failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "Failed to create the admin account")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, loansdk.SetupResponse{
		AdminID: admin.ID,
		Email:   admin.Email,
	})
}
