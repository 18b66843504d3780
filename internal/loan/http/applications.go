package http

import (
	"encoding/json"
	"net/http"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
	"github.com/madivinecapital/loandesk/internal/loan/service"
	"github.com/madivinecapital/loandesk/pkg/httpx"
	"github.com/madivinecapital/loandesk/pkg/loansdk"
)

type ApplicationsHandler struct {
	ApplicationService *service.ApplicationService
}

// HandleList returns every application, newest first.
//
//	@Summary		List loan applications
//	@Tags			Applications
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	loansdk.ApplicationListResponse
//	@Failure		401	{object}	loansdk.ErrorResponse	"Missing or invalid session"
//	@Router			/v1/applications [get].
func (h *ApplicationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	apps, err := h.ApplicationService.ListAll(r.Context(), sessionFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := loansdk.ApplicationListResponse{
		Applications: make([]loansdk.Application, 0, len(apps)),
		Total:        len(apps),
	}
	for _, a := range apps {
		out.Applications = append(out.Applications, toSDKApplication(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns one application.
//
//	@Summary		Get a loan application
//	@Tags			Applications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Application ID"
//	@Success		200	{object}	loansdk.Application
//	@Failure		401	{object}	loansdk.ErrorResponse	"Missing or invalid session"
//	@Failure		404	{object}	loansdk.ErrorResponse	"No such application"
//	@Router			/v1/applications/{id} [get].
func (h *ApplicationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	app, err := h.ApplicationService.GetByID(r.Context(), sessionFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKApplication(app))
}

// HandleSetStatus moves an application along the review axis.
//
//	@Summary		Update review status
//	@Description	Moves the application to pending, reviewing, approved, or rejected. Only defined transitions are allowed; re-setting the current status is a no-op.
//	@Tags			Applications
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Application ID"
//	@Param			request	body		loansdk.StatusUpdateRequest	true	"Target status"
//	@Success		200		{object}	loansdk.Application
//	@Failure		400		{object}	loansdk.ErrorResponse	"Unknown status value"
//	@Failure		404		{object}	loansdk.ErrorResponse	"No such application"
//	@Failure		409		{object}	loansdk.ErrorResponse	"Transition not allowed"
//	@Router			/v1/applications/{id}/status [patch].
func (h *ApplicationsHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req loansdk.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Unknown status value")
		return
	}

	app, err := h.ApplicationService.SetStatus(r.Context(), sessionFromContext(r.Context()), r.PathValue("id"), status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKApplication(app))
}

// HandleSetPaymentStatus records an administrative payment correction.
//
//	@Summary		Update payment status
//	@Description	Sets the analysis fee payment status after out-of-band reconciliation. Accepts "pending", "paid", or the legacy synonym "unpaid". Unlike the gateway path, an admin may move the status in either direction.
//	@Tags			Applications
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string								true	"Application ID"
//	@Param			request	body		loansdk.PaymentStatusUpdateRequest	true	"Target payment status"
//	@Success		200		{object}	loansdk.Application
//	@Failure		400		{object}	loansdk.ErrorResponse	"Unknown payment status value"
//	@Failure		404		{object}	loansdk.ErrorResponse	"No such application"
//	@Router			/v1/applications/{id}/payment-status [patch].
func (h *ApplicationsHandler) HandleSetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req loansdk.PaymentStatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	ps, ok := domain.ParsePaymentStatus(req.PaymentStatus)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Unknown payment status value")
		return
	}

	app, err := h.ApplicationService.SetPaymentStatus(r.Context(), sessionFromContext(r.Context()), r.PathValue("id"), ps)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKApplication(app))
}

// HandleDelete removes an application permanently.
//
//	@Summary		Delete a loan application
//	@Description	Removes the record permanently. Deleting an unknown ID fails with 404 rather than silently succeeding.
//	@Tags			Applications
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Application ID"
//	@Success		204	"Application deleted"
//	@Failure		401	{object}	loansdk.ErrorResponse	"Missing or invalid session"
//	@Failure		404	{object}	loansdk.ErrorResponse	"No such application"
//	@Router			/v1/applications/{id} [delete].
func (h *ApplicationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ApplicationService.Delete(r.Context(), sessionFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
