package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/madivinecapital/loandesk/internal/loan/gateway"
	"github.com/madivinecapital/loandesk/internal/loan/service"
	"github.com/madivinecapital/loandesk/pkg/httpx"
	"github.com/madivinecapital/loandesk/pkg/loansdk"
	"github.com/madivinecapital/loandesk/pkg/slogx"
)

type CheckoutHandler struct {
	CheckoutService *service.CheckoutService
}

// HandleStart opens a checkout for a completed application form.
//
//	@Summary		Start a loan application checkout
//	@Description	Validates the application form, parks it, and opens a MonCash payment for the analysis fee. The applicant follows redirect_url to pay. If the payment provider is unreachable the application is submitted immediately with the fee left pending (degraded=true).
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loansdk.CheckoutStartRequest	true	"Completed application form"
//	@Success		200		{object}	loansdk.CheckoutStartResponse	"Order opened, or degraded submission"
//	@Failure		400		{object}	loansdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		500		{object}	loansdk.ErrorResponse			"Failed to park or submit the application"
//	@Router			/v1/checkout [post].
func (h *CheckoutHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req loansdk.CheckoutStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}

	res, err := h.CheckoutService.StartCheckout(r.Context(), toSDKDraft(req.ApplicationDraft))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := loansdk.CheckoutStartResponse{
		OrderID:     res.OrderID,
		RedirectURL: res.RedirectURL,
		Degraded:    res.Degraded,
	}
	if res.Application != nil {
		app := toSDKApplication(*res.Application)
		out.Application = &app
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleComplete verifies a gateway transaction and persists the parked
// application when the payment is confirmed.
//
//	@Summary		Complete a loan application checkout
//	@Description	Asks MonCash for its verdict on the transaction. SUCCESSFUL persists the parked application as paid; PENDING means keep polling; FAILED leaves the form parked so the applicant can retry the payment.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loansdk.CheckoutCompleteRequest		true	"Order and transaction identifiers"
//	@Success		200		{object}	loansdk.CheckoutCompleteResponse	"Provider verdict, with the persisted application on success"
//	@Failure		400		{object}	loansdk.ErrorResponse				"Invalid request body"
//	@Failure		404		{object}	loansdk.ErrorResponse				"No pending application for this order"
//	@Failure		409		{object}	loansdk.ErrorResponse				"Transaction settled a different order"
//	@Failure		502		{object}	loansdk.ErrorResponse				"Payment provider is unavailable"
//	@Router			/v1/checkout/complete [post].
func (h *CheckoutHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	var req loansdk.CheckoutCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}
	if strings.TrimSpace(req.OrderID) == "" || strings.TrimSpace(req.TransactionID) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "order_id and transaction_id are required")
		return
	}

	res, err := h.CheckoutService.CompleteCheckout(r.Context(), req.OrderID, req.TransactionID)
	if err != nil {
		l.Warn("checkout completion failed", "order_id", req.OrderID, "err", err)
		writeServiceError(w, err)
		return
	}

	out := loansdk.CheckoutCompleteResponse{Status: string(res.Status)}
	if res.Application != nil {
		app := toSDKApplication(*res.Application)
		out.Application = &app
	}

	code := http.StatusOK
	if res.Status == gateway.VerifySuccessful {
		code = http.StatusCreated
	}
	httpx.WriteJSON(w, code, out)
}
