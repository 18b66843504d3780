package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
	"github.com/madivinecapital/loandesk/internal/loan/gateway"
	"github.com/madivinecapital/loandesk/internal/loan/service"
	"github.com/madivinecapital/loandesk/internal/loan/store"
	"github.com/madivinecapital/loandesk/pkg/httpx"
	"github.com/madivinecapital/loandesk/pkg/loansdk"
)

// sessionFromContext rebuilds the service-level session from the verified
// claims the authn middleware stored on the request.
func sessionFromContext(ctx context.Context) domain.Session {
	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		return domain.Session{}
	}
	return domain.Session{
		AdminID: claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
	}
}

func toSDKDraft(d loansdk.ApplicationDraft) domain.ApplicationDraft {
	return domain.ApplicationDraft{
		FullName:          d.FullName,
		Address:           d.Address,
		Phone:             d.Phone,
		Email:             d.Email,
		Employment:        d.Employment,
		EmployerName:      d.EmployerName,
		EmployerPhone:     d.EmployerPhone,
		EmployerAddress:   d.EmployerAddress,
		ReferenceName:     d.ReferenceName,
		ReferencePhone:    d.ReferencePhone,
		ReferenceAddress:  d.ReferenceAddress,
		Amount:            d.Amount,
		DurationMonths:    d.DurationMonths,
		Reason:            d.Reason,
		SignatureFullName: d.SignatureFullName,
	}
}

func toSDKApplication(a domain.LoanApplication) loansdk.Application {
	return loansdk.Application{
		ID:                a.ID,
		FullName:          a.FullName,
		Address:           a.Address,
		Phone:             a.Phone,
		Email:             a.Email,
		Employment:        a.Employment,
		EmployerName:      a.EmployerName,
		EmployerPhone:     a.EmployerPhone,
		EmployerAddress:   a.EmployerAddress,
		ReferenceName:     a.ReferenceName,
		ReferencePhone:    a.ReferencePhone,
		ReferenceAddress:  a.ReferenceAddress,
		Amount:            a.Amount,
		DurationMonths:    a.DurationMonths,
		InterestRate:      a.InterestRate,
		Reason:            a.Reason,
		SignatureFullName: a.SignatureFullName,
		Status:            string(a.Status),
		PaymentStatus:     string(a.PaymentStatus),
		CreatedAt:         a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// writeServiceError maps errors from the service layer to uniform HTTP
// responses.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var reqErr *gateway.RequestError

	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, loansdk.ValidationErrorResponse{
			Code:    "validation_error",
			Message: "validation failed for some fields",
			Details: verr.Fields,
		})
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "No such application")
	case errors.Is(err, service.ErrNoPendingCheckout):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "No pending application for this order")
	case errors.Is(err, service.ErrOrderMismatch):
		httpx.WriteError(w, http.StatusConflict, "order_mismatch", "Transaction settled a different order")
	case errors.Is(err, service.ErrUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Admin session required")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
	case errors.Is(err, service.ErrInvalidTransition):
		httpx.WriteError(w, http.StatusConflict, "invalid_transition", "Status change is not allowed from the current state")
	case errors.Is(err, service.ErrMFANotEnrolled):
		httpx.WriteError(w, http.StatusConflict, "mfa_not_enrolled", "No TOTP secret is enrolled")
	case errors.Is(err, gateway.ErrAuth), errors.As(err, &reqErr):
		httpx.WriteError(w, http.StatusBadGateway, "gateway_error", "Payment provider is unavailable")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
	}
}
