// Package gateway defines the payment provider contract used by checkout.
// Drivers live in subpackages; moncash is the only one today.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAuth means the gateway rejected our provider credentials. It is a
// configuration or provider-side problem, never a statement about the
// applicant's payment.
var ErrAuth = errors.New("gateway: authentication failed")

// VerifyStatus is the provider's verdict on a transaction. PENDING is a
// non-verdict and safe to re-poll.
type VerifyStatus string

const (
	VerifyPending    VerifyStatus = "PENDING"
	VerifySuccessful VerifyStatus = "SUCCESSFUL"
	VerifyFailed     VerifyStatus = "FAILED"
)

// CreatePaymentRequest asks the provider to open a payment for the given
// order. OrderID must be unique per attempt.
type CreatePaymentRequest struct {
	AmountHTG int64
	OrderID   string
	Reference string
}

// PaymentToken is the provider handle for a created payment. The applicant
// is sent to RedirectURL(Token) to pay.
type PaymentToken struct {
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Verification is the provider's view of a transaction at poll time.
// Reference echoes the order ID the transaction settled, which callers use
// to bind a verdict to the order they are completing.
type Verification struct {
	Status        VerifyStatus
	Reference     string
	TransactionID string
	Message       string
	CostHTG       int64
}

// RequestError covers every non-success provider response other than an
// authentication failure, including transport timeouts. A timeout never
// means the payment failed.
type RequestError struct {
	Op         string
	StatusCode int // zero on transport errors
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("gateway: %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gateway: %s: %s", e.Op, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Gateway is the payment provider surface checkout depends on.
type Gateway interface {
	// CreatePayment opens a payment and returns the provider token.
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (PaymentToken, error)

	// VerifyTransaction reports the current provider verdict. Re-polling a
	// PENDING transaction is safe and expected.
	VerifyTransaction(ctx context.Context, transactionID string) (Verification, error)

	// RedirectURL builds the applicant-facing payment page URL for a token.
	RedirectURL(token string) string
}
