package domain

// Status is the review-axis state of a loan application.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// ParseStatus validates a review status received on the wire. Unknown values
// are rejected rather than coerced: only the payment axis has a legacy
// synonym to tolerate.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusReviewing, StatusApproved, StatusRejected:
		return Status(s), true
	}
	return "", false
}

// Terminal reports whether no further review transition is defined.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether moving from s to next is a defined review
// edge. Setting the current status again is always allowed (idempotent
// no-op). An application may skip "reviewing" and be decided directly.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusReviewing || next == StatusApproved || next == StatusRejected
	case StatusReviewing:
		return next == StatusApproved || next == StatusRejected
	default:
		return false
	}
}

// PaymentStatus is the payment-axis state of a loan application.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"

	// paymentUnpaid is a legacy storage synonym for PaymentPending. It is
	// accepted on read and on input but never stored or exposed.
	paymentUnpaid = "unpaid"
)

// NormalizePaymentStatus maps any known external representation to one of
// the two canonical values. Unknown values normalize to PaymentPending so
// that consumers only ever observe {pending, paid}.
func NormalizePaymentStatus(s string) PaymentStatus {
	switch s {
	case string(PaymentPaid):
		return PaymentPaid
	case string(PaymentPending), paymentUnpaid:
		return PaymentPending
	default:
		return PaymentPending
	}
}

// ParsePaymentStatus validates a payment status received on the wire,
// normalizing the legacy "unpaid" synonym.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch s {
	case string(PaymentPending), string(PaymentPaid), paymentUnpaid:
		return NormalizePaymentStatus(s), true
	}
	return "", false
}
