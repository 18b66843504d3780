// Package intent holds completed application forms between "payment started"
// and "record persisted". Entries are single-consumer and expire on their
// own if the applicant abandons the payment.
package intent

import (
	"context"
	"errors"
	"time"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
)

// ErrNotFound is returned by Consume when no entry exists for the order ID,
// either because it expired, was never parked, or was already consumed.
var ErrNotFound = errors.New("intent: not found")

// DefaultTTL bounds how long an unpaid checkout stays parked.
const DefaultTTL = 30 * time.Minute

// PendingPayment is the handoff object between checkout start and checkout
// completion, keyed by the gateway order ID.
type PendingPayment struct {
	OrderID   string                  `json:"order_id"`
	Draft     domain.ApplicationDraft `json:"draft"`
	AmountHTG int64                   `json:"amount_htg"`
	CreatedAt time.Time               `json:"created_at"`
}

// Store parks and consumes pending payments.
type Store interface {
	// Put parks the pending payment under its order ID with the given TTL.
	// Re-parking the same order ID replaces the entry and resets the TTL.
	Put(ctx context.Context, p PendingPayment, ttl time.Duration) error

	// Consume atomically fetches and removes the entry, so exactly one
	// caller ever receives it. Returns ErrNotFound for absent or expired
	// entries.
	Consume(ctx context.Context, orderID string) (PendingPayment, error)

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
