package store

import (
	"context"
	"errors"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Applications() Applications
	Admins() Admins

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back if fn returns
	// an error and committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Applications interface {
	// CreateApplication inserts a new record (id assigned by the service).
	CreateApplication(ctx context.Context, a domain.LoanApplication) error

	// GetApplicationByID returns one record or ErrNotFound.
	GetApplicationByID(ctx context.Context, id string) (domain.LoanApplication, error)

	// ListApplications returns all records, newest first by creation time.
	ListApplications(ctx context.Context) ([]domain.LoanApplication, error)

	// UpdateApplicationStatus sets the review status and bumps updated_at.
	// The write touches only the status column. Returns ErrNotFound if the
	// record is absent.
	UpdateApplicationStatus(ctx context.Context, id string, status domain.Status) error

	// UpdateApplicationPaymentStatus sets the payment status and bumps
	// updated_at. The write touches only the payment_status column.
	UpdateApplicationPaymentStatus(ctx context.Context, id string, ps domain.PaymentStatus) error

	// DeleteApplication removes the record permanently. Returns ErrNotFound
	// rather than silently succeeding when the record is absent, so callers
	// can refuse to reflect an unconfirmed deletion.
	DeleteApplication(ctx context.Context, id string) error
}

type Admins interface {
	// CreateAdmin inserts a new administrator account.
	CreateAdmin(ctx context.Context, a domain.AdminUser) error

	// GetAdminByEmail looks up by case-normalized email.
	GetAdminByEmail(ctx context.Context, email string) (domain.AdminUser, error)

	// GetAdminByID returns one account or ErrNotFound.
	GetAdminByID(ctx context.Context, id string) (domain.AdminUser, error)

	// UpdateAdminPasswordHash replaces the stored bcrypt hash.
	UpdateAdminPasswordHash(ctx context.Context, id string, newHash string) error

	// UpdateAdminMFASecret stores an enrolled-but-unconfirmed TOTP secret.
	UpdateAdminMFASecret(ctx context.Context, id string, secret string) error

	// EnableAdminMFA marks the stored TOTP secret as active.
	EnableAdminMFA(ctx context.Context, id string) error

	// DisableAdminMFA clears the TOTP secret and enabled marker.
	DisableAdminMFA(ctx context.Context, id string) error

	// IsEmpty reports whether no administrator accounts exist yet.
	IsEmpty(ctx context.Context) (bool, error)
}
