package service

import "errors"

var (
	// ErrUnauthorized means the caller's session does not permit the
	// operation. Checked before any store access.
	ErrUnauthorized = errors.New("service: unauthorized")

	// ErrInvalidCredentials is returned for every authentication failure
	// mode so responses never reveal whether the email exists.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrMFARequired means the password was correct but the account needs a
	// TOTP code to finish logging in.
	ErrMFARequired = errors.New("service: mfa verification required")

	// ErrMFANotEnrolled means an MFA operation was attempted before a TOTP
	// secret was enrolled.
	ErrMFANotEnrolled = errors.New("service: mfa not enrolled")

	// ErrInvalidTransition means the requested review status change is not
	// a defined edge from the application's current status.
	ErrInvalidTransition = errors.New("service: invalid status transition")

	// ErrSetupComplete means an administrator account already exists, so
	// first-time setup is closed.
	ErrSetupComplete = errors.New("service: setup already complete")

	// ErrSetupToken means the presented setup token did not match.
	ErrSetupToken = errors.New("service: invalid setup token")

	// ErrNoPendingCheckout means no parked application exists for the order
	// ID, because it expired, was already persisted, or never existed.
	ErrNoPendingCheckout = errors.New("service: no pending checkout for order")

	// ErrOrderMismatch means the verified transaction settled a different
	// order than the one being completed, so its draft must not be
	// consumed.
	ErrOrderMismatch = errors.New("service: transaction does not settle this order")
)
