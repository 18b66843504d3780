package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
	"github.com/madivinecapital/loandesk/internal/loan/store"
	"github.com/madivinecapital/loandesk/pkg/idx"
)

// ApplicationService owns the loan application records. Submit is the only
// public operation; everything else requires an admin session, which is
// passed explicitly and checked before the store is touched.
type ApplicationService struct {
	Store  store.Store
	Logger *slog.Logger
}

// Submit validates the draft, prices it, and persists a new application in
// the pending/pending state. On persistence failure no record is returned.
func (s *ApplicationService) Submit(ctx context.Context, draft domain.ApplicationDraft) (domain.LoanApplication, error) {
	if err := draft.Validate(); err != nil {
		return domain.LoanApplication{}, err
	}

	now := time.Now().UTC()
	app := domain.LoanApplication{
		ID:                idx.New().String(),
		FullName:          draft.FullName,
		Address:           draft.Address,
		Phone:             draft.Phone,
		Email:             draft.Email,
		Employment:        draft.Employment,
		EmployerName:      draft.EmployerName,
		EmployerPhone:     draft.EmployerPhone,
		EmployerAddress:   draft.EmployerAddress,
		ReferenceName:     draft.ReferenceName,
		ReferencePhone:    draft.ReferencePhone,
		ReferenceAddress:  draft.ReferenceAddress,
		Amount:            draft.Amount,
		DurationMonths:    draft.DurationMonths,
		InterestRate:      domain.ComputeInterestRate(draft.Amount, draft.DurationMonths),
		Reason:            draft.Reason,
		SignatureFullName: draft.SignatureFullName,
		Status:            domain.StatusPending,
		PaymentStatus:     domain.PaymentPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.Store.Applications().CreateApplication(ctx, app); err != nil {
		return domain.LoanApplication{}, fmt.Errorf("persist application: %w", err)
	}

	s.logger().InfoContext(ctx, "application submitted",
		slog.String("application_id", app.ID),
		slog.Int64("amount_htg", app.Amount),
		slog.Int("duration_months", app.DurationMonths),
		slog.Int("interest_rate", app.InterestRate),
	)
	return app, nil
}

// ListAll returns every application, newest first.
func (s *ApplicationService) ListAll(ctx context.Context, sess domain.Session) ([]domain.LoanApplication, error) {
	if !sess.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.Store.Applications().ListApplications(ctx)
}

// GetByID returns one application or store.ErrNotFound.
func (s *ApplicationService) GetByID(ctx context.Context, sess domain.Session, id string) (domain.LoanApplication, error) {
	if !sess.IsAdmin() {
		return domain.LoanApplication{}, ErrUnauthorized
	}
	return s.Store.Applications().GetApplicationByID(ctx, id)
}

// SetStatus moves the application along the review axis. Re-setting the
// current status is an idempotent no-op; any other undefined edge is
// rejected with ErrInvalidTransition.
func (s *ApplicationService) SetStatus(ctx context.Context, sess domain.Session, id string, next domain.Status) (domain.LoanApplication, error) {
	if !sess.IsAdmin() {
		return domain.LoanApplication{}, ErrUnauthorized
	}

	app, err := s.Store.Applications().GetApplicationByID(ctx, id)
	if err != nil {
		return domain.LoanApplication{}, err
	}

	if !app.Status.CanTransition(next) {
		return domain.LoanApplication{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, app.Status, next)
	}
	if app.Status == next {
		return app, nil
	}

	if err := s.Store.Applications().UpdateApplicationStatus(ctx, id, next); err != nil {
		return domain.LoanApplication{}, fmt.Errorf("update status: %w", err)
	}

	s.logger().InfoContext(ctx, "application status changed",
		slog.String("application_id", id),
		slog.String("from", string(app.Status)),
		slog.String("to", string(next)),
		slog.String("admin_id", sess.AdminID),
	)

	app.Status = next
	return app, nil
}

// SetPaymentStatus records an administrative payment correction. Unlike the
// gateway path, an admin may move the status in either direction, for
// example reverting an erroneous "paid" after reconciliation.
func (s *ApplicationService) SetPaymentStatus(ctx context.Context, sess domain.Session, id string, ps domain.PaymentStatus) (domain.LoanApplication, error) {
	if !sess.IsAdmin() {
		return domain.LoanApplication{}, ErrUnauthorized
	}

	app, err := s.Store.Applications().GetApplicationByID(ctx, id)
	if err != nil {
		return domain.LoanApplication{}, err
	}
	if app.PaymentStatus == ps {
		return app, nil
	}

	if err := s.Store.Applications().UpdateApplicationPaymentStatus(ctx, id, ps); err != nil {
		return domain.LoanApplication{}, fmt.Errorf("update payment status: %w", err)
	}

	s.logger().InfoContext(ctx, "application payment status changed",
		slog.String("application_id", id),
		slog.String("from", string(app.PaymentStatus)),
		slog.String("to", string(ps)),
		slog.String("admin_id", sess.AdminID),
	)

	app.PaymentStatus = ps
	return app, nil
}

// Delete removes an application permanently. The store confirms the delete
// before success is reported, so a missing record surfaces as ErrNotFound
// rather than a silent no-op.
func (s *ApplicationService) Delete(ctx context.Context, sess domain.Session, id string) error {
	if !sess.IsAdmin() {
		return ErrUnauthorized
	}

	if err := s.Store.Applications().DeleteApplication(ctx, id); err != nil {
		return err
	}

	s.logger().InfoContext(ctx, "application deleted",
		slog.String("application_id", id),
		slog.String("admin_id", sess.AdminID),
	)
	return nil
}

func (s *ApplicationService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
