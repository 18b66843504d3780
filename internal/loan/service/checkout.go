package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
	"github.com/madivinecapital/loandesk/internal/loan/gateway"
	"github.com/madivinecapital/loandesk/internal/loan/intent"
	"github.com/madivinecapital/loandesk/internal/loan/store"
)

// DefaultAnalysisFeeHTG is the flat fee charged to open an application.
const DefaultAnalysisFeeHTG = 1_000

const analysisFeeReference = "Frais d'analyse de dossier"

// CheckoutService drives the application lifecycle around the analysis-fee
// payment: park the completed form, send the applicant to the gateway, and
// persist the record once (and only once) the payment is confirmed.
type CheckoutService struct {
	Applications *ApplicationService
	Intents      intent.Store
	Gateway      gateway.Gateway
	Logger       *slog.Logger

	FeeHTG    int64         // defaults to DefaultAnalysisFeeHTG
	IntentTTL time.Duration // defaults to intent.DefaultTTL
}

// StartResult is the outcome of opening a checkout. In the normal flow the
// applicant follows RedirectURL; when the gateway is unreachable the
// application is submitted immediately instead (Degraded) and the fee is
// collected out of band.
type StartResult struct {
	OrderID     string
	RedirectURL string

	Degraded    bool
	Application *domain.LoanApplication // set only when Degraded
}

// CompleteResult reports the gateway verdict for a checkout completion
// attempt. Application is set only on a SUCCESSFUL verdict.
type CompleteResult struct {
	Status      gateway.VerifyStatus
	Application *domain.LoanApplication
}

// StartCheckout validates the draft, parks it under a fresh order ID, and
// opens a gateway payment for the analysis fee.
//
// If the gateway cannot be reached or refuses our credentials, the draft is
// submitted immediately with the payment still pending, so an outage never
// loses an application. An admin reconciles the fee manually.
func (s *CheckoutService) StartCheckout(ctx context.Context, draft domain.ApplicationDraft) (StartResult, error) {
	if err := draft.Validate(); err != nil {
		return StartResult{}, err
	}

	orderID := NewOrderID()
	pending := intent.PendingPayment{
		OrderID:   orderID,
		Draft:     draft,
		AmountHTG: s.fee(),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Intents.Put(ctx, pending, s.intentTTL()); err != nil {
		return StartResult{}, fmt.Errorf("park application: %w", err)
	}

	token, err := s.Gateway.CreatePayment(ctx, gateway.CreatePaymentRequest{
		AmountHTG: s.fee(),
		OrderID:   orderID,
		Reference: analysisFeeReference,
	})
	if err != nil {
		var reqErr *gateway.RequestError
		if errors.Is(err, gateway.ErrAuth) || errors.As(err, &reqErr) {
			return s.startDegraded(ctx, orderID, draft, err)
		}
		return StartResult{}, fmt.Errorf("create payment: %w", err)
	}

	s.logger().InfoContext(ctx, "checkout started",
		slog.String("order_id", orderID),
		slog.Int64("fee_htg", s.fee()),
	)
	return StartResult{
		OrderID:     orderID,
		RedirectURL: s.Gateway.RedirectURL(token.Token),
	}, nil
}

// startDegraded is the gateway-outage fallback: submit the application now
// with the payment left pending for manual reconciliation.
func (s *CheckoutService) startDegraded(ctx context.Context, orderID string, draft domain.ApplicationDraft, cause error) (StartResult, error) {
	// Best effort. A leftover entry would just expire.
	if _, err := s.Intents.Consume(ctx, orderID); err != nil && !errors.Is(err, intent.ErrNotFound) {
		s.logger().WarnContext(ctx, "discard parked application failed",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()))
	}

	app, err := s.Applications.Submit(ctx, draft)
	if err != nil {
		return StartResult{}, fmt.Errorf("degraded submission: %w", err)
	}

	s.logger().WarnContext(ctx, "checkout degraded, application submitted without payment",
		slog.String("order_id", orderID),
		slog.String("application_id", app.ID),
		slog.String("gateway_error", cause.Error()),
	)
	return StartResult{OrderID: orderID, Degraded: true, Application: &app}, nil
}

// CompleteCheckout asks the gateway for its verdict on the transaction and,
// on SUCCESSFUL, consumes the parked draft and persists the application as
// paid. The transaction must have settled this order: a SUCCESSFUL verdict
// whose echoed order differs from orderID is rejected with ErrOrderMismatch.
//
// The draft is consumed exactly once. If persistence fails after a
// successful payment, the draft is re-parked and an error is surfaced, so a
// retry recovers the application without charging again. PENDING and FAILED
// verdicts leave the draft parked.
func (s *CheckoutService) CompleteCheckout(ctx context.Context, orderID, transactionID string) (CompleteResult, error) {
	v, err := s.Gateway.VerifyTransaction(ctx, transactionID)
	if err != nil {
		return CompleteResult{}, fmt.Errorf("verify transaction: %w", err)
	}

	switch v.Status {
	case gateway.VerifyPending, gateway.VerifyFailed:
		s.logger().InfoContext(ctx, "checkout not completed",
			slog.String("order_id", orderID),
			slog.String("transaction_id", transactionID),
			slog.String("verdict", string(v.Status)),
		)
		return CompleteResult{Status: v.Status}, nil
	case gateway.VerifySuccessful:
		// fall through
	default:
		return CompleteResult{}, fmt.Errorf("verify transaction: unexpected status %q", v.Status)
	}

	// The provider echoes the order the transaction settled. A verdict for
	// some other order must not consume this order's draft, or one payment
	// could mark any number of applications paid.
	if v.Reference != orderID {
		s.logger().WarnContext(ctx, "transaction settles a different order",
			slog.String("order_id", orderID),
			slog.String("transaction_id", transactionID),
			slog.String("settled_order_id", v.Reference),
		)
		return CompleteResult{}, fmt.Errorf("%w: transaction %s settled order %q", ErrOrderMismatch, transactionID, v.Reference)
	}

	pending, err := s.Intents.Consume(ctx, orderID)
	if err != nil {
		if errors.Is(err, intent.ErrNotFound) {
			return CompleteResult{}, ErrNoPendingCheckout
		}
		return CompleteResult{}, fmt.Errorf("consume parked application: %w", err)
	}

	app, err := s.persistPaid(ctx, pending.Draft)
	if err != nil {
		// The payment went through but the record did not. Re-park the
		// draft so a retry can persist it without a second charge.
		if putErr := s.Intents.Put(ctx, pending, s.intentTTL()); putErr != nil {
			s.logger().ErrorContext(ctx, "re-park after persistence failure failed",
				slog.String("order_id", orderID),
				slog.String("error", putErr.Error()))
		}
		return CompleteResult{}, fmt.Errorf("persist paid application: %w", err)
	}

	s.logger().InfoContext(ctx, "checkout completed",
		slog.String("order_id", orderID),
		slog.String("transaction_id", transactionID),
		slog.String("application_id", app.ID),
	)
	return CompleteResult{Status: v.Status, Application: &app}, nil
}

// persistPaid submits the draft and marks it paid as one transaction.
func (s *CheckoutService) persistPaid(ctx context.Context, draft domain.ApplicationDraft) (domain.LoanApplication, error) {
	var app domain.LoanApplication
	err := s.Applications.Store.WithTx(ctx, func(tx store.Tx) error {
		txApps := &ApplicationService{Store: tx, Logger: s.Applications.Logger}

		created, err := txApps.Submit(ctx, draft)
		if err != nil {
			return err
		}
		if err := tx.Applications().UpdateApplicationPaymentStatus(ctx, created.ID, domain.PaymentPaid); err != nil {
			return err
		}

		created.PaymentStatus = domain.PaymentPaid
		app = created
		return nil
	})
	if err != nil {
		return domain.LoanApplication{}, err
	}
	return app, nil
}

func (s *CheckoutService) fee() int64 {
	if s.FeeHTG > 0 {
		return s.FeeHTG
	}
	return DefaultAnalysisFeeHTG
}

func (s *CheckoutService) intentTTL() time.Duration {
	if s.IntentTTL > 0 {
		return s.IntentTTL
	}
	return intent.DefaultTTL
}

func (s *CheckoutService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

const orderIDCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewOrderID mints a gateway order ID, unique per payment attempt. The
// format is shared with the previous system so existing provider-side
// reporting keeps working.
func NewOrderID() string {
	var b [6]byte
	_, _ = rand.Read(b[:])
	for i := range b {
		b[i] = orderIDCharset[int(b[i])%len(orderIDCharset)]
	}
	return fmt.Sprintf("AYL-%d-%s", time.Now().UnixMilli(), string(b[:]))
}
