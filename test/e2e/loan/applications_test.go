package loan_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestApplicationReviewFlow walks the whole back office path: a paid
// application arrives, gets reviewed, approved, and finally archived.
func TestApplicationReviewFlow(t *testing.T) {
	client, provider := setupService(t)
	ctx := context.Background()

	app := submitPaidApplication(t, client, provider, validDraft())

	createFirstAdmin(t, client)
	session := loginAdmin(t, client)

	list, err := session.ListApplications(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	require.Equal(t, app.ID, list.Applications[0].ID)

	got, err := session.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, "Jean Dupont", got.FullName)
	require.Equal(t, "pending", got.Status)
	require.Equal(t, "paid", got.PaymentStatus)

	reviewing, err := session.SetStatus(ctx, app.ID, "reviewing")
	require.NoError(t, err)
	require.Equal(t, "reviewing", reviewing.Status)

	approved, err := session.SetStatus(ctx, app.ID, "approved")
	require.NoError(t, err)
	require.Equal(t, "approved", approved.Status)

	require.NoError(t, session.DeleteApplication(ctx, app.ID))

	_, err = session.GetApplication(ctx, app.ID)
	assertStatusCode(t, err, http.StatusNotFound, "Get after delete")

	err = session.DeleteApplication(ctx, app.ID)
	assertStatusCode(t, err, http.StatusNotFound, "Second delete")
}

// TestStatusTransitionRules verifies terminal decisions are frozen and
// unknown statuses are rejected outright.
func TestStatusTransitionRules(t *testing.T) {
	client, provider := setupService(t)
	ctx := context.Background()

	app := submitPaidApplication(t, client, provider, validDraft())

	createFirstAdmin(t, client)
	session := loginAdmin(t, client)

	_, err := session.SetStatus(ctx, app.ID, "escalated")
	assertStatusCode(t, err, http.StatusBadRequest, "Unknown status value")

	// A decision can be made straight from pending.
	rejected, err := session.SetStatus(ctx, app.ID, "rejected")
	require.NoError(t, err)
	require.Equal(t, "rejected", rejected.Status)

	// Terminal states cannot be reopened or flipped.
	_, err = session.SetStatus(ctx, app.ID, "approved")
	assertStatusCode(t, err, http.StatusConflict, "Flip a terminal decision")
	_, err = session.SetStatus(ctx, app.ID, "pending")
	assertStatusCode(t, err, http.StatusConflict, "Reopen a terminal decision")

	// Restating the current status is an idempotent no-op.
	again, err := session.SetStatus(ctx, app.ID, "rejected")
	require.NoError(t, err)
	require.Equal(t, "rejected", again.Status)

	_, err = session.SetStatus(ctx, "no-such-id", "reviewing")
	assertStatusCode(t, err, http.StatusNotFound, "Status on missing application")
}

// TestPaymentStatusReconciliation verifies administrators can correct the
// fee ledger in both directions and that the legacy "unpaid" wording is
// accepted on input.
func TestPaymentStatusReconciliation(t *testing.T) {
	client, provider := setupService(t)
	ctx := context.Background()

	app := submitPaidApplication(t, client, provider, validDraft())

	createFirstAdmin(t, client)
	session := loginAdmin(t, client)

	// Roll the fee back using the legacy wording; it is stored canonically.
	reverted, err := session.SetPaymentStatus(ctx, app.ID, "unpaid")
	require.NoError(t, err)
	require.Equal(t, "pending", reverted.PaymentStatus)

	repaid, err := session.SetPaymentStatus(ctx, app.ID, "paid")
	require.NoError(t, err)
	require.Equal(t, "paid", repaid.PaymentStatus)

	_, err = session.SetPaymentStatus(ctx, app.ID, "refunded")
	assertStatusCode(t, err, http.StatusBadRequest, "Unknown payment status value")
}

// TestListApplicationsSeesEverySubmission verifies the console lists every
// applicant submission, including degraded ones.
func TestListApplicationsSeesEverySubmission(t *testing.T) {
	client, provider := setupService(t)
	ctx := context.Background()

	first := submitPaidApplication(t, client, provider, validDraft())

	provider.setOutage(true)
	second := validDraft()
	second.FullName = "Marie Celestin"
	second.SignatureFullName = "Marie Celestin"
	start, err := client.StartCheckout(ctx, second)
	require.NoError(t, err)
	require.True(t, start.Degraded)

	createFirstAdmin(t, client)
	session := loginAdmin(t, client)

	list, err := session.ListApplications(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)

	ids := map[string]bool{}
	for _, app := range list.Applications {
		ids[app.ID] = true
	}
	require.True(t, ids[first.ID])
	require.True(t, ids[start.Application.ID])
}
