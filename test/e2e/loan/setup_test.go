package loan_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/madivinecapital/loandesk/pkg/loansdk"
)

// TestSetupCreatesFirstAdmin verifies the one-time setup flow end to end:
// the created admin can immediately log in and use the console.
func TestSetupCreatesFirstAdmin(t *testing.T) {
	client, _ := setupService(t)
	ctx := context.Background()

	createFirstAdmin(t, client)
	session := loginAdmin(t, client)

	list, err := session.ListApplications(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, list.Total)
}

// TestSetupRejectsWrongToken verifies the setup token gate.
func TestSetupRejectsWrongToken(t *testing.T) {
	client, _ := setupService(t)
	ctx := context.Background()

	_, err := client.Setup(ctx, "not-the-token", adminEmail, adminPassword)
	assertStatusCode(t, err, http.StatusUnauthorized, "Setup with wrong token")

	// The gate must not leak partial state: the real token still works.
	createFirstAdmin(t, client)
}

// TestSetupClosedAfterFirstAdmin verifies setup is one-shot even with the
// correct token.
func TestSetupClosedAfterFirstAdmin(t *testing.T) {
	client, _ := setupService(t)
	ctx := context.Background()

	createFirstAdmin(t, client)

	_, err := client.Setup(ctx, setupToken, "second@example.ht", adminPassword)
	assertStatusCode(t, err, http.StatusUnauthorized, "Second setup attempt")

	// The original admin is unaffected.
	loginAdmin(t, client)
}

// TestSetupValidatesCredentials verifies weak first-admin credentials are
// rejected before any account is created.
func TestSetupValidatesCredentials(t *testing.T) {
	client, _ := setupService(t)
	ctx := context.Background()

	_, err := client.Setup(ctx, setupToken, "not-an-email", "short")
	assertStatusCode(t, err, http.StatusBadRequest, "Setup with weak credentials")

	var apiErr *loansdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.Details, "email")
	require.Contains(t, apiErr.Details, "password")

	// Nothing was created, so a proper setup still goes through.
	createFirstAdmin(t, client)
}
