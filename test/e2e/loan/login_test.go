package loan_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoginRejectsBadCredentials verifies unknown accounts and wrong
// passwords fail identically.
func TestLoginRejectsBadCredentials(t *testing.T) {
	client, _ := setupService(t)
	ctx := context.Background()

	createFirstAdmin(t, client)

	_, _, err := client.Login(ctx, adminEmail, "wrong-password")
	assertStatusCode(t, err, http.StatusUnauthorized, "Login with wrong password")

	_, _, err = client.Login(ctx, "nobody@example.ht", adminPassword)
	assertStatusCode(t, err, http.StatusUnauthorized, "Login with unknown email")
}

// TestLoginNormalizesEmail verifies the email is matched case-insensitively.
func TestLoginNormalizesEmail(t *testing.T) {
	client, _ := setupService(t)
	ctx := context.Background()

	createFirstAdmin(t, client)

	session, resp, err := client.Login(ctx, strings.ToUpper(adminEmail), adminPassword)
	require.NoError(t, err)
	require.False(t, resp.MFARequired)
	require.NotNil(t, session)
}

// TestAdminEndpointsRequireSession verifies the console is closed without a
// valid bearer token.
func TestAdminEndpointsRequireSession(t *testing.T) {
	client, _ := setupService(t)
	createFirstAdmin(t, client)

	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/applications"},
		{http.MethodGet, "/v1/applications/some-id"},
		{http.MethodPatch, "/v1/applications/some-id/status"},
		{http.MethodPatch, "/v1/applications/some-id/payment-status"},
		{http.MethodDelete, "/v1/applications/some-id"},
		{http.MethodPut, "/v1/admin/password"},
		{http.MethodPost, "/v1/admin/mfa/totp/enroll"},
	}

	for _, tokenHeader := range []string{"", "Bearer not-a-real-token"} {
		for _, ep := range endpoints {
			req, err := http.NewRequest(ep.method, client.BaseURL+ep.path, nil)
			require.NoError(t, err)
			if tokenHeader != "" {
				req.Header.Set("Authorization", tokenHeader)
			}

			resp, err := client.HTTPClient.Do(req)
			require.NoError(t, err)
			_ = resp.Body.Close()
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode,
				"%s %s with token %q should be unauthorized", ep.method, ep.path, tokenHeader)
		}
	}
}

// TestPasswordChange verifies an admin can rotate their password and that
// the old one stops working.
func TestPasswordChange(t *testing.T) {
	client, _ := setupService(t)
	ctx := context.Background()

	createFirstAdmin(t, client)
	session := loginAdmin(t, client)

	err := session.ChangePassword(ctx, "wrong-password", "EntirelyNewSecret1!")
	assertStatusCode(t, err, http.StatusUnauthorized, "Change with wrong current password")

	err = session.ChangePassword(ctx, adminPassword, "short")
	assertStatusCode(t, err, http.StatusBadRequest, "Change to a weak password")

	require.NoError(t, session.ChangePassword(ctx, adminPassword, "EntirelyNewSecret1!"))

	_, _, err = client.Login(ctx, adminEmail, adminPassword)
	assertStatusCode(t, err, http.StatusUnauthorized, "Login with the old password")

	newSession, resp, err := client.Login(ctx, adminEmail, "EntirelyNewSecret1!")
	require.NoError(t, err)
	require.False(t, resp.MFARequired)
	require.NotNil(t, newSession)
}
