package loan_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies the login endpoint throttles rapid
// attempts. The strict class allows 5 requests per minute per IP, so the
// 6th attempt must come back 429.
func TestRateLimitLoginEndpoint(t *testing.T) {
	client, _ := setupService(t)
	ctx := context.Background()

	createFirstAdmin(t, client)

	for i := range 6 {
		_, _, err := client.Login(ctx, adminEmail, "wrong-password")
		require.Error(t, err)
		if i < 5 {
			assertStatusCode(t, err, http.StatusUnauthorized,
				"Bad credentials before the limit")
		} else {
			assertStatusCode(t, err, http.StatusTooManyRequests,
				"Attempt past the limit")
		}
	}
}

// TestRateLimitSetupEndpoint verifies the one-time setup endpoint cannot
// be brute forced.
func TestRateLimitSetupEndpoint(t *testing.T) {
	client, _ := setupService(t)
	ctx := context.Background()

	var lastErr error
	for range 6 {
		_, lastErr = client.Setup(ctx, "wrong-token", adminEmail, adminPassword)
		require.Error(t, lastErr)
	}
	assertStatusCode(t, lastErr, http.StatusTooManyRequests, "Setup attempt past the limit")
}

// TestRateLimitHealthEndpointsLenient verifies monitoring can poll the
// health endpoints frequently without tripping a limit.
func TestRateLimitHealthEndpointsLenient(t *testing.T) {
	client, _ := setupService(t)

	for i := range 30 {
		_, err := client.Livez(t.Context())
		require.NoError(t, err, "Liveness request %d should not be rate limited", i+1)

		_, err = client.Readyz(t.Context())
		require.NoError(t, err, "Readiness request %d should not be rate limited", i+1)
	}
}
