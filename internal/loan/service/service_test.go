package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
	"github.com/madivinecapital/loandesk/internal/loan/gateway"
	"github.com/madivinecapital/loandesk/internal/loan/intent"
	"github.com/madivinecapital/loandesk/internal/loan/store/drivers/sqlite"
	"github.com/madivinecapital/loandesk/pkg/jwtx"
)

// fakeGateway scripts provider behavior per test.
type fakeGateway struct {
	createErr error
	created   []gateway.CreatePaymentRequest

	verdicts  map[string]gateway.Verification
	verifyErr error
}

func (f *fakeGateway) CreatePayment(ctx context.Context, req gateway.CreatePaymentRequest) (gateway.PaymentToken, error) {
	if f.createErr != nil {
		return gateway.PaymentToken{}, f.createErr
	}
	f.created = append(f.created, req)
	return gateway.PaymentToken{Token: "tok-" + req.OrderID}, nil
}

func (f *fakeGateway) VerifyTransaction(ctx context.Context, transactionID string) (gateway.Verification, error) {
	if f.verifyErr != nil {
		return gateway.Verification{}, f.verifyErr
	}
	v, ok := f.verdicts[transactionID]
	if !ok {
		return gateway.Verification{}, &gateway.RequestError{Op: "verify transaction", Message: "unknown transaction"}
	}
	return v, nil
}

func (f *fakeGateway) RedirectURL(token string) string {
	return "https://gateway.example/pay?token=" + token
}

type testEnv struct {
	Store    *sqlite.Store
	Intents  *intent.RedisStore
	Gateway  *fakeGateway
	Apps     *ApplicationService
	Auth     *AuthService
	Checkout *CheckoutService
	Setup    *SetupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	signer, err := jwtx.NewEphemeralSigner("test-key")
	require.NoError(t, err)

	gw := &fakeGateway{verdicts: map[string]gateway.Verification{}}
	apps := &ApplicationService{Store: st}

	return &testEnv{
		Store:   st,
		Intents: intent.NewRedisStore(client),
		Gateway: gw,
		Apps:    apps,
		Auth: &AuthService{
			Store:  st,
			Signer: signer,
			Issuer: "loandesk-test",
		},
		Checkout: &CheckoutService{
			Applications: apps,
			Intents:      intent.NewRedisStore(client),
			Gateway:      gw,
		},
		Setup: &SetupService{Store: st, SetupToken: "setup-secret"},
	}
}

func adminSession() domain.Session {
	return domain.Session{AdminID: "01ADMIN", Email: "admin@example.ht", Role: domain.RoleAdmin}
}

func validDraft() domain.ApplicationDraft {
	return domain.ApplicationDraft{
		FullName:          "Jean Dupont",
		Address:           "12 Rue Capois, Port-au-Prince",
		Phone:             "+509 3456 7890",
		Email:             "jean.dupont@example.ht",
		Employment:        "Teacher",
		Amount:            150_000,
		DurationMonths:    12,
		Reason:            "Home repairs",
		SignatureFullName: "Jean Dupont",
	}
}
