package loan_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/madivinecapital/loandesk/internal/loan/gateway/moncash"
	httpapi "github.com/madivinecapital/loandesk/internal/loan/http"
	"github.com/madivinecapital/loandesk/internal/loan/intent"
	"github.com/madivinecapital/loandesk/internal/loan/service"
	"github.com/madivinecapital/loandesk/internal/loan/store/drivers/sqlite"
	"github.com/madivinecapital/loandesk/pkg/jwtx"
	"github.com/madivinecapital/loandesk/pkg/loansdk"
)

/*
 * Common constants and helper functions for loandesk end-to-end tests.
 * Each test boots the full stack in process: the real router and services
 * on an in-memory database and redis, with a scripted MonCash stand-in
 * behind the real gateway client.
 */

const (
	setupToken    = "test-setup-token-12345"
	adminEmail    = "admin@example.ht"
	adminPassword = "CorrectHorse9Battery!"

	providerClientID     = "moncash-client-id"
	providerClientSecret = "moncash-client-secret"
	providerAccessToken  = "provider-access-token"
)

// paymentProvider is a scripted MonCash sandbox. Tests flip denyAuth to
// simulate a provider outage and script verdicts per transaction id. Each
// verdict carries the order the transaction settles, echoed back in the
// reference field like the real provider.
type paymentProvider struct {
	mu       sync.Mutex
	denyAuth bool
	verdicts map[string]verdict // transaction id -> scripted outcome
	orders   map[string]int64   // order id -> amount from CreatePayment
}

type verdict struct {
	orderID string
	status  string // PENDING | SUCCESSFUL | FAILED
}

func newPaymentProvider() *paymentProvider {
	return &paymentProvider{
		verdicts: make(map[string]verdict),
		orders:   make(map[string]int64),
	}
}

func (p *paymentProvider) setOutage(down bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.denyAuth = down
}

func (p *paymentProvider) setVerdict(transactionID, orderID, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verdicts[transactionID] = verdict{orderID: orderID, status: status}
}

func (p *paymentProvider) orderAmount(orderID string) (int64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	amount, ok := p.orders[orderID]
	return amount, ok
}

func (p *paymentProvider) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		down := p.denyAuth
		p.mu.Unlock()

		user, pass, ok := r.BasicAuth()
		if !ok || down || user != providerClientID || pass != providerClientSecret {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": providerAccessToken,
			"expires_in":   59,
		})
	})

	mux.HandleFunc("POST /v1/CreatePayment", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+providerAccessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var body struct {
			Amount  int64  `json:"amount"`
			OrderID string `json:"orderId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		p.mu.Lock()
		p.orders[body.OrderID] = body.Amount
		p.mu.Unlock()

		fmt.Fprintf(w, `{
			"payment_token": {
				"created": "2026-01-15 10:00:00",
				"expired": "2026-01-15 10:10:00",
				"token": "pay-token-%s"
			}
		}`, body.OrderID)
	})

	mux.HandleFunc("POST /v1/RetrieveTransactionPayment", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+providerAccessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var body struct {
			TransactionID string `json:"transactionId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		p.mu.Lock()
		v, ok := p.verdicts[body.TransactionID]
		p.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error": "transaction not found"}`)
			return
		}

		fmt.Fprintf(w, `{
			"payment": {
				"reference": %q,
				"transaction_id": %q,
				"cost": 1000,
				"message": "ok",
				"status": %q
			}
		}`, v.orderID, body.TransactionID, v.status)
	})

	return mux
}

// setupService starts a full loandesk instance in process and returns the
// SDK client pointed at it plus the scripted payment provider.
func setupService(t *testing.T) (*loansdk.Client, *paymentProvider) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })
	intents := intent.NewRedisStore(redisClient)

	provider := newPaymentProvider()
	providerSrv := httptest.NewServer(provider.handler())
	t.Cleanup(providerSrv.Close)

	signer, err := jwtx.NewEphemeralSigner("e2e-key")
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)

	apps := &service.ApplicationService{Store: st, Logger: logger}
	router := httpapi.NewRouter(signer.Verifier("loandesk-e2e"), "e2e", st, intents, logger)
	router.ApplicationService = apps
	router.AuthService = &service.AuthService{
		Store:  st,
		Signer: signer,
		Issuer: "loandesk-e2e",
		Logger: logger,
	}
	router.CheckoutService = &service.CheckoutService{
		Applications: apps,
		Intents:      intents,
		Gateway: moncash.NewClient(moncash.Config{
			BaseURL:      providerSrv.URL,
			ClientID:     providerClientID,
			ClientSecret: providerClientSecret,
			HTTPClient:   providerSrv.Client(),
		}),
		Logger: logger,
	}
	router.SetupService = &service.SetupService{
		Store:      st,
		SetupToken: setupToken,
		Logger:     logger,
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return loansdk.NewClient(srv.URL), provider
}

// createFirstAdmin runs the one-time setup with the standard test admin.
func createFirstAdmin(t *testing.T, client *loansdk.Client) {
	t.Helper()

	resp, err := client.Setup(context.Background(), setupToken, adminEmail, adminPassword)
	require.NoError(t, err, "Setup should succeed")
	require.NotEmpty(t, resp.AdminID)
	require.Equal(t, adminEmail, resp.Email)
}

// loginAdmin authenticates the standard test admin and returns a session.
func loginAdmin(t *testing.T, client *loansdk.Client) *loansdk.Session {
	t.Helper()

	session, resp, err := client.Login(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err, "Login should succeed")
	require.False(t, resp.MFARequired)
	require.NotNil(t, session)
	return session
}

// validDraft returns a complete application form that passes validation.
func validDraft() loansdk.ApplicationDraft {
	return loansdk.ApplicationDraft{
		FullName:          "Jean Dupont",
		Address:           "12 Rue Capois, Port-au-Prince",
		Phone:             "+509 3456 7890",
		Email:             "jean.dupont@example.ht",
		Employment:        "Teacher",
		EmployerName:      "Lycee National",
		EmployerPhone:     "+509 2941 0000",
		EmployerAddress:   "Rue de la Reunion, Port-au-Prince",
		ReferenceName:     "Marie Celestin",
		ReferencePhone:    "+509 3711 2233",
		ReferenceAddress:  "Delmas 33, Port-au-Prince",
		Amount:            150_000,
		DurationMonths:    12,
		Reason:            "Home repairs",
		SignatureFullName: "Jean Dupont",
	}
}

// submitPaidApplication drives a full checkout to a persisted, paid
// application and returns it.
func submitPaidApplication(t *testing.T, client *loansdk.Client, provider *paymentProvider, draft loansdk.ApplicationDraft) *loansdk.Application {
	t.Helper()
	ctx := context.Background()

	start, err := client.StartCheckout(ctx, draft)
	require.NoError(t, err)
	require.False(t, start.Degraded)
	require.NotEmpty(t, start.OrderID)

	transactionID := "txn-" + start.OrderID
	provider.setVerdict(transactionID, start.OrderID, "SUCCESSFUL")

	done, err := client.CompleteCheckout(ctx, start.OrderID, transactionID)
	require.NoError(t, err)
	require.Equal(t, "SUCCESSFUL", done.Status)
	require.NotNil(t, done.Application)
	return done.Application
}

// assertStatusCode checks that an SDK error carries the given HTTP status.
func assertStatusCode(t *testing.T, err error, code int, context string) {
	t.Helper()
	require.Error(t, err, context)
	require.True(t, loansdk.IsStatus(err, code),
		"%s - expected HTTP %d, got: %v", context, code, err)
}
