// Package http exposes the loandesk REST API: public checkout endpoints,
// one-time setup, admin login, and the authenticated application console.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
	"github.com/madivinecapital/loandesk/internal/loan/intent"
	"github.com/madivinecapital/loandesk/internal/loan/service"
	"github.com/madivinecapital/loandesk/internal/loan/store"
	"github.com/madivinecapital/loandesk/pkg/httpx"
	"github.com/madivinecapital/loandesk/pkg/jwtx"
	"github.com/madivinecapital/loandesk/pkg/slogx"

	_ "github.com/madivinecapital/loandesk/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store   store.Store
	intents intent.Store

	ApplicationService *service.ApplicationService
	AuthService        *service.AuthService
	CheckoutService    *service.CheckoutService
	SetupService       *service.SetupService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	intents intent.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		intents:      intents,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerCheckout()
	r.registerSetup()
	r.registerAdminAuth()
	r.registerApplications()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Loandesk API
//	@version		0.1.0
//	@description	Loan origination backend: applicants submit applications and pay the
//	@description	analysis fee through MonCash; administrators review, decide, and
//	@description	reconcile payments.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerCheckout() {
	h := &CheckoutHandler{CheckoutService: r.CheckoutService}

	// POST /checkout - strict rate limit (opens gateway payments)
	r.Mux.Handle("POST /v1/checkout",
		httpx.Chain(http.HandlerFunc(h.HandleStart),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /checkout/complete - the applicant polls this after paying, so
	// the limit is moderate rather than strict
	r.Mux.Handle("POST /v1/checkout/complete",
		httpx.Chain(http.HandlerFunc(h.HandleComplete),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSetup() {
	// POST /setup - very strict rate limit by IP (one-time setup endpoint)
	h := &SetupHandler{SetupService: r.SetupService}
	r.Mux.Handle("POST /v1/setup",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAdminAuth() {
	login := &LoginHandler{AuthService: r.AuthService}

	// POST /admin/login - strict rate limit by IP to slow credential stuffing
	r.Mux.Handle("POST /v1/admin/login",
		httpx.Chain(login,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// PUT /admin/password requires the current password on top of a session.
	pw := &PasswordHandler{AuthService: r.AuthService}
	r.Mux.Handle("PUT /v1/admin/password",
		httpx.Chain(pw,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByAdmin(httpx.StrictLimit),
		),
	)

	mfa := &MFAHandler{AuthService: r.AuthService}

	// POST /admin/mfa/verify - strict (TOTP brute force)
	r.Mux.Handle("POST /v1/admin/mfa/verify",
		httpx.Chain(http.HandlerFunc(mfa.HandleVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// TOTP management requires a full session.
	r.Mux.Handle("POST /v1/admin/mfa/totp/enroll",
		httpx.Chain(http.HandlerFunc(mfa.HandleEnroll),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByAdmin(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/admin/mfa/totp/activate",
		httpx.Chain(http.HandlerFunc(mfa.HandleActivate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByAdmin(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/admin/mfa/totp",
		httpx.Chain(http.HandlerFunc(mfa.HandleDisable),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByAdmin(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerApplications() {
	h := &ApplicationsHandler{ApplicationService: r.ApplicationService}

	admin := func(hf http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(hf,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByAdmin(limit),
		)
	}

	r.Mux.Handle("GET /v1/applications", admin(h.HandleList, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/applications/{id}", admin(h.HandleGet, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /v1/applications/{id}/status", admin(h.HandleSetStatus, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /v1/applications/{id}/payment-status", admin(h.HandleSetPaymentStatus, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/applications/{id}", admin(h.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.intents),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
