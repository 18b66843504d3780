package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/madivinecapital/loandesk/pkg/jwtx"
	"github.com/madivinecapital/loandesk/pkg/slogx"
)

// AuthnMiddleware verifies the Bearer session token and injects its claims
// into the request context. Only full session tokens pass; MFA challenge
// tokens are rejected here.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("session verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}
			if claims.Kind != jwtx.KindSession {
				writeBearerError(w, "token is not a session token")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyAdminID, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
