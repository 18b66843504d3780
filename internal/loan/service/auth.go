package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
	"github.com/madivinecapital/loandesk/internal/loan/store"
	"github.com/madivinecapital/loandesk/pkg/cryptox"
	"github.com/madivinecapital/loandesk/pkg/jwtx"
)

// DefaultChallengeTTL bounds how long an MFA challenge token stays usable.
const DefaultChallengeTTL = 5 * time.Minute

// AuthService authenticates administrators and mints session tokens.
// Sessions are stateless Ed25519 JWTs; logout is client-side disposal.
type AuthService struct {
	Store  store.Store
	Signer *jwtx.Signer
	Issuer string
	Logger *slog.Logger

	SessionTTL   time.Duration // defaults to jwtx.DefaultSessionTTL
	ChallengeTTL time.Duration // defaults to DefaultChallengeTTL

	// TOTPIssuer names this system in authenticator apps.
	TOTPIssuer string
}

// LoginResult is the outcome of a successful password check. When the
// account has MFA active, SessionToken is empty and ChallengeToken must be
// exchanged via VerifyTOTP.
type LoginResult struct {
	SessionToken   string
	MFARequired    bool
	ChallengeToken string
}

// EnrollResult carries a freshly generated TOTP secret for the admin to load
// into an authenticator app. The secret stays inactive until ActivateTOTP
// confirms a valid code.
type EnrollResult struct {
	Secret string
	URL    string
}

// Authenticate checks an email/password pair against the admin table. Every
// failure mode returns ErrInvalidCredentials, and a bcrypt comparison is
// performed on every path so a lookup miss costs the same as a wrong
// password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (LoginResult, error) {
	admin, err := s.Store.Admins().GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.BurnVerification(password)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("look up admin: %w", err)
	}

	if err := cryptox.VerifyPassword(password, admin.PasswordHash); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if admin.Role != domain.RoleAdmin {
		return LoginResult{}, ErrInvalidCredentials
	}

	if admin.MFAActive() {
		challenge, err := s.sign(admin, jwtx.KindMFAChallenge, s.challengeTTL())
		if err != nil {
			return LoginResult{}, err
		}
		return LoginResult{MFARequired: true, ChallengeToken: challenge}, ErrMFARequired
	}

	token, err := s.sign(admin, jwtx.KindSession, s.sessionTTL())
	if err != nil {
		return LoginResult{}, err
	}

	s.logger().InfoContext(ctx, "admin logged in",
		slog.String("admin_id", admin.ID))
	return LoginResult{SessionToken: token}, nil
}

// VerifyTOTP completes an MFA challenge: it exchanges a valid challenge
// token plus a current TOTP code for a full session token.
func (s *AuthService) VerifyTOTP(ctx context.Context, challengeToken, code string) (LoginResult, error) {
	claims, err := s.Signer.Verifier(s.Issuer).Verify(challengeToken)
	if err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if claims.Kind != jwtx.KindMFAChallenge {
		return LoginResult{}, ErrInvalidCredentials
	}

	admin, err := s.Store.Admins().GetAdminByID(ctx, claims.Subject)
	if err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !admin.MFAActive() || !totp.Validate(code, *admin.MFASecret) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.sign(admin, jwtx.KindSession, s.sessionTTL())
	if err != nil {
		return LoginResult{}, err
	}

	s.logger().InfoContext(ctx, "admin logged in",
		slog.String("admin_id", admin.ID),
		slog.Bool("mfa", true))
	return LoginResult{SessionToken: token}, nil
}

// EnrollTOTP generates a new TOTP secret for the session's admin and stores
// it unconfirmed. Calling it again replaces any unactivated secret.
func (s *AuthService) EnrollTOTP(ctx context.Context, sess domain.Session) (EnrollResult, error) {
	if !sess.IsAdmin() {
		return EnrollResult{}, ErrUnauthorized
	}

	admin, err := s.Store.Admins().GetAdminByID(ctx, sess.AdminID)
	if err != nil {
		return EnrollResult{}, fmt.Errorf("look up admin: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.totpIssuer(),
		AccountName: admin.Email,
	})
	if err != nil {
		return EnrollResult{}, fmt.Errorf("generate totp secret: %w", err)
	}

	if err := s.Store.Admins().UpdateAdminMFASecret(ctx, admin.ID, key.Secret()); err != nil {
		return EnrollResult{}, fmt.Errorf("store totp secret: %w", err)
	}

	return EnrollResult{Secret: key.Secret(), URL: key.URL()}, nil
}

// ActivateTOTP confirms an enrolled secret with a valid code and turns MFA
// on for the account.
func (s *AuthService) ActivateTOTP(ctx context.Context, sess domain.Session, code string) error {
	if !sess.IsAdmin() {
		return ErrUnauthorized
	}

	admin, err := s.Store.Admins().GetAdminByID(ctx, sess.AdminID)
	if err != nil {
		return fmt.Errorf("look up admin: %w", err)
	}
	if admin.MFASecret == nil || *admin.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if !totp.Validate(code, *admin.MFASecret) {
		return ErrInvalidCredentials
	}

	if err := s.Store.Admins().EnableAdminMFA(ctx, admin.ID); err != nil {
		return fmt.Errorf("enable mfa: %w", err)
	}

	s.logger().InfoContext(ctx, "admin mfa activated",
		slog.String("admin_id", admin.ID))
	return nil
}

// DisableTOTP turns MFA off. A current code is required so a hijacked
// session alone cannot strip the second factor.
func (s *AuthService) DisableTOTP(ctx context.Context, sess domain.Session, code string) error {
	if !sess.IsAdmin() {
		return ErrUnauthorized
	}

	admin, err := s.Store.Admins().GetAdminByID(ctx, sess.AdminID)
	if err != nil {
		return fmt.Errorf("look up admin: %w", err)
	}
	if !admin.MFAActive() {
		return ErrMFANotEnrolled
	}
	if !totp.Validate(code, *admin.MFASecret) {
		return ErrInvalidCredentials
	}

	if err := s.Store.Admins().DisableAdminMFA(ctx, admin.ID); err != nil {
		return fmt.Errorf("disable mfa: %w", err)
	}

	s.logger().InfoContext(ctx, "admin mfa disabled",
		slog.String("admin_id", admin.ID))
	return nil
}

// ChangePassword replaces the session admin's password. The current
// password is required so a hijacked session alone cannot take over the
// account.
func (s *AuthService) ChangePassword(ctx context.Context, sess domain.Session, current, next string) error {
	if !sess.IsAdmin() {
		return ErrUnauthorized
	}

	admin, err := s.Store.Admins().GetAdminByID(ctx, sess.AdminID)
	if err != nil {
		return fmt.Errorf("look up admin: %w", err)
	}
	if err := cryptox.VerifyPassword(current, admin.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.Admins().UpdateAdminPasswordHash(ctx, admin.ID, hash); err != nil {
		return fmt.Errorf("store password: %w", err)
	}

	s.logger().InfoContext(ctx, "admin password changed",
		slog.String("admin_id", admin.ID))
	return nil
}

// CurrentAdmin resolves a session token to the caller's identity.
func (s *AuthService) CurrentAdmin(ctx context.Context, token string) (domain.Session, error) {
	claims, err := s.Signer.Verifier(s.Issuer).Verify(token)
	if err != nil {
		return domain.Session{}, ErrUnauthorized
	}
	if claims.Kind != jwtx.KindSession {
		return domain.Session{}, ErrUnauthorized
	}

	return domain.Session{
		AdminID: claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
	}, nil
}

func (s *AuthService) sign(admin domain.AdminUser, kind string, ttl time.Duration) (string, error) {
	claims := jwtx.NewClaims(admin.ID, admin.Email, admin.Role, kind, s.Issuer, ttl, time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return jwtx.DefaultSessionTTL
}

func (s *AuthService) challengeTTL() time.Duration {
	if s.ChallengeTTL > 0 {
		return s.ChallengeTTL
	}
	return DefaultChallengeTTL
}

func (s *AuthService) totpIssuer() string {
	if s.TOTPIssuer != "" {
		return s.TOTPIssuer
	}
	return "loandesk"
}

func (s *AuthService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
