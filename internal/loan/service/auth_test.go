package service

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
	"github.com/madivinecapital/loandesk/pkg/cryptox"
	"github.com/madivinecapital/loandesk/pkg/idx"
)

func createAdmin(t *testing.T, env *testEnv, email, password, role string) domain.AdminUser {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	admin := domain.AdminUser{
		ID:           idx.New().String(),
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, env.Store.Admins().CreateAdmin(context.Background(), admin))
	return admin
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := createAdmin(t, env, "admin@example.ht", "hunter2hunter2", domain.RoleAdmin)

	res, err := env.Auth.Authenticate(ctx, "Admin@Example.HT", "hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, res.SessionToken)
	assert.False(t, res.MFARequired)

	sess, err := env.Auth.CurrentAdmin(ctx, res.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, sess.AdminID)
	assert.Equal(t, "admin@example.ht", sess.Email)
	assert.True(t, sess.IsAdmin())
}

func TestAuthenticate_UniformFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	createAdmin(t, env, "admin@example.ht", "hunter2hunter2", domain.RoleAdmin)
	createAdmin(t, env, "viewer@example.ht", "hunter2hunter2", "viewer")

	cases := map[string][2]string{
		"unknown email":  {"nobody@example.ht", "hunter2hunter2"},
		"wrong password": {"admin@example.ht", "wrong-password"},
		"non-admin role": {"viewer@example.ht", "hunter2hunter2"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := env.Auth.Authenticate(ctx, c[0], c[1])
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Empty(t, res.SessionToken)
		})
	}
}

func TestCurrentAdmin_RejectsGarbage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Auth.CurrentAdmin(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCurrentAdmin_RejectsChallengeToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := createAdmin(t, env, "admin@example.ht", "hunter2hunter2", domain.RoleAdmin)
	enrollAndActivate(t, env, admin)

	res, err := env.Auth.Authenticate(ctx, admin.Email, "hunter2hunter2")
	require.ErrorIs(t, err, ErrMFARequired)
	require.NotEmpty(t, res.ChallengeToken)

	// A challenge token must not pass as a session.
	_, err = env.Auth.CurrentAdmin(ctx, res.ChallengeToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// enrollAndActivate walks the full TOTP enrollment and returns the secret.
func enrollAndActivate(t *testing.T, env *testEnv, admin domain.AdminUser) string {
	t.Helper()
	ctx := context.Background()
	sess := domain.Session{AdminID: admin.ID, Email: admin.Email, Role: admin.Role}

	enroll, err := env.Auth.EnrollTOTP(ctx, sess)
	require.NoError(t, err)
	require.NotEmpty(t, enroll.Secret)
	require.Contains(t, enroll.URL, "otpauth://")

	code, err := totp.GenerateCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, env.Auth.ActivateTOTP(ctx, sess, code))

	return enroll.Secret
}

func TestMFAFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := createAdmin(t, env, "admin@example.ht", "hunter2hunter2", domain.RoleAdmin)
	secret := enrollAndActivate(t, env, admin)

	res, err := env.Auth.Authenticate(ctx, admin.Email, "hunter2hunter2")
	require.ErrorIs(t, err, ErrMFARequired)
	assert.True(t, res.MFARequired)
	assert.Empty(t, res.SessionToken)
	require.NotEmpty(t, res.ChallengeToken)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	final, err := env.Auth.VerifyTOTP(ctx, res.ChallengeToken, code)
	require.NoError(t, err)
	require.NotEmpty(t, final.SessionToken)

	sess, err := env.Auth.CurrentAdmin(ctx, final.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, sess.AdminID)
}

func TestVerifyTOTP_WrongCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := createAdmin(t, env, "admin@example.ht", "hunter2hunter2", domain.RoleAdmin)
	enrollAndActivate(t, env, admin)

	res, err := env.Auth.Authenticate(ctx, admin.Email, "hunter2hunter2")
	require.ErrorIs(t, err, ErrMFARequired)

	_, err = env.Auth.VerifyTOTP(ctx, res.ChallengeToken, "000000")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTOTP_SessionTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := createAdmin(t, env, "admin@example.ht", "hunter2hunter2", domain.RoleAdmin)

	res, err := env.Auth.Authenticate(ctx, admin.Email, "hunter2hunter2")
	require.NoError(t, err)

	// A full session token is not a challenge token.
	_, err = env.Auth.VerifyTOTP(ctx, res.SessionToken, "000000")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestActivateTOTP_RequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)

	admin := createAdmin(t, env, "admin@example.ht", "hunter2hunter2", domain.RoleAdmin)
	sess := domain.Session{AdminID: admin.ID, Email: admin.Email, Role: admin.Role}

	err := env.Auth.ActivateTOTP(context.Background(), sess, "000000")
	assert.ErrorIs(t, err, ErrMFANotEnrolled)
}

func TestDisableTOTP(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := createAdmin(t, env, "admin@example.ht", "hunter2hunter2", domain.RoleAdmin)
	secret := enrollAndActivate(t, env, admin)
	sess := domain.Session{AdminID: admin.ID, Email: admin.Email, Role: admin.Role}

	// Wrong code keeps MFA on.
	assert.ErrorIs(t, env.Auth.DisableTOTP(ctx, sess, "000000"), ErrInvalidCredentials)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, env.Auth.DisableTOTP(ctx, sess, code))

	// Password alone logs in again.
	res, err := env.Auth.Authenticate(ctx, admin.Email, "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionToken)
}

func TestChallengeTokenExpiry(t *testing.T) {
	env := newTestEnv(t)
	env.Auth.ChallengeTTL = time.Nanosecond
	ctx := context.Background()

	admin := createAdmin(t, env, "admin@example.ht", "hunter2hunter2", domain.RoleAdmin)
	secret := enrollAndActivate(t, env, admin)

	res, err := env.Auth.Authenticate(ctx, admin.Email, "hunter2hunter2")
	require.ErrorIs(t, err, ErrMFARequired)

	time.Sleep(10 * time.Millisecond)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	_, err = env.Auth.VerifyTOTP(ctx, res.ChallengeToken, code)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := createAdmin(t, env, "admin@example.ht", "hunter2hunter2", domain.RoleAdmin)
	sess := domain.Session{AdminID: admin.ID, Email: admin.Email, Role: admin.Role}

	err := env.Auth.ChangePassword(ctx, sess, "wrong-password", "brand-new-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, env.Auth.ChangePassword(ctx, sess, "hunter2hunter2", "brand-new-password"))

	_, err = env.Auth.Authenticate(ctx, admin.Email, "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := env.Auth.Authenticate(ctx, admin.Email, "brand-new-password")
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionToken)
}

func TestChangePassword_RequiresAdminSession(t *testing.T) {
	env := newTestEnv(t)

	err := env.Auth.ChangePassword(context.Background(), domain.Session{}, "a", "b")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
