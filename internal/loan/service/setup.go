package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
	"github.com/madivinecapital/loandesk/internal/loan/store"
	"github.com/madivinecapital/loandesk/pkg/cryptox"
	"github.com/madivinecapital/loandesk/pkg/idx"
)

// SetupService creates the first administrator account. It only works while
// the admin table is empty and the caller presents the deploy-time setup
// token, after which the endpoint is permanently closed.
type SetupService struct {
	Store      store.Store
	SetupToken string
	Logger     *slog.Logger
}

// CreateFirstAdmin bootstraps the initial admin account.
func (s *SetupService) CreateFirstAdmin(ctx context.Context, token, email, password string) (domain.AdminUser, error) {
	if s.SetupToken == "" {
		return domain.AdminUser{}, ErrSetupToken
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.SetupToken)) != 1 {
		return domain.AdminUser{}, ErrSetupToken
	}

	empty, err := s.Store.Admins().IsEmpty(ctx)
	if err != nil {
		return domain.AdminUser{}, fmt.Errorf("check admin table: %w", err)
	}
	if !empty {
		return domain.AdminUser{}, ErrSetupComplete
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.AdminUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	admin := domain.AdminUser{
		ID:           idx.New().String(),
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Admins().CreateAdmin(ctx, admin); err != nil {
		return domain.AdminUser{}, fmt.Errorf("create admin: %w", err)
	}

	s.logger().InfoContext(ctx, "first admin created",
		slog.String("admin_id", admin.ID))
	return admin, nil
}

func (s *SetupService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
