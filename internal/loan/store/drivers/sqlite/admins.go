package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
)

type adminsRepo struct {
	db dbtx
}

const adminColumns = `id, email, password_hash, role, mfa_enabled, mfa_secret, created_at, updated_at`

func (r *adminsRepo) CreateAdmin(ctx context.Context, a domain.AdminUser) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_users (id, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, domain.NormalizeEmail(a.Email), a.PasswordHash, a.Role,
		a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *adminsRepo) GetAdminByEmail(ctx context.Context, email string) (domain.AdminUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE email = ?`,
		domain.NormalizeEmail(email))
	return scanAdmin(row)
}

func (r *adminsRepo) GetAdminByID(ctx context.Context, id string) (domain.AdminUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE id = ?`, id)
	return scanAdmin(row)
}

func (r *adminsRepo) UpdateAdminPasswordHash(ctx context.Context, id string, newHash string) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE admin_users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), id))
}

func (r *adminsRepo) UpdateAdminMFASecret(ctx context.Context, id string, secret string) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE admin_users SET mfa_secret = ?, updated_at = ? WHERE id = ?`,
		secret, time.Now().UTC(), id))
}

func (r *adminsRepo) EnableAdminMFA(ctx context.Context, id string) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE admin_users SET mfa_enabled = ?, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), time.Now().UTC(), id))
}

func (r *adminsRepo) DisableAdminMFA(ctx context.Context, id string) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE admin_users SET mfa_enabled = NULL, mfa_secret = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id))
}

func (r *adminsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func scanAdmin(row *sql.Row) (domain.AdminUser, error) {
	var (
		a          domain.AdminUser
		mfaEnabled sql.NullTime
		mfaSecret  sql.NullString
		createdAt  time.Time
		updatedAt  time.Time
	)

	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role,
		&mfaEnabled, &mfaSecret, &createdAt, &updatedAt)
	if err != nil {
		return domain.AdminUser{}, mapNotFound(err)
	}

	a.MFAEnabled = mapNullTimePtr(mfaEnabled)
	a.MFASecret = mapNullStringPtr(mfaSecret)
	a.CreatedAt = createdAt.UTC()
	a.UpdatedAt = updatedAt.UTC()
	return a, nil
}
