package sqlite

import (
	"context"
	"time"

	"github.com/madivinecapital/loandesk/internal/loan/domain"
)

type applicationsRepo struct {
	db dbtx
}

const applicationColumns = `
	id, full_name, address, phone, email, employment,
	employer_name, employer_phone, employer_address,
	reference_name, reference_phone, reference_address,
	amount, duration_months, interest_rate,
	reason, signature_full_name,
	status, payment_status, created_at, updated_at`

func (r *applicationsRepo) CreateApplication(ctx context.Context, a domain.LoanApplication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO loan_applications (
			id, full_name, address, phone, email, employment,
			employer_name, employer_phone, employer_address,
			reference_name, reference_phone, reference_address,
			amount, duration_months, interest_rate,
			reason, signature_full_name,
			status, payment_status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.FullName, a.Address, a.Phone, a.Email, a.Employment,
		a.EmployerName, a.EmployerPhone, a.EmployerAddress,
		a.ReferenceName, a.ReferencePhone, a.ReferenceAddress,
		a.Amount, a.DurationMonths, a.InterestRate,
		a.Reason, a.SignatureFullName,
		string(a.Status), string(a.PaymentStatus), a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *applicationsRepo) GetApplicationByID(ctx context.Context, id string) (domain.LoanApplication, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM loan_applications WHERE id = ?`, id)

	a, err := scanApplication(row)
	if err != nil {
		return domain.LoanApplication{}, mapNotFound(err)
	}
	return a, nil
}

func (r *applicationsRepo) ListApplications(ctx context.Context) ([]domain.LoanApplication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM loan_applications
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LoanApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *applicationsRepo) UpdateApplicationStatus(ctx context.Context, id string, status domain.Status) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE loan_applications SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id))
}

func (r *applicationsRepo) UpdateApplicationPaymentStatus(ctx context.Context, id string, ps domain.PaymentStatus) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`UPDATE loan_applications SET payment_status = ?, updated_at = ? WHERE id = ?`,
		string(ps), time.Now().UTC(), id))
}

func (r *applicationsRepo) DeleteApplication(ctx context.Context, id string) error {
	return affectedOrNotFound(r.db.ExecContext(ctx,
		`DELETE FROM loan_applications WHERE id = ?`, id))
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanApplication is the single mapping point from a storage row to the
// domain record. Payment status is normalized here so no consumer ever sees
// the legacy "unpaid" synonym.
func scanApplication(s scanner) (domain.LoanApplication, error) {
	var (
		a             domain.LoanApplication
		status        string
		paymentStatus string
		createdAt     time.Time
		updatedAt     time.Time
	)

	err := s.Scan(
		&a.ID, &a.FullName, &a.Address, &a.Phone, &a.Email, &a.Employment,
		&a.EmployerName, &a.EmployerPhone, &a.EmployerAddress,
		&a.ReferenceName, &a.ReferencePhone, &a.ReferenceAddress,
		&a.Amount, &a.DurationMonths, &a.InterestRate,
		&a.Reason, &a.SignatureFullName,
		&status, &paymentStatus, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.LoanApplication{}, err
	}

	if st, ok := domain.ParseStatus(status); ok {
		a.Status = st
	} else {
		a.Status = domain.StatusPending
	}
	a.PaymentStatus = domain.NormalizePaymentStatus(paymentStatus)
	a.CreatedAt = createdAt.UTC()
	a.UpdatedAt = updatedAt.UTC()
	return a, nil
}
