package domain

import (
	"strings"
	"time"
)

// Loan term bounds enforced at submission.
const (
	AmountMin = 10_000
	AmountMax = 500_000

	DurationMinMonths = 3
	DurationMaxMonths = 36
)

// LoanApplication is one submitted loan request, as reviewed by the admin
// console.
type LoanApplication struct {
	ID string

	// Applicant
	FullName   string
	Address    string
	Phone      string
	Email      string
	Employment string

	// Employer, optional
	EmployerName    string
	EmployerPhone   string
	EmployerAddress string

	// Reference, optional
	ReferenceName    string
	ReferencePhone   string
	ReferenceAddress string

	// Loan terms
	Amount         int64 // HTG
	DurationMonths int
	InterestRate   int // percent, always within [3, 10]

	Reason            string
	SignatureFullName string

	Status        Status
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApplicationDraft is the applicant's completed form before persistence: the
// full payload minus identity and lifecycle fields. It is parked in the
// checkout holding area between "form completed" and "record persisted".
type ApplicationDraft struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Employment string `json:"employment"`

	EmployerName    string `json:"employer_name,omitempty"`
	EmployerPhone   string `json:"employer_phone,omitempty"`
	EmployerAddress string `json:"employer_address,omitempty"`

	ReferenceName    string `json:"reference_name,omitempty"`
	ReferencePhone   string `json:"reference_phone,omitempty"`
	ReferenceAddress string `json:"reference_address,omitempty"`

	Amount         int64 `json:"amount"`
	DurationMonths int   `json:"duration_months"`

	Reason            string `json:"reason"`
	SignatureFullName string `json:"signature_full_name"`
}

// Validate checks the required applicant fields and loan term bounds.
// Employer and reference fields may be empty.
func (d ApplicationDraft) Validate() error {
	fields := map[string]string{}

	required := map[string]string{
		"full_name":           d.FullName,
		"address":             d.Address,
		"phone":               d.Phone,
		"email":               d.Email,
		"employment":          d.Employment,
		"reason":              d.Reason,
		"signature_full_name": d.SignatureFullName,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[name] = "required"
		}
	}

	if d.Amount < AmountMin || d.Amount > AmountMax {
		fields["amount"] = "must be between 10000 and 500000"
	}
	if d.DurationMonths < DurationMinMonths || d.DurationMonths > DurationMaxMonths {
		fields["duration_months"] = "must be between 3 and 36"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
