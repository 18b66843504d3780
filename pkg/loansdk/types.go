package loansdk

// ErrorResponse is the standard error body returned by every endpoint.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned when a submitted form fails field
// validation.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ApplicationDraft is the applicant's loan request form. Employer and
// reference blocks are optional.
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

// Application is one loan application as the admin console sees it.
type Application struct {
	ID string `json:"id"`

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
	InterestRate   int   `json:"interest_rate"`

	Reason            string `json:"reason"`
	SignatureFullName string `json:"signature_full_name"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// ApplicationListResponse wraps the admin list endpoint.
type ApplicationListResponse struct {
	Applications []Application `json:"applications"`
	Total        int           `json:"total"`
}

// CheckoutStartRequest opens a checkout for a completed form.
type CheckoutStartRequest struct {
	ApplicationDraft
}

// CheckoutStartResponse carries the payment redirect, or the already
// submitted application when the gateway was unreachable (degraded mode).
type CheckoutStartResponse struct {
	OrderID     string `json:"order_id"`
	RedirectURL string `json:"redirect_url,omitempty"`

	Degraded    bool         `json:"degraded,omitempty"`
	Application *Application `json:"application,omitempty"`
}

// CheckoutCompleteRequest reports a gateway transaction for verification.
type CheckoutCompleteRequest struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
}

// CheckoutCompleteResponse carries the provider verdict; Application is set
// only when the payment was confirmed and the record persisted.
type CheckoutCompleteResponse struct {
	Status      string       `json:"status"`
	Application *Application `json:"application,omitempty"`
}

// SetupRequest creates the first admin account.
type SetupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SetupResponse confirms first-admin creation.
type SetupResponse struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
}

// LoginRequest is an admin email/password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries either a full session token or, for MFA-enabled
// accounts, a challenge token to exchange via the MFA verify endpoint.
type LoginResponse struct {
	Token     string `json:"token,omitempty"`
	TokenType string `json:"token_type,omitempty"`

	MFARequired    bool   `json:"mfa_required,omitempty"`
	ChallengeToken string `json:"challenge_token,omitempty"`
}

// PasswordChangeRequest replaces the logged-in admin's password.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// MFAVerifyRequest completes a login challenge with a TOTP code.
type MFAVerifyRequest struct {
	ChallengeToken string `json:"challenge_token"`
	Code           string `json:"code"`
}

// MFAEnrollResponse carries a freshly generated TOTP secret. The secret is
// inactive until confirmed via the activate endpoint.
type MFAEnrollResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// MFACodeRequest carries a TOTP code for activation or disabling.
type MFACodeRequest struct {
	Code string `json:"code"`
}

// StatusUpdateRequest moves an application along the review axis.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// PaymentStatusUpdateRequest records an administrative payment correction.
// The legacy value "unpaid" is accepted as a synonym of "pending".
type PaymentStatusUpdateRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// HealthChecks itemizes dependency health in the readiness response.
type HealthChecks struct {
	Database string `json:"database"`
	Intents  string `json:"intents"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
