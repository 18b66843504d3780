package loansdk

import (
	"context"
	"net/http"
)

// Session is an authenticated handle on the admin API.
type Session struct {
	client *Client

	// Token is the bearer session token.
	Token string
}

func (s *Session) auth() http.Header {
	return http.Header{"Authorization": []string{"Bearer " + s.Token}}
}

// ListApplications returns every application, newest first.
func (s *Session) ListApplications(ctx context.Context) (*ApplicationListResponse, error) {
	var out ApplicationListResponse
	if err := s.client.do(ctx, http.MethodGet, "/v1/applications", s.auth(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetApplication returns one application by ID.
func (s *Session) GetApplication(ctx context.Context, id string) (*Application, error) {
	var out Application
	if err := s.client.do(ctx, http.MethodGet, "/v1/applications/"+id, s.auth(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetStatus moves an application along the review axis.
func (s *Session) SetStatus(ctx context.Context, id, status string) (*Application, error) {
	var out Application
	err := s.client.do(ctx, http.MethodPatch, "/v1/applications/"+id+"/status",
		s.auth(), StatusUpdateRequest{Status: status}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetPaymentStatus records an administrative payment correction.
func (s *Session) SetPaymentStatus(ctx context.Context, id, paymentStatus string) (*Application, error) {
	var out Application
	err := s.client.do(ctx, http.MethodPatch, "/v1/applications/"+id+"/payment-status",
		s.auth(), PaymentStatusUpdateRequest{PaymentStatus: paymentStatus}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteApplication removes an application permanently.
func (s *Session) DeleteApplication(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/v1/applications/"+id, s.auth(), nil, nil)
}

// ChangePassword replaces the logged-in admin's password.
func (s *Session) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return s.client.do(ctx, http.MethodPut, "/v1/admin/password", s.auth(),
		PasswordChangeRequest{CurrentPassword: currentPassword, NewPassword: newPassword}, nil)
}

// EnrollTOTP generates a TOTP secret for the logged-in admin.
func (s *Session) EnrollTOTP(ctx context.Context) (*MFAEnrollResponse, error) {
	var out MFAEnrollResponse
	err := s.client.do(ctx, http.MethodPost, "/v1/admin/mfa/totp/enroll", s.auth(), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ActivateTOTP confirms an enrolled secret with a current code.
func (s *Session) ActivateTOTP(ctx context.Context, code string) error {
	return s.client.do(ctx, http.MethodPost, "/v1/admin/mfa/totp/activate",
		s.auth(), MFACodeRequest{Code: code}, nil)
}

// DisableTOTP turns the second factor off. A current code is required.
func (s *Session) DisableTOTP(ctx context.Context, code string) error {
	return s.client.do(ctx, http.MethodDelete, "/v1/admin/mfa/totp",
		s.auth(), MFACodeRequest{Code: code}, nil)
}
