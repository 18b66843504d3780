// Package loansdk is a small Go client for the loandesk HTTP API, used by
// the end-to-end tests and by internal tooling.
package loansdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to a loandesk instance. Unauthenticated operations live on
// the client; admin operations require a Session from Login or VerifyMFA.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// StartCheckout opens a checkout for a completed application form.
func (c *Client) StartCheckout(ctx context.Context, draft ApplicationDraft) (*CheckoutStartResponse, error) {
	var out CheckoutStartResponse
	err := c.do(ctx, http.MethodPost, "/v1/checkout", nil, CheckoutStartRequest{ApplicationDraft: draft}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteCheckout reports a gateway transaction for verification.
func (c *Client) CompleteCheckout(ctx context.Context, orderID, transactionID string) (*CheckoutCompleteResponse, error) {
	var out CheckoutCompleteResponse
	err := c.do(ctx, http.MethodPost, "/v1/checkout/complete", nil,
		CheckoutCompleteRequest{OrderID: orderID, TransactionID: transactionID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Setup creates the first admin account using the deploy-time setup token.
func (c *Client) Setup(ctx context.Context, setupToken, email, password string) (*SetupResponse, error) {
	headers := http.Header{"X-Setup-Token": []string{setupToken}}

	var out SetupResponse
	err := c.do(ctx, http.MethodPost, "/v1/setup", headers, SetupRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates an admin. When the account has MFA enabled, the
// returned error is nil, the session is nil, and the response carries a
// challenge token for VerifyMFA.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, *LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/admin/login", nil, LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, nil, err
	}
	if out.MFARequired {
		return nil, &out, nil
	}
	return &Session{client: c, Token: out.Token}, &out, nil
}

// VerifyMFA exchanges a login challenge token and TOTP code for a session.
func (c *Client) VerifyMFA(ctx context.Context, challengeToken, code string) (*Session, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/admin/mfa/verify", nil,
		MFAVerifyRequest{ChallengeToken: challengeToken, Code: code}, &out)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, Token: out.Token}, nil
}

// Livez hits the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz hits the readiness probe.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one JSON round trip, decoding error bodies into *APIError.
func (c *Client) do(ctx context.Context, method, path string, headers http.Header, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("loansdk: marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("loansdk: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("loansdk: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("loansdk: decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Code: "unknown"}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return apiErr
	}

	var verr ValidationErrorResponse
	if err := json.Unmarshal(buf.Bytes(), &verr); err == nil && len(verr.Details) > 0 {
		apiErr.Code = verr.Code
		apiErr.Description = verr.Message
		apiErr.Details = verr.Details
		return apiErr
	}

	var eresp ErrorResponse
	if err := json.Unmarshal(buf.Bytes(), &eresp); err == nil && eresp.Error != "" {
		apiErr.Code = eresp.Error
		apiErr.Description = eresp.ErrorDescription
	}
	return apiErr
}
