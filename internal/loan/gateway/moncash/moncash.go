// Package moncash implements the payment gateway on the Digicel MonCash
// REST API.
//
// API reference:
// https://sandbox.moncashbutton.digicelgroup.com/Moncash-business/resources/doc/
package moncash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/madivinecapital/loandesk/internal/loan/gateway"
)

// SandboxBaseURL is the MonCash sandbox API root. Production swaps the host.
const SandboxBaseURL = "https://sandbox.moncashbutton.digicelgroup.com/Api"

const (
	defaultTimeout = 15 * time.Second

	// tokenSlack retires a cached OAuth token a little before the provider
	// would, so an about-to-expire token is never sent.
	tokenSlack = 30 * time.Second
)

type Config struct {
	BaseURL      string // defaults to SandboxBaseURL
	ClientID     string
	ClientSecret string

	// HTTPClient overrides the default bounded client, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to MonCash. It caches the OAuth client-credentials token
// until near expiry and is safe for concurrent use.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	now func() time.Time

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = SandboxBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:      baseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
		now:          time.Now,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type createPaymentResponse struct {
	Mode         string `json:"mode"`
	Path         string `json:"path"`
	PaymentToken struct {
		Created string `json:"created"`
		Expired string `json:"expired"`
		Token   string `json:"token"`
	} `json:"payment_token"`
	Status    int   `json:"status"`
	Timestamp int64 `json:"timestamp"`
}

type verifyResponse struct {
	Payment struct {
		Reference     string `json:"reference"`
		TransactionID string `json:"transaction_id"`
		Cost          int64  `json:"cost"`
		Message       string `json:"message"`
		Status        string `json:"status"`
	} `json:"payment"`
}

// CreatePayment opens a payment for the order and returns the provider
// token used to build the applicant redirect.
func (c *Client) CreatePayment(ctx context.Context, req gateway.CreatePaymentRequest) (gateway.PaymentToken, error) {
	body := map[string]any{
		"amount":    req.AmountHTG,
		"orderId":   req.OrderID,
		"reference": req.Reference,
	}

	var resp createPaymentResponse
	if err := c.doAuthed(ctx, "create payment", "/v1/CreatePayment", body, &resp); err != nil {
		return gateway.PaymentToken{}, err
	}

	if resp.PaymentToken.Token == "" {
		return gateway.PaymentToken{}, &gateway.RequestError{
			Op:      "create payment",
			Message: "response missing payment token",
		}
	}

	return gateway.PaymentToken{
		Token:     resp.PaymentToken.Token,
		CreatedAt: parseTokenTime(resp.PaymentToken.Created),
		ExpiresAt: parseTokenTime(resp.PaymentToken.Expired),
	}, nil
}

// VerifyTransaction polls the provider for its verdict on a transaction.
func (c *Client) VerifyTransaction(ctx context.Context, transactionID string) (gateway.Verification, error) {
	body := map[string]any{"transactionId": transactionID}

	var resp verifyResponse
	if err := c.doAuthed(ctx, "verify transaction", "/v1/RetrieveTransactionPayment", body, &resp); err != nil {
		return gateway.Verification{}, err
	}

	status := gateway.VerifyStatus(strings.ToUpper(resp.Payment.Status))
	switch status {
	case gateway.VerifyPending, gateway.VerifySuccessful, gateway.VerifyFailed:
	default:
		return gateway.Verification{}, &gateway.RequestError{
			Op:      "verify transaction",
			Message: fmt.Sprintf("unrecognized payment status %q", resp.Payment.Status),
		}
	}

	return gateway.Verification{
		Status:        status,
		Reference:     resp.Payment.Reference,
		TransactionID: resp.Payment.TransactionID,
		Message:       resp.Payment.Message,
		CostHTG:       resp.Payment.Cost,
	}, nil
}

// RedirectURL builds the applicant-facing payment page URL.
func (c *Client) RedirectURL(token string) string {
	return c.baseURL + "/v1/Redirect?token=" + url.QueryEscape(token)
}

// doAuthed performs a bearer-authenticated JSON POST, fetching or refreshing
// the OAuth token as needed. A 401 retires the cached token and retries once
// with a fresh one.
func (c *Client) doAuthed(ctx context.Context, op, path string, body any, out any) error {
	for attempt := 0; attempt < 2; attempt++ {
		token, err := c.authToken(ctx)
		if err != nil {
			return err
		}

		status, err := c.postJSON(ctx, op, path, token, body, out)
		if err == nil {
			return nil
		}
		if status == http.StatusUnauthorized {
			c.invalidateToken(token)
			if attempt == 0 {
				continue
			}
			// A fresh token was still rejected.
			return gateway.ErrAuth
		}
		return err
	}
	return gateway.ErrAuth
}

func (c *Client) authToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := "scope=read,write&grant_type=client_credentials"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth/token", strings.NewReader(form))
	if err != nil {
		return "", &gateway.RequestError{Op: "oauth", Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &gateway.RequestError{Op: "oauth", Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", gateway.ErrAuth
	}
	if resp.StatusCode != http.StatusOK {
		return "", &gateway.RequestError{
			Op:         "oauth",
			StatusCode: resp.StatusCode,
			Message:    readErrorBody(resp.Body),
		}
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", &gateway.RequestError{Op: "oauth", Message: "malformed token response", Err: err}
	}
	if tok.AccessToken == "" {
		return "", gateway.ErrAuth
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenSlack)
	return c.accessToken, nil
}

func (c *Client) invalidateToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken == token {
		c.accessToken = ""
	}
}

// postJSON returns the HTTP status code alongside the error so the caller
// can distinguish a stale bearer token from other failures.
func (c *Client) postJSON(ctx context.Context, op, path, bearer string, body any, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, &gateway.RequestError{Op: op, Message: err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, &gateway.RequestError{Op: op, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts land here. They say nothing about the payment itself.
		return 0, &gateway.RequestError{Op: op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &gateway.RequestError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    readErrorBody(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &gateway.RequestError{Op: op, Message: "malformed response", Err: err}
	}
	return resp.StatusCode, nil
}

func readErrorBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(b) == 0 {
		return "no response body"
	}
	return string(bytes.TrimSpace(b))
}

// parseTokenTime handles the couple of shapes MonCash uses for token
// timestamps. Unparseable values come back zero rather than failing the
// payment.
func parseTokenTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
