// Package service maps PayPal's REST endpoints onto calls that each perform a
// single authenticated HTTP request.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal-rest-client/config"
	"github.com/companieshouse/paypal-rest-client/dao"
	"github.com/companieshouse/paypal-rest-client/models"
	"github.com/google/uuid"
)

// Client sends authenticated requests to one PayPal environment
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenProvider

	Orders     *OrderService
	Payments   *PaymentService
	Refunds    *RefundService
	PaymentsV1 *PaymentV1Service
}

// RequestOption adjusts an outgoing request before it is sent
type RequestOption func(req *http.Request)

// WithRequestID sets the PayPal-Request-Id header PayPal uses to make POST
// calls idempotent.
func WithRequestID(id string) RequestOption {
	return WithHeader("PayPal-Request-Id", id)
}

// WithHeader sets an arbitrary request header, e.g. Prefer.
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// WithQuery sets the query string, for list endpoints.
func WithQuery(query url.Values) RequestOption {
	return func(req *http.Request) {
		req.URL.RawQuery = query.Encode()
	}
}

// NewRequestID returns a fresh value for WithRequestID.
func NewRequestID() string {
	return uuid.NewString()
}

// NewClient builds a client, and the token manager behind it, from cfg
func NewClient(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := cfg.APIBase()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout()}

	var store dao.DAO
	if cfg.TokenStoreEnabled() {
		store = dao.NewDAO(cfg)
	}

	exchanger := NewClientCredentialsExchanger(base, cfg.PaypalClientID, cfg.PaypalSecret, httpClient)
	tokens := NewTokenManager(exchanger, store, base+"|"+cfg.PaypalClientID, cfg.TokenExpirySkew())

	return New(base, httpClient, tokens), nil
}

// New returns a client for baseURL that authenticates with tokens
func New(baseURL string, httpClient *http.Client, tokens TokenProvider) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		BaseURL:    baseURL,
		HTTPClient: httpClient,
		Tokens:     tokens,
	}
	c.Orders = &OrderService{client: c}
	c.Payments = &PaymentService{client: c}
	c.Refunds = &RefundService{client: c}
	c.PaymentsV1 = &PaymentV1Service{client: c}

	return c
}

// Request sends one authenticated call to PayPal and classifies the outcome.
// body may be nil, raw JSON ([]byte or json.RawMessage) or any value that
// encodes to JSON. A nil error means the Response is Success, NoContent or
// NotFound; failures are *RequestError.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}, opts ...RequestOption) (*Response, error) {
	token, err := c.Tokens.GetToken(ctx)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			return nil, err
		}
		return nil, &RequestError{Type: Error, Err: err}
	}

	reqBody, err := encodeBody(body)
	if err != nil {
		return nil, &RequestError{Type: Error, Err: fmt.Errorf("error encoding request body for paypal: [%w]", err)}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, &RequestError{Type: Error, Err: fmt.Errorf("error generating request for paypal: [%w]", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", token.AuthorizationHeader())
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	log.Trace("performing paypal request", log.Data{"method": method, "path": path})

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &RequestError{Type: BadNetwork, Err: fmt.Errorf("error sending request to paypal: [%w]", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Type: BadNetwork, StatusCode: resp.StatusCode, Err: fmt.Errorf("error reading response from paypal: [%w]", err)}
	}

	log.Trace("paypal response received", log.Data{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"debug_id": resp.Header.Get("Paypal-Debug-Id"),
	})

	return c.interpret(ctx, token, resp.StatusCode, respBody)
}

func (c *Client) interpret(ctx context.Context, token *models.Token, status int, body []byte) (*Response, error) {
	switch {
	case status >= 200 && status < 300:
		if len(bytes.TrimSpace(body)) == 0 {
			return &Response{Type: NoContent, StatusCode: status}, nil
		}
		if !json.Valid(body) {
			return nil, &RequestError{Type: Error, StatusCode: status, Body: body, Err: errors.New("error reading response from paypal: body is not valid json")}
		}
		return &Response{Type: Success, StatusCode: status, Body: body}, nil

	case status == http.StatusNotFound:
		resp := &Response{Type: NotFound, StatusCode: status}
		if len(bytes.TrimSpace(body)) > 0 {
			resp.Body = body
		}
		return resp, nil

	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		c.Tokens.Invalidate(ctx, token.AccessToken)
		return nil, &RequestError{Type: Unauthorized, StatusCode: status, Body: body}

	default:
		return nil, upstreamError(status, body)
	}
}

func encodeBody(body interface{}) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(encoded), nil
	}
}
