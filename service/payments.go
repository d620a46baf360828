package service

import (
	"context"
	"net/http"
	"net/url"
)

const (
	authorizationsPath = "/v2/payments/authorizations"
	capturesPath       = "/v2/payments/captures"
)

// PaymentService calls the v2 payments API for authorizations and captures
type PaymentService struct {
	client *Client
}

// ShowAuthorization gets the details of an authorized payment
func (s *PaymentService) ShowAuthorization(ctx context.Context, id string, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodGet, authorizationsPath+"/"+url.PathEscape(id), nil, opts...)
}

// CaptureAuthorization captures an authorized payment
func (s *PaymentService) CaptureAuthorization(ctx context.Context, id string, body interface{}, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodPost, authorizationsPath+"/"+url.PathEscape(id)+"/capture", body, opts...)
}

// ReauthorizeAuthorization reauthorizes an authorized payment
func (s *PaymentService) ReauthorizeAuthorization(ctx context.Context, id string, body interface{}, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodPost, authorizationsPath+"/"+url.PathEscape(id)+"/reauthorize", body, opts...)
}

// VoidAuthorization voids an authorized payment
func (s *PaymentService) VoidAuthorization(ctx context.Context, id string, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodPost, authorizationsPath+"/"+url.PathEscape(id)+"/void", nil, opts...)
}

// ShowCapture gets the details of a captured payment
func (s *PaymentService) ShowCapture(ctx context.Context, id string, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodGet, capturesPath+"/"+url.PathEscape(id), nil, opts...)
}

// RefundCapture refunds a captured payment. A nil body refunds it in full.
func (s *PaymentService) RefundCapture(ctx context.Context, id string, body interface{}, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodPost, capturesPath+"/"+url.PathEscape(id)+"/refund", body, opts...)
}
