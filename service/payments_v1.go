package service

import (
	"context"
	"net/http"
	"net/url"
)

const (
	paymentsV1Path = "/v1/payments/payment"
	salesV1Path    = "/v1/payments/sale"
	refundsV1Path  = "/v1/payments/refund"
)

// PaymentV1Service calls the legacy v1 payments API
type PaymentV1Service struct {
	client *Client
}

// Create creates a payment
func (s *PaymentV1Service) Create(ctx context.Context, body interface{}, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodPost, paymentsV1Path, body, opts...)
}

// Show gets the details of a payment
func (s *PaymentV1Service) Show(ctx context.Context, id string, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodGet, paymentsV1Path+"/"+url.PathEscape(id), nil, opts...)
}

// List lists payments. query carries PayPal's paging and filter parameters
// such as count, start_id and start_time.
func (s *PaymentV1Service) List(ctx context.Context, query url.Values, opts ...RequestOption) (*Response, error) {
	if len(query) > 0 {
		opts = append([]RequestOption{WithQuery(query)}, opts...)
	}
	return s.client.Request(ctx, http.MethodGet, paymentsV1Path, nil, opts...)
}

// Execute executes a payment the payer has approved
func (s *PaymentV1Service) Execute(ctx context.Context, id string, body interface{}, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodPost, paymentsV1Path+"/"+url.PathEscape(id)+"/execute", body, opts...)
}

// ShowSale gets the details of a sale transaction
func (s *PaymentV1Service) ShowSale(ctx context.Context, id string, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodGet, salesV1Path+"/"+url.PathEscape(id), nil, opts...)
}

// RefundSale refunds a sale transaction
func (s *PaymentV1Service) RefundSale(ctx context.Context, id string, body interface{}, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodPost, salesV1Path+"/"+url.PathEscape(id)+"/refund", body, opts...)
}

// ShowRefund gets the details of a refund
func (s *PaymentV1Service) ShowRefund(ctx context.Context, id string, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodGet, refundsV1Path+"/"+url.PathEscape(id), nil, opts...)
}
