package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/plutov/paypal/v4"
)

const ordersPath = "/v2/checkout/orders"

// OrderService calls the v2 checkout orders API
type OrderService struct {
	client *Client
}

// Create creates an order from a PayPal order request body
func (s *OrderService) Create(ctx context.Context, body interface{}, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodPost, ordersPath, body, opts...)
}

// Show gets the details of an order
func (s *OrderService) Show(ctx context.Context, id string, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodGet, orderPath(id), nil, opts...)
}

// Update applies a list of JSON patch operations to an order
func (s *OrderService) Update(ctx context.Context, id string, patch interface{}, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodPatch, orderPath(id), patch, opts...)
}

// Authorize authorizes payment for an approved order
func (s *OrderService) Authorize(ctx context.Context, id string, body interface{}, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodPost, orderPath(id)+"/authorize", body, opts...)
}

// Capture captures payment for an approved order
func (s *OrderService) Capture(ctx context.Context, id string, body interface{}, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodPost, orderPath(id)+"/capture", body, opts...)
}

func orderPath(id string) string {
	return ordersPath + "/" + url.PathEscape(id)
}

// ApproveURL returns the link the payer must follow to approve an order, or
// an empty string if PayPal did not send one.
func ApproveURL(order *paypal.Order) string {
	if order == nil {
		return ""
	}
	for _, link := range order.Links {
		if link.Rel == "approve" || link.Rel == "payer-action" {
			return link.Href
		}
	}
	return ""
}
