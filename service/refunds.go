package service

import (
	"context"
	"net/http"
	"net/url"
)

const refundsPath = "/v2/payments/refunds"

// RefundService calls the v2 refunds API
type RefundService struct {
	client *Client
}

// Show gets the details of a refund
func (s *RefundService) Show(ctx context.Context, id string, opts ...RequestOption) (*Response, error) {
	return s.client.Request(ctx, http.MethodGet, refundsPath+"/"+url.PathEscape(id), nil, opts...)
}
