package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Order intents accepted by the v2 orders API.
const (
	OrderIntentCapture   = "CAPTURE"
	OrderIntentAuthorize = "AUTHORIZE"
)

// zeroDecimalCurrencies are the PayPal currencies that do not accept a
// fractional part in amount values.
var zeroDecimalCurrencies = map[string]bool{
	"HUF": true,
	"JPY": true,
	"TWD": true,
}

// OrderRequest is the body sent to PayPal to create a v2 order.
type OrderRequest struct {
	Intent             string              `json:"intent"`
	PurchaseUnits      []PurchaseUnit      `json:"purchase_units"`
	ApplicationContext *ApplicationContext `json:"application_context,omitempty"`
}

// PurchaseUnit contains an amount for a PayPal order
type PurchaseUnit struct {
	ReferenceID string `json:"reference_id,omitempty"`
	Description string `json:"description,omitempty"`
	Amount      Amount `json:"amount"`
}

// Amount is the amount object for a PayPal order, capture or refund
type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// ApplicationContext is needed to supply PayPal with return and cancel urls
type ApplicationContext struct {
	ReturnURL string `json:"return_url,omitempty"`
	CancelURL string `json:"cancel_url,omitempty"`
}

// RefundRequest is the body sent to PayPal to refund a v2 capture. An empty
// request refunds the full captured amount.
type RefundRequest struct {
	Amount      *Amount `json:"amount,omitempty"`
	InvoiceID   string  `json:"invoice_id,omitempty"`
	NoteToPayer string  `json:"note_to_payer,omitempty"`
}

// PatchOperation is a single JSON patch operation for updating an order.
type PatchOperation struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}

// NewAmount formats value the way PayPal expects for the currency.
func NewAmount(currencyCode string, value decimal.Decimal) Amount {
	code := strings.ToUpper(currencyCode)
	places := int32(2)
	if zeroDecimalCurrencies[code] {
		places = 0
	}
	return Amount{
		CurrencyCode: code,
		Value:        value.StringFixed(places),
	}
}

// NewOrderRequest builds a single purchase unit order request.
func NewOrderRequest(intent, referenceID string, amount Amount, returnURL string) OrderRequest {
	req := OrderRequest{
		Intent: intent,
		PurchaseUnits: []PurchaseUnit{
			{
				ReferenceID: referenceID,
				Amount:      amount,
			},
		},
	}
	if returnURL != "" {
		req.ApplicationContext = &ApplicationContext{ReturnURL: returnURL}
	}
	return req
}
