// Package fixtures holds canned PayPal payloads and a fake PayPal API server
// for tests.
package fixtures

// Credentials accepted by the fake token endpoint.
const (
	ClientID     = "AYSq3RDGsmBLJE-otTkBtM-jBRd1TCQwFf9RGfwddNXWz0uFU9ztymylOhRS"
	ClientSecret = "EGnHDxD_qRPdaLdZz8iCr8N7_MzF-YHPTkjs6NKYQvQSBngp4PTTVWkPZRbL"
)

// AccessToken is the first token handed out by the fake token endpoint.
const AccessToken = "A21AAFEpH4PsADK7qSS7pSRsgzfENtu-Q1ysgEDVDESseMHBYXVJYE8ovjj68elIDy8nF26AwPhfXTIeWAZHSLIsQkSYz9ifg"

// TokenScope is the scope reported with every fake token.
const TokenScope = "https://uri.paypal.com/services/payments/payment https://uri.paypal.com/services/payments/refund"

// OrderID is the id used by the order payloads below.
const OrderID = "5O190127TN364715T"

// CreateOrderResponse is PayPal's 201 body for a created order that needs
// the payer to approve it.
const CreateOrderResponse = `{
  "id": "5O190127TN364715T",
  "status": "PAYER_ACTION_REQUIRED",
  "payment_source": {
    "paypal": {}
  },
  "links": [
    {
      "href": "https://api-m.paypal.com/v2/checkout/orders/5O190127TN364715T",
      "rel": "self",
      "method": "GET"
    },
    {
      "href": "https://www.paypal.com/checkoutnow?token=5O190127TN364715T",
      "rel": "payer-action",
      "method": "GET"
    }
  ]
}`

// ShowOrderResponse is PayPal's body for an approved order.
const ShowOrderResponse = `{
  "id": "5O190127TN364715T",
  "status": "APPROVED",
  "intent": "CAPTURE",
  "purchase_units": [
    {
      "reference_id": "d9f80740-38f0-11e8-b467-0ed5f89f718b",
      "amount": {
        "currency_code": "GBP",
        "value": "100.00"
      }
    }
  ],
  "create_time": "2018-04-01T21:18:49Z",
  "links": [
    {
      "href": "https://api-m.paypal.com/v2/checkout/orders/5O190127TN364715T",
      "rel": "self",
      "method": "GET"
    },
    {
      "href": "https://www.paypal.com/checkoutnow?token=5O190127TN364715T",
      "rel": "approve",
      "method": "GET"
    }
  ]
}`

// RefundID is the id used by the refund payload below.
const RefundID = "1JU08902781691411"

// ShowRefundResponse is PayPal's body for a completed refund.
const ShowRefundResponse = `{
  "id": "1JU08902781691411",
  "amount": {
    "value": "10.99",
    "currency_code": "USD"
  },
  "status": "COMPLETED",
  "note_to_payer": "Defective product",
  "links": [
    {
      "rel": "self",
      "method": "GET",
      "href": "https://api-m.paypal.com/v2/payments/refunds/1JU08902781691411"
    }
  ]
}`

// ResourceNotFoundResponse is PayPal's 404 body.
const ResourceNotFoundResponse = `{
  "name": "RESOURCE_NOT_FOUND",
  "message": "The specified resource does not exist.",
  "debug_id": "90957fca61718"
}`

// UnprocessableEntityResponse is PayPal's 422 body for a business rule failure.
const UnprocessableEntityResponse = `{
  "name": "UNPROCESSABLE_ENTITY",
  "details": [
    {
      "issue": "ORDER_ALREADY_CAPTURED",
      "description": "Order already captured.If 'intent=CAPTURE' only one capture per order is allowed."
    }
  ],
  "message": "The requested action could not be performed, semantically incorrect, or failed business validation.",
  "debug_id": "f5f3f2a0e9b2c"
}`

// InvalidClientResponse is the token endpoint's 401 body.
const InvalidClientResponse = `{
  "error": "invalid_client",
  "error_description": "Client Authentication failed"
}`
