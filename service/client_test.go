package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/companieshouse/paypal-rest-client/config"
	"github.com/companieshouse/paypal-rest-client/fixtures"
	"github.com/companieshouse/paypal-rest-client/models"
	"github.com/jarcoal/httpmock"
	"github.com/plutov/paypal/v4"
	. "github.com/smartystreets/goconvey/convey"
)

func createTestClient(server *fixtures.PayPalServer) *Client {
	httpClient := &http.Client{Timeout: 5 * time.Second}
	exchanger := NewClientCredentialsExchanger(server.URL(), fixtures.ClientID, fixtures.ClientSecret, httpClient)
	return New(server.URL(), httpClient, NewTokenManager(exchanger, nil, server.URL()+"|"+fixtures.ClientID, time.Minute))
}

type staticTokens struct {
	token       *models.Token
	invalidated []string
}

func (s *staticTokens) GetToken(_ context.Context) (*models.Token, error) {
	return s.token, nil
}

func (s *staticTokens) Invalidate(_ context.Context, accessToken string) {
	s.invalidated = append(s.invalidated, accessToken)
}

func decodeJSON(s string) map[string]interface{} {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		panic(err)
	}
	return m
}

func TestUnitRequest(t *testing.T) {
	ctx := context.Background()

	Convey("Created order is returned unchanged", t, func() {
		server := fixtures.NewPayPalServer(32400)
		defer server.Close()
		server.Handle(http.MethodPost, "/v2/checkout/orders", http.StatusCreated, fixtures.CreateOrderResponse)
		client := createTestClient(server)

		body := models.OrderRequest{
			Intent: models.OrderIntentCapture,
			PurchaseUnits: []models.PurchaseUnit{
				{Amount: models.Amount{CurrencyCode: "GBP", Value: "100.00"}},
			},
		}
		resp, err := client.Orders.Create(ctx, body)

		So(err, ShouldBeNil)
		So(resp.Type, ShouldEqual, Success)
		So(resp.StatusCode, ShouldEqual, http.StatusCreated)
		So(string(resp.Body), ShouldEqual, fixtures.CreateOrderResponse)

		decoded, err := resp.Map()
		So(err, ShouldBeNil)
		So(decoded, ShouldResemble, decodeJSON(fixtures.CreateOrderResponse))
		So(decoded["id"], ShouldEqual, fixtures.OrderID)

		requests := server.Requests()
		So(requests, ShouldHaveLength, 1)
		So(requests[0].Header.Get("Authorization"), ShouldEqual, "Bearer "+fixtures.AccessToken)
		So(requests[0].Header.Get("Content-Type"), ShouldEqual, "application/json")
		So(requests[0].Header.Get("Accept"), ShouldEqual, "application/json")
		So(requests[0].Body, ShouldEqual, `{"intent":"CAPTURE","purchase_units":[{"amount":{"currency_code":"GBP","value":"100.00"}}]}`)
	})

	Convey("Empty success body is no content", t, func() {
		server := fixtures.NewPayPalServer(32400)
		defer server.Close()
		server.Handle(http.MethodPatch, "/v2/checkout/orders/{id}", http.StatusNoContent, "")
		client := createTestClient(server)

		patch := []models.PatchOperation{{Op: "replace", Path: "/purchase_units/@reference_id=='default'/amount", Value: models.Amount{CurrencyCode: "GBP", Value: "5.00"}}}
		resp, err := client.Orders.Update(ctx, fixtures.OrderID, patch)

		So(err, ShouldBeNil)
		So(resp.Type, ShouldEqual, NoContent)
		So(resp.Body, ShouldBeNil)
		So(resp.Decode(&map[string]interface{}{}), ShouldNotBeNil)
		So(server.Requests()[0].Vars["id"], ShouldEqual, fixtures.OrderID)
	})

	Convey("Missing resource is not found, not a failure", t, func() {
		server := fixtures.NewPayPalServer(32400)
		defer server.Close()
		server.Handle(http.MethodGet, "/v2/payments/refunds/{id}", http.StatusNotFound, fixtures.ResourceNotFoundResponse)
		client := createTestClient(server)

		resp, err := client.Refunds.Show(ctx, "UNKNOWN")

		So(err, ShouldBeNil)
		So(resp.Type, ShouldEqual, NotFound)
		So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		So(string(resp.Body), ShouldEqual, fixtures.ResourceNotFoundResponse)
	})

	Convey("Rejected token is unauthorized and is discarded", t, func() {
		server := fixtures.NewPayPalServer(32400)
		defer server.Close()
		server.Handle(http.MethodGet, "/v2/checkout/orders/{id}", http.StatusOK, fixtures.ShowOrderResponse)
		client := createTestClient(server)

		resp, err := client.Orders.Show(ctx, fixtures.OrderID)
		So(err, ShouldBeNil)
		So(resp.Type, ShouldEqual, Success)
		So(server.TokenRequests(), ShouldEqual, 1)

		server.RevokeToken()

		resp, err = client.Orders.Show(ctx, fixtures.OrderID)
		So(resp, ShouldBeNil)
		So(TypeOf(err), ShouldEqual, Unauthorized)
		So(err.(*RequestError).StatusCode, ShouldEqual, http.StatusUnauthorized)
		So(server.TokenRequests(), ShouldEqual, 1)

		resp, err = client.Orders.Show(ctx, fixtures.OrderID)
		So(err, ShouldBeNil)
		So(resp.Type, ShouldEqual, Success)
		So(server.TokenRequests(), ShouldEqual, 2)
	})

	Convey("Forbidden is unauthorized", t, func() {
		tokens := &staticTokens{token: &models.Token{AccessToken: fixtures.AccessToken}}
		server := fixtures.NewPayPalServer(32400)
		defer server.Close()
		server.HandleAny(http.StatusForbidden, `{"name":"NOT_AUTHORIZED"}`)
		client := New(server.URL(), nil, tokens)

		resp, err := client.Orders.Show(ctx, fixtures.OrderID)

		So(resp, ShouldBeNil)
		So(TypeOf(err), ShouldEqual, Unauthorized)
		So(err.(*RequestError).StatusCode, ShouldEqual, http.StatusForbidden)
		So(tokens.invalidated, ShouldResemble, []string{fixtures.AccessToken})
	})

	Convey("Other failures carry the body verbatim", t, func() {
		server := fixtures.NewPayPalServer(32400)
		defer server.Close()
		server.Handle(http.MethodPost, "/v2/checkout/orders/{id}/capture", http.StatusUnprocessableEntity, fixtures.UnprocessableEntityResponse)
		client := createTestClient(server)

		resp, err := client.Orders.Capture(ctx, fixtures.OrderID, nil)

		So(resp, ShouldBeNil)
		So(TypeOf(err), ShouldEqual, Error)

		var reqErr *RequestError
		So(errors.As(err, &reqErr), ShouldBeTrue)
		So(reqErr.StatusCode, ShouldEqual, http.StatusUnprocessableEntity)
		So(string(reqErr.Body), ShouldEqual, fixtures.UnprocessableEntityResponse)
		So(reqErr.Detail().Name, ShouldEqual, "UNPROCESSABLE_ENTITY")
		So(reqErr.Detail().DebugID, ShouldEqual, "f5f3f2a0e9b2c")
		So(err.Error(), ShouldContainSubstring, "UNPROCESSABLE_ENTITY")
		So(server.Requests()[0].Body, ShouldBeEmpty)
	})

	Convey("Non JSON failures are still passed through", t, func() {
		server := fixtures.NewPayPalServer(32400)
		defer server.Close()
		server.HandleAny(http.StatusBadGateway, "upstream unavailable")
		client := createTestClient(server)

		_, err := client.Payments.ShowCapture(ctx, "2GG279541U471931P")

		So(TypeOf(err), ShouldEqual, Error)
		reqErr := err.(*RequestError)
		So(string(reqErr.Body), ShouldEqual, "upstream unavailable")
		So(reqErr.Detail(), ShouldBeNil)
		So(err.Error(), ShouldEqual, "paypal error [502]")
	})

	Convey("Invalid JSON in a success body is an error", t, func() {
		server := fixtures.NewPayPalServer(32400)
		defer server.Close()
		server.HandleAny(http.StatusOK, "<html>")
		client := createTestClient(server)

		resp, err := client.Refunds.Show(ctx, fixtures.RefundID)

		So(resp, ShouldBeNil)
		So(TypeOf(err), ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "not valid json")
	})

	Convey("Unreachable PayPal is a bad network", t, func() {
		server := fixtures.NewPayPalServer(32400)
		client := createTestClient(server)
		server.Close()

		resp, err := client.Orders.Show(ctx, fixtures.OrderID)

		So(resp, ShouldBeNil)
		So(TypeOf(err), ShouldEqual, BadNetwork)
	})

	Convey("Failed token exchange is reported before any call", t, func() {
		server := fixtures.NewPayPalServer(32400)
		defer server.Close()
		httpClient := &http.Client{Timeout: 5 * time.Second}
		exchanger := NewClientCredentialsExchanger(server.URL(), fixtures.ClientID, "wrong", httpClient)
		client := New(server.URL(), httpClient, NewTokenManager(exchanger, nil, "key", time.Minute))

		resp, err := client.Orders.Show(ctx, fixtures.OrderID)

		So(resp, ShouldBeNil)
		So(TypeOf(err), ShouldEqual, Unauthorized)
		So(server.Requests(), ShouldBeEmpty)
	})

	Convey("Raw JSON bodies and request options are sent as given", t, func() {
		server := fixtures.NewPayPalServer(32400)
		defer server.Close()
		server.HandleAny(http.StatusCreated, fixtures.CreateOrderResponse)
		client := createTestClient(server)

		requestID := NewRequestID()
		raw := json.RawMessage(`{"intent":"AUTHORIZE","purchase_units":[]}`)
		_, err := client.Orders.Create(ctx, raw, WithRequestID(requestID), WithHeader("Prefer", "return=representation"))

		So(err, ShouldBeNil)
		request := server.Requests()[0]
		So(request.Body, ShouldEqual, string(raw))
		So(request.Header.Get("PayPal-Request-Id"), ShouldEqual, requestID)
		So(request.Header.Get("Prefer"), ShouldEqual, "return=representation")
	})

	Convey("Bodies that cannot be encoded are rejected before sending", t, func() {
		tokens := &staticTokens{token: &models.Token{AccessToken: "static"}}
		client := New("http://localhost", nil, tokens)

		resp, err := client.Orders.Create(ctx, make(chan int))

		So(resp, ShouldBeNil)
		So(TypeOf(err), ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "error encoding request body for paypal")
	})
}

func TestUnitRequestNetworkFailure(t *testing.T) {
	ctx := context.Background()
	httpClient := &http.Client{}
	tokens := &staticTokens{token: &models.Token{AccessToken: "static"}}
	client := New(paypal.APIBaseSandBox, httpClient, tokens)

	Convey("Connection reset is a bad network", t, func() {
		httpmock.ActivateNonDefault(httpClient)
		defer httpmock.DeactivateAndReset()
		httpmock.RegisterResponder(http.MethodGet, paypal.APIBaseSandBox+"/v2/checkout/orders/"+fixtures.OrderID,
			httpmock.NewErrorResponder(errors.New("connection reset by peer")))

		resp, err := client.Orders.Show(ctx, fixtures.OrderID)

		So(resp, ShouldBeNil)
		So(TypeOf(err), ShouldEqual, BadNetwork)
		So(err.Error(), ShouldContainSubstring, "connection reset by peer")
		So(tokens.invalidated, ShouldBeEmpty)
	})

	Convey("Mocked success is returned unchanged", t, func() {
		httpmock.ActivateNonDefault(httpClient)
		defer httpmock.DeactivateAndReset()
		httpmock.RegisterResponder(http.MethodGet, paypal.APIBaseSandBox+"/v2/payments/refunds/"+fixtures.RefundID,
			httpmock.NewStringResponder(http.StatusOK, fixtures.ShowRefundResponse))

		resp, err := client.Refunds.Show(ctx, fixtures.RefundID)

		So(err, ShouldBeNil)
		So(resp.Type, ShouldEqual, Success)
		So(string(resp.Body), ShouldEqual, fixtures.ShowRefundResponse)
	})
}

func TestUnitNewClient(t *testing.T) {
	ctx := context.Background()

	Convey("Invalid config", t, func() {
		client, err := NewClient(config.DefaultConfig())
		So(client, ShouldBeNil)
		So(err.Error(), ShouldContainSubstring, "invalid paypal config")
	})

	Convey("Client built from config talks to PayPal", t, func() {
		server := fixtures.NewPayPalServer(32400)
		defer server.Close()
		server.Handle(http.MethodPost, "/v2/checkout/orders", http.StatusCreated, fixtures.CreateOrderResponse)

		cfg := config.DefaultConfig()
		cfg.PaypalClientID = fixtures.ClientID
		cfg.PaypalSecret = fixtures.ClientSecret
		cfg.PaypalAPIBase = server.URL()

		client, err := NewClient(cfg)
		So(err, ShouldBeNil)
		So(client.BaseURL, ShouldEqual, server.URL())

		resp, err := client.Orders.Create(ctx, map[string]interface{}{"intent": "CAPTURE"})
		So(err, ShouldBeNil)
		So(resp.Type, ShouldEqual, Success)
		So(resp.StatusCode, ShouldEqual, http.StatusCreated)
		So(decodeJSON(string(resp.Body)), ShouldResemble, decodeJSON(fixtures.CreateOrderResponse))
	})
}

func TestUnitListQuery(t *testing.T) {
	ctx := context.Background()

	Convey("List passes paging parameters in the query string", t, func() {
		server := fixtures.NewPayPalServer(32400)
		defer server.Close()
		server.Handle(http.MethodGet, "/v1/payments/payment", http.StatusOK, `{"payments":[],"count":0}`)
		client := createTestClient(server)

		resp, err := client.PaymentsV1.List(ctx, url.Values{"count": {"10"}, "start_index": {"0"}})

		So(err, ShouldBeNil)
		So(resp.Type, ShouldEqual, Success)
		So(server.Requests()[0].Query, ShouldEqual, "count=10&start_index=0")
	})
}
