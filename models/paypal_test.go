package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitNewAmount(t *testing.T) {

	Convey("Two decimal places for GBP", t, func() {
		amount := NewAmount("gbp", decimal.RequireFromString("3"))
		So(amount.CurrencyCode, ShouldEqual, "GBP")
		So(amount.Value, ShouldEqual, "3.00")
	})

	Convey("Rounds to two places", t, func() {
		amount := NewAmount("USD", decimal.RequireFromString("10.005"))
		So(amount.Value, ShouldEqual, "10.01")
	})

	Convey("No decimal places for JPY", t, func() {
		amount := NewAmount("JPY", decimal.RequireFromString("1500"))
		So(amount.Value, ShouldEqual, "1500")
	})
}

func TestUnitNewOrderRequest(t *testing.T) {

	Convey("Order request without return url", t, func() {
		req := NewOrderRequest(OrderIntentCapture, "ref-1", NewAmount("GBP", decimal.NewFromInt(50)), "")
		b, err := json.Marshal(req)
		So(err, ShouldBeNil)
		So(string(b), ShouldEqual, `{"intent":"CAPTURE","purchase_units":[{"reference_id":"ref-1","amount":{"currency_code":"GBP","value":"50.00"}}]}`)
	})

	Convey("Order request with return url", t, func() {
		req := NewOrderRequest(OrderIntentAuthorize, "ref-2", NewAmount("GBP", decimal.NewFromInt(5)), "https://example.com/return")
		So(req.ApplicationContext, ShouldNotBeNil)
		So(req.ApplicationContext.ReturnURL, ShouldEqual, "https://example.com/return")
		So(req.Intent, ShouldEqual, "AUTHORIZE")
	})
}
