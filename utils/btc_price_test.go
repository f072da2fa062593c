package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseCoingeckoPrice(t *testing.T) {
	body := []byte(`{"bitcoin":{"usd":64250.12}}`)

	got, err := ParseCoingeckoPrice(body)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(decimal.RequireFromString("64250.12")) {
		t.Fatalf("price = %s, want 64250.12", got)
	}
}

func TestParseCoingeckoPriceBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty", ``},
		{"missing key", `{"ethereum":{"usd":3000}}`},
		{"missing currency", `{"bitcoin":{"eur":60000}}`},
		{"zero", `{"bitcoin":{"usd":0}}`},
		{"negative", `{"bitcoin":{"usd":-5}}`},
		{"not json", `<html>rate limited</html>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCoingeckoPrice([]byte(tc.body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestParseCoinbasePrice(t *testing.T) {
	body := []byte(`{"data":{"base":"BTC","currency":"USD","amount":"64250.12"}}`)

	got, err := ParseCoinbasePrice(body)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(decimal.RequireFromString("64250.12")) {
		t.Fatalf("price = %s, want 64250.12", got)
	}
}

func TestParseCoinbasePriceBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty", ``},
		{"missing amount", `{"data":{"base":"BTC"}}`},
		{"non numeric", `{"data":{"amount":"lots"}}`},
		{"zero", `{"data":{"amount":"0"}}`},
		{"negative", `{"data":{"amount":"-1"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCoinbasePrice([]byte(tc.body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
