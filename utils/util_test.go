package utils

import (
	"net/url"
	"strconv"
	"strings"
	"testing"
)

func TestRound(t *testing.T) {
	cases := []struct {
		f        float64
		n        int
		rounding bool
		want     string
	}{
		{3000, 2, false, "3000.00"},
		{0.001, 4, false, "0.0010"},
		{1.23456, 2, false, "1.23"},
		{1.239, 2, false, "1.23"},
		{1.239, 2, true, "1.24"},
		{1.5, 0, false, "1"},
	}
	for _, c := range cases {
		if got := Round(c.f, c.n, c.rounding); got != c.want {
			t.Errorf("Round(%v, %v, %v) = %q, want %q", c.f, c.n, c.rounding, got, c.want)
		}
	}
}

func TestSafeParseFloat(t *testing.T) {
	if got := SafeParseFloat("1.25"); got != 1.25 {
		t.Errorf("unexpected value: %v", got)
	}
	if got := SafeParseFloat("not a number"); got != 0 {
		t.Errorf("invalid input should parse to zero, got %v", got)
	}
	if got := SafeParseFloat(""); got != 0 {
		t.Errorf("empty input should parse to zero, got %v", got)
	}
}

func TestCompareFloatString(t *testing.T) {
	cases := []struct {
		left, right string
		want        int
	}{
		{"1.0", "1", CompareEqual},
		{"1.1", "1.2", CompareLess},
		{"2", "1.9", CompareGreater},
		{"x", "1", CompareInvalid},
	}
	for _, c := range cases {
		if got := CompareFloatString(c.left, c.right); got != c.want {
			t.Errorf("CompareFloatString(%q, %q) = %v, want %v", c.left, c.right, got, c.want)
		}
	}
}

func TestEpochMillis(t *testing.T) {
	millis := EpochMillis()
	if len(millis) != 13 {
		t.Errorf("expected a millisecond timestamp, got %q", millis)
	}
	if _, err := strconv.ParseInt(millis, 10, 64); err != nil {
		t.Errorf("timestamp should be numeric: %v", err)
	}
}

func TestFlatUUID(t *testing.T) {
	id := FlatUUID()
	if len(id) != 32 {
		t.Errorf("unexpected length: %q", id)
	}
	if strings.Contains(id, "-") {
		t.Errorf("dashes should be stripped: %q", id)
	}
	if id == FlatUUID() {
		t.Error("ids should not repeat")
	}
}

func TestGenerateOrderClientID(t *testing.T) {
	id := GenerateOrderClientID("", 32)
	if !strings.HasPrefix(id, "kcex") || len(id) != 32 {
		t.Errorf("unexpected default id: %q", id)
	}
	id = GenerateOrderClientID("bot", 20)
	if !strings.HasPrefix(id, "bot") || len(id) != 20 {
		t.Errorf("unexpected id: %q", id)
	}
}

func TestIsClientOrderID(t *testing.T) {
	if !IsClientOrderID(GenerateOrderClientID("", 32), "") {
		t.Error("generated ids should be recognized")
	}
	if IsClientOrderID("5bd6e9286d99522a52e458de", "") {
		t.Error("exchange ids should not be recognized")
	}
}

func TestUrlValuesToJson(t *testing.T) {
	values := url.Values{}
	values.Set("symbol", "BTC-USDT")
	if got := UrlValuesToJson(values); got != `{"symbol":"BTC-USDT"}` {
		t.Errorf("unexpected json: %q", got)
	}

	values.Add("symbol", "ETH-USDT")
	if got := UrlValuesToJson(values); got != `{"symbol":["BTC-USDT","ETH-USDT"]}` {
		t.Errorf("repeated keys should keep all values: %q", got)
	}

	if got := UrlValuesToJson(url.Values{}); got != "{}" {
		t.Errorf("unexpected json: %q", got)
	}
}
