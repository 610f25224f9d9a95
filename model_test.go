package kucoin

import (
	"testing"
	"time"
)

func TestParseMarketPrecision(t *testing.T) {
	data := SymbolData{
		Symbol:         "eth-btc",
		BaseCurrency:   "eth",
		QuoteCurrency:  "btc",
		BaseMinSize:    "0.0001",
		BaseIncrement:  "0.0000001",
		PriceIncrement: "0.000001",
	}
	market := data.parseMarket()
	if market.SymbolID != "ETH-BTC" || market.Symbol != "ETH/BTC" {
		t.Errorf("unexpected ids: %+v", market)
	}
	if market.PricePrecision != 6 || market.AmountPrecision != 7 {
		t.Errorf("unexpected precision: %+v", market)
	}
}

func TestIncrementPrecision(t *testing.T) {
	cases := []struct {
		increment string
		want      int
	}{
		{"1", 0},
		{"0.1", 1},
		{"0.00000001", 8},
	}
	for _, c := range cases {
		if got := incrementPrecision(c.increment); got != c.want {
			t.Errorf("incrementPrecision(%q) = %v, want %v", c.increment, got, c.want)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	cases := []struct {
		data OrderData
		want OrderStatus
	}{
		{OrderData{IsActive: true}, Active},
		{OrderData{CancelExist: true}, Canceled},
		{OrderData{}, Done},
	}
	for _, c := range cases {
		if got := c.data.parseOrder("BTC/USDT").Status; got != c.want {
			t.Errorf("%+v parsed as %v, want %v", c.data, got, c.want)
		}
	}
}

func TestParseHistOrder(t *testing.T) {
	data := HistOrderData{
		Symbol:    "BTC-USDT",
		DealPrice: "30000",
		DealValue: "30",
		Amount:    "0.001",
		Side:      "sell",
		CreatedAt: 1550936267,
	}
	order := data.parseOrder("BTC/USDT")
	if order.Status != Done || order.Side != Sell {
		t.Errorf("unexpected order: %+v", order)
	}
	if order.CreateTime != time.Duration(1550936267000) {
		t.Errorf("creation time should be in milliseconds: %v", order.CreateTime)
	}
}

func TestParseRawKLine(t *testing.T) {
	raw := RawKLine{"1550936267", "30000", "30100", "30200", "29900", "12.3", "370000"}
	kline := raw.parseKLine("BTC/USDT", KLine1Minute)
	if kline.Timestamp != time.Duration(1550936267000) {
		t.Errorf("timestamp should be in milliseconds: %v", kline.Timestamp)
	}
	if kline.Open != 30000 || kline.Close != 30100 || kline.High != 30200 || kline.Low != 29900 {
		t.Errorf("unexpected kline: %+v", kline)
	}
	if kline.Volume != 370000 {
		t.Errorf("unexpected volume: %v", kline.Volume)
	}

	short := RawKLine{"1550936267"}
	if got := short.parseKLine("BTC/USDT", KLine1Minute); got.Timestamp != 0 {
		t.Errorf("short candle should parse empty: %+v", got)
	}
}

func TestKLineTypeString(t *testing.T) {
	cases := []struct {
		t    KLineType
		want string
	}{
		{KLine1Minute, "1min"},
		{KLine1Hour, "1hour"},
		{KLine1Day, "1day"},
		{KLine1Week, "1week"},
	}
	for _, c := range cases {
		got, err := kLineTypeString(c.t)
		if err != nil || got != c.want {
			t.Errorf("kLineTypeString(%v) = %q, %v", c.t, got, err)
		}
	}
	if _, err := kLineTypeString(KLineUnknown); err == nil {
		t.Error("unknown interval should be rejected")
	}
}

func TestParseWsEndpoint(t *testing.T) {
	data := WsEndpointData{Token: "tok"}
	if _, err := data.parseWsEndpoint(); err == nil {
		t.Error("missing instance servers should be rejected")
	}

	data.InstanceServers = append(data.InstanceServers, struct {
		Endpoint     string `json:"endpoint"`
		Protocol     string `json:"protocol"`
		Encrypt      bool   `json:"encrypt"`
		PingInterval int64  `json:"pingInterval"`
		PingTimeout  int64  `json:"pingTimeout"`
	}{
		Endpoint:     "wss://push.example.com",
		Protocol:     "websocket",
		PingInterval: 50000,
		PingTimeout:  10000,
	})
	endpoint, err := data.parseWsEndpoint()
	if err != nil {
		t.Fatal(err)
	}
	if endpoint.PingInterval != 50*time.Second || endpoint.PingTimeout != 10*time.Second {
		t.Errorf("unexpected intervals: %+v", endpoint)
	}
}

func TestParseWsOrderStatus(t *testing.T) {
	cases := []struct {
		event string
		want  OrderStatus
	}{
		{"open", Active},
		{"match", Active},
		{"filled", Done},
		{"canceled", Canceled},
	}
	for _, c := range cases {
		data := WsOrderData{Type: c.event}
		if got := data.parseOrder("BTC/USDT").Status; got != c.want {
			t.Errorf("event %q parsed as %v, want %v", c.event, got, c.want)
		}
	}
}

func TestParseWsTrade(t *testing.T) {
	data := WsTradeData{
		Symbol: "BTC-USDT",
		Side:   "buy",
		Price:  "30000.1",
		Size:   "0.002",
		Time:   "1550936267000000000",
	}
	trade := data.parseTrade("BTC/USDT")
	if trade.Side != Buy || trade.Price != 30000.1 || trade.Amount != 0.002 {
		t.Errorf("unexpected trade: %+v", trade)
	}
	if trade.Timestamp != time.Duration(1550936267000) {
		t.Errorf("trade time should be in milliseconds: %v", trade.Timestamp)
	}
}
