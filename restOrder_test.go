package kucoin

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

func TestCreateMarketOrderValidation(t *testing.T) {
	e := &Rest{}
	e.Init(Options{Markets: testMarkets()})

	cases := []struct {
		order MarketOrderParams
		want  string
	}{
		{
			MarketOrderParams{Symbol: "BTC/USDT", Side: Buy},
			"MarketOrderError: Need size or funds parameter",
		},
		{
			MarketOrderParams{Symbol: "BTC/USDT", Side: Buy, Size: 1, Funds: 100},
			"MarketOrderError: Need size or funds parameter not both",
		},
	}
	for _, c := range cases {
		_, err := e.CreateMarketOrder(c.order)
		if err == nil {
			t.Fatalf("order %+v should be rejected", c.order)
		}
		if _, ok := err.(MarketOrderError); !ok {
			t.Errorf("want MarketOrderError, got %T", err)
		}
		if err.Error() != c.want {
			t.Errorf("got %q, want %q", err.Error(), c.want)
		}
	}
}

func TestCreateLimitOrderValidation(t *testing.T) {
	e := &Rest{}
	e.Init(Options{Markets: testMarkets()})

	base := LimitOrderParams{Symbol: "BTC/USDT", Side: Sell, Price: 30000, Size: 0.01}
	cases := []struct {
		mutate func(*LimitOrderParams)
		want   string
	}{
		{
			func(o *LimitOrderParams) { o.Stop = StopLoss },
			"LimitOrderError: Stop order needs stopPrice",
		},
		{
			func(o *LimitOrderParams) { o.StopPrice = 29000 },
			"LimitOrderError: Stop order type required with stopPrice",
		},
		{
			func(o *LimitOrderParams) { o.CancelAfter = 60; o.TimeInForce = GTC },
			`LimitOrderError: Cancel after only works with timeInForce = "GTT"`,
		},
		{
			func(o *LimitOrderParams) { o.Hidden = true; o.Iceberg = true },
			`LimitOrderError: Order can be either "hidden" or "iceberg"`,
		},
		{
			func(o *LimitOrderParams) { o.Iceberg = true },
			"LimitOrderError: Iceberg order requires visibleSize",
		},
	}
	for _, c := range cases {
		order := base
		c.mutate(&order)
		_, err := e.CreateLimitOrder(order)
		if err == nil {
			t.Fatalf("order %+v should be rejected", order)
		}
		if _, ok := err.(LimitOrderError); !ok {
			t.Errorf("want LimitOrderError, got %T", err)
		}
		if err.Error() != c.want {
			t.Errorf("got %q, want %q", err.Error(), c.want)
		}
	}
}

func TestCreateLimitOrder(t *testing.T) {
	var path string
	var body map[string]interface{}
	e, server := newTestRest(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := ioutil.ReadAll(r.Body)
		if err := jsoniter.Unmarshal(raw, &body); err != nil {
			t.Errorf("invalid body %q: %v", raw, err)
		}
		fmt.Fprint(w, `{"code":"200000","data":{"orderId":"5bd6e9286d99522a52e458de"}}`)
	})
	defer server.Close()

	order, err := e.CreateLimitOrder(LimitOrderParams{
		Symbol: "BTC/USDT",
		Side:   Buy,
		Price:  3000,
		Size:   0.001,
	})
	if err != nil {
		t.Fatal(err)
	}
	if path != "/api/v1/orders" {
		t.Errorf("unexpected path: %q", path)
	}
	if body["symbol"] != "BTC-USDT" || body["type"] != "limit" || body["side"] != "buy" {
		t.Errorf("unexpected body: %v", body)
	}
	if body["price"] != "3000.00" {
		t.Errorf("price should use the market precision, got %v", body["price"])
	}
	if body["size"] != "0.0010" {
		t.Errorf("size should use the market precision, got %v", body["size"])
	}
	clientOid, _ := body["clientOid"].(string)
	if !strings.HasPrefix(clientOid, "kcex") || len(clientOid) != 32 {
		t.Errorf("unexpected generated clientOid: %q", clientOid)
	}
	if order.ID != "5bd6e9286d99522a52e458de" {
		t.Errorf("unexpected order id: %q", order.ID)
	}
	if order.ClientID != clientOid {
		t.Errorf("client id not kept: %q != %q", order.ClientID, clientOid)
	}
	if order.Symbol != "BTC/USDT" {
		t.Errorf("unexpected symbol: %q", order.Symbol)
	}
}

func TestCreateMarketOrderFunds(t *testing.T) {
	var body map[string]interface{}
	e, server := newTestRest(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := ioutil.ReadAll(r.Body)
		jsoniter.Unmarshal(raw, &body)
		fmt.Fprint(w, `{"code":"200000","data":{"orderId":"oid2"}}`)
	})
	defer server.Close()

	_, err := e.CreateMarketOrder(MarketOrderParams{
		Symbol:    "BTC/USDT",
		Side:      Buy,
		Funds:     100,
		ClientOID: "myorder1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if body["type"] != "market" || body["funds"] != "100.00" {
		t.Errorf("unexpected body: %v", body)
	}
	if _, ok := body["size"]; ok {
		t.Errorf("size must not be sent with funds: %v", body)
	}
	if body["clientOid"] != "myorder1" {
		t.Errorf("given clientOid should be kept: %v", body["clientOid"])
	}
}

func TestCreateOrderDispatch(t *testing.T) {
	var body map[string]interface{}
	e, server := newTestRest(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := ioutil.ReadAll(r.Body)
		body = nil
		jsoniter.Unmarshal(raw, &body)
		fmt.Fprint(w, `{"code":"200000","data":{"orderId":"oid3"}}`)
	})
	defer server.Close()

	if _, err := e.CreateOrder("BTC/USDT", 30000, 0.001, Buy, LIMIT, true); err != nil {
		t.Fatal(err)
	}
	if body["type"] != "limit" || body["price"] != "30000.00" {
		t.Errorf("unexpected body: %v", body)
	}
	clientOid, _ := body["clientOid"].(string)
	if !strings.HasPrefix(clientOid, "kcex") {
		t.Errorf("useClientID should yield a recognizable id: %q", clientOid)
	}

	if _, err := e.CreateOrder("BTC/USDT", 0, 0.001, Sell, MARKET, false); err != nil {
		t.Fatal(err)
	}
	if body["type"] != "market" || body["size"] != "0.0010" {
		t.Errorf("unexpected body: %v", body)
	}
	if _, ok := body["price"]; ok {
		t.Errorf("market order must not carry a price: %v", body)
	}
	clientOid, _ = body["clientOid"].(string)
	if strings.HasPrefix(clientOid, "kcex") || len(clientOid) != 32 {
		t.Errorf("plain uuid expected without useClientID: %q", clientOid)
	}
}

func TestCancelAllOrders(t *testing.T) {
	var method, query string
	e, server := newTestRest(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		query = r.URL.RawQuery
		fmt.Fprint(w, `{"code":"200000","data":{"cancelledOrderIds":["a","b"]}}`)
	})
	defer server.Close()

	if err := e.CancelAllOrders("BTC/USDT"); err != nil {
		t.Fatal(err)
	}
	if method != DELETE {
		t.Errorf("unexpected method: %q", method)
	}
	if query != "" {
		t.Errorf("symbol belongs in the body for DELETE, got query %q", query)
	}
}

func TestFetchOrders(t *testing.T) {
	e, server := newTestRest(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "active" {
			t.Errorf("unexpected status param: %q", got)
		}
		fmt.Fprint(w, `{"code":"200000","data":{
			"currentPage":1,"pageSize":50,"totalNum":1,"totalPage":1,
			"items":[{
				"id":"ord1","symbol":"BTC-USDT","type":"limit","side":"buy",
				"price":"30000","size":"0.001","dealSize":"0","clientOid":"kcexabc",
				"isActive":true,"cancelExist":false,"createdAt":1550936267000
			}]
		}}`)
	})
	defer server.Close()

	orders, err := e.FetchOpenOrders("BTC/USDT", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
	order := orders[0]
	if order.Symbol != "BTC/USDT" {
		t.Errorf("symbol should be unified: %q", order.Symbol)
	}
	if order.Status != Active || order.Type != LIMIT || order.Side != Buy {
		t.Errorf("unexpected order: %+v", order)
	}
}
