package kucoin

import (
	"fmt"
	"net/http"
	"testing"
)

func TestFetchBalance(t *testing.T) {
	e, server := newTestRest(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/accounts" {
			t.Errorf("unexpected path: %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"code":"200000","data":[
			{"id":"1","currency":"BTC","type":"main","balance":"5","available":"5","holds":"0"},
			{"id":"2","currency":"BTC","type":"trade","balance":"1.5","available":"1.2","holds":"0.3"},
			{"id":"3","currency":"USDT","type":"trade","balance":"100","available":"90","holds":"10"}
		]}`)
	})
	defer server.Close()

	balances, err := e.FetchBalance()
	if err != nil {
		t.Fatal(err)
	}
	if len(balances) != 2 {
		t.Fatalf("only trade accounts should count: %+v", balances)
	}
	btc := balances["BTC"]
	if btc.Available != 1.2 || btc.Frozen != 0.3 {
		t.Errorf("unexpected balance: %+v", btc)
	}
}

func TestFetchAccounts(t *testing.T) {
	e, server := newTestRest(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"200000","data":[
			{"id":"1","currency":"BTC","type":"trade","balance":"1.5","available":"1.2","holds":"0.3"}
		]}`)
	})
	defer server.Close()

	accounts, err := e.FetchAccounts()
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 1 {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}
	if accounts[0].Type != AccountTrade || accounts[0].Balance != 1.5 {
		t.Errorf("unexpected account: %+v", accounts[0])
	}
}
