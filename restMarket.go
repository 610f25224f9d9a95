package kucoin

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

func (e *Rest) FetchMarkets() (map[string]Market, error) {
	if len(e.Option.Markets) > 0 {
		return e.Option.Markets, nil
	}
	res, err := e.Fetch(Public, GET, "symbols", url.Values{}, http.Header{})
	if err != nil {
		return e.Option.Markets, err
	}

	var data []SymbolData
	if err = restJson.Unmarshal(res, &data); err != nil {
		return e.Option.Markets, RequestError{Message: err.Error()}
	}

	e.Option.Markets = make(map[string]Market, 0)
	for _, s := range data {
		market := s.parseMarket()
		e.Option.Markets[market.Symbol] = market
	}
	return e.Option.Markets, nil
}

// FetchMarketList : supported trading market list, eg: BTC, ETH, USDT
func (e *Rest) FetchMarketList() (markets []string, err error) {
	res, err := e.Fetch(Public, GET, "markets", url.Values{}, http.Header{})
	if err != nil {
		return
	}
	if err = restJson.Unmarshal(res, &markets); err != nil {
		err = RequestError{Message: err.Error()}
	}
	return
}

func (e *Rest) FetchTicker(symbol string) (ticker Ticker, err error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return
	}
	params := url.Values{}
	params.Set("symbol", market.SymbolID)
	res, err := e.Fetch(Public, GET, "market/orderbook/level1", params, http.Header{})
	if err != nil {
		return
	}

	var data TickerData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	ticker = data.parseTicker(market.Symbol)
	return
}

func (e *Rest) FetchAllTicker() (tickers map[string]Ticker, err error) {
	res, err := e.Fetch(Public, GET, "market/allTickers", url.Values{}, http.Header{})
	if err != nil {
		return
	}

	var data AllTickerData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}

	tickers = make(map[string]Ticker, 0)
	for _, t := range data.Ticker {
		market, err := e.GetMarketByID(t.Symbol)
		if err != nil {
			continue
		}
		tickers[market.Symbol] = t.parseTicker(market.Symbol, data.Time)
	}
	return
}

// Fetch24hrStats : volume is in base currency units, open, high, low are in
// quote currency units
func (e *Rest) Fetch24hrStats(symbol string) (ticker Ticker, err error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return
	}
	params := url.Values{}
	params.Set("symbol", market.SymbolID)
	res, err := e.Fetch(Public, GET, "market/stats", params, http.Header{})
	if err != nil {
		return
	}

	var data StatsData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	ticker = data.parseTicker(market.Symbol)
	return
}

func (e *Rest) FetchFiatPrices(base string, currencies []string) (prices map[string]float64, err error) {
	params := url.Values{}
	if base != "" {
		params.Set("base", base)
	}
	if len(currencies) > 0 {
		params.Set("currencies", strings.Join(currencies, ","))
	}
	res, err := e.Fetch(Public, GET, "prices", params, http.Header{})
	if err != nil {
		return
	}

	var data map[string]string
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	prices = make(map[string]float64, len(data))
	for code, price := range data {
		prices[code], _ = strconv.ParseFloat(price, 64)
	}
	return
}

// FetchOrderBook : bids and asks aggregated by price. Sizes up to 100 use the
// partial book endpoints, anything larger the full aggregated book.
func (e *Rest) FetchOrderBook(symbol string, size int) (orderBook OrderBook, err error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return
	}
	function := "market/orderbook/level2"
	if size <= 20 {
		function = "market/orderbook/level2_20"
	} else if size <= 100 {
		function = "market/orderbook/level2_100"
	}
	params := url.Values{}
	params.Set("symbol", market.SymbolID)
	res, err := e.Fetch(Public, GET, function, params, http.Header{})
	if err != nil {
		return
	}

	var data DepthData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	orderBook = data.parseOrderBook(market.Symbol)
	return
}

// FetchFullOrderBookLevel3 : full atomic book, one entry per passive order.
// The payload is large and schema-heavy, callers get the raw data
func (e *Rest) FetchFullOrderBookLevel3(symbol string) ([]byte, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("symbol", market.SymbolID)
	return e.Fetch(Public, GET, "market/orderbook/level3", params, http.Header{})
}

func (e *Rest) FetchTrade(symbol string) (trades []Trade, err error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return
	}
	params := url.Values{}
	params.Set("symbol", market.SymbolID)
	res, err := e.Fetch(Public, GET, "market/histories", params, http.Header{})
	if err != nil {
		return
	}

	var data []TradeData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	for _, t := range data {
		trades = append(trades, t.parseTrade(market.Symbol))
	}
	return
}

// FetchKLine : at most 1500 candles per query, the default window is start of
// the current day until now
func (e *Rest) FetchKLine(symbol string, t KLineType) (klines []KLine, err error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return
	}
	kLineType, err := kLineTypeString(t)
	if err != nil {
		return
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	params := url.Values{}
	params.Set("symbol", market.SymbolID)
	params.Set("type", kLineType)
	params.Set("startAt", strconv.FormatInt(start.Unix(), 10))
	params.Set("endAt", strconv.FormatInt(now.Unix(), 10))
	res, err := e.Fetch(Public, GET, "market/candles", params, http.Header{})
	if err != nil {
		return
	}

	var data []RawKLine
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	for _, k := range data {
		klines = append(klines, k.parseKLine(market.Symbol, t))
	}
	return
}
