package kucoin

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/xiaolo66/kucoin/utils"
)

type MarketOrderParams struct {
	Symbol    string
	Side      Side
	Size      float64 // amount in base currency, exclusive with Funds
	Funds     float64 // amount in quote currency, exclusive with Size
	ClientOID string  // generated when empty
	Remark    string
	STP       STPMode
}

type LimitOrderParams struct {
	Symbol      string
	Side        Side
	Price       float64
	Size        float64
	ClientOID   string // generated when empty
	Remark      string
	STP         STPMode
	TimeInForce TimeInForce
	Stop        StopType
	StopPrice   float64
	CancelAfter int64 // seconds, requires TimeInForce GTT
	PostOnly    bool
	Hidden      bool
	Iceberg     bool
	VisibleSize float64
}

// CreateMarketOrder : parameter violations are rejected before anything is
// sent, as a MarketOrderError
func (e *Rest) CreateMarketOrder(order MarketOrderParams) (Order, error) {
	if order.Size == 0 && order.Funds == 0 {
		return Order{}, MarketOrderError{Message: "Need size or funds parameter"}
	}
	if order.Size != 0 && order.Funds != 0 {
		return Order{}, MarketOrderError{Message: "Need size or funds parameter not both"}
	}

	market, err := e.GetMarket(order.Symbol)
	if err != nil {
		return Order{}, err
	}

	params := url.Values{}
	params.Set("symbol", market.SymbolID)
	params.Set("side", string(order.Side))
	params.Set("type", "market")
	if order.Size != 0 {
		params.Set("size", utils.Round(order.Size, market.AmountPrecision, false))
	}
	if order.Funds != 0 {
		params.Set("funds", utils.Round(order.Funds, market.PricePrecision, false))
	}
	clientOID := order.ClientOID
	if clientOID == "" {
		clientOID = utils.GenerateOrderClientID(e.Option.ClientOrderIDPrefix, 32)
	}
	params.Set("clientOid", clientOID)
	if order.Remark != "" {
		params.Set("remark", order.Remark)
	}
	if order.STP != "" {
		params.Set("stp", string(order.STP))
	}
	return e.placeOrder(market, clientOID, params)
}

// CreateLimitOrder : parameter violations are rejected before anything is
// sent, as a LimitOrderError
func (e *Rest) CreateLimitOrder(order LimitOrderParams) (Order, error) {
	if order.Stop != "" && order.StopPrice == 0 {
		return Order{}, LimitOrderError{Message: "Stop order needs stopPrice"}
	}
	if order.StopPrice != 0 && order.Stop == "" {
		return Order{}, LimitOrderError{Message: "Stop order type required with stopPrice"}
	}
	if order.CancelAfter != 0 && order.TimeInForce != GTT {
		return Order{}, LimitOrderError{Message: `Cancel after only works with timeInForce = "GTT"`}
	}
	if order.Hidden && order.Iceberg {
		return Order{}, LimitOrderError{Message: `Order can be either "hidden" or "iceberg"`}
	}
	if order.Iceberg && order.VisibleSize == 0 {
		return Order{}, LimitOrderError{Message: "Iceberg order requires visibleSize"}
	}

	market, err := e.GetMarket(order.Symbol)
	if err != nil {
		return Order{}, err
	}

	params := url.Values{}
	params.Set("symbol", market.SymbolID)
	params.Set("side", string(order.Side))
	params.Set("type", "limit")
	params.Set("price", utils.Round(order.Price, market.PricePrecision, false))
	params.Set("size", utils.Round(order.Size, market.AmountPrecision, false))
	clientOID := order.ClientOID
	if clientOID == "" {
		clientOID = utils.GenerateOrderClientID(e.Option.ClientOrderIDPrefix, 32)
	}
	params.Set("clientOid", clientOID)
	if order.Remark != "" {
		params.Set("remark", order.Remark)
	}
	if order.STP != "" {
		params.Set("stp", string(order.STP))
	}
	if order.TimeInForce != "" {
		params.Set("timeInForce", string(order.TimeInForce))
	}
	if order.CancelAfter != 0 {
		params.Set("cancelAfter", strconv.FormatInt(order.CancelAfter, 10))
	}
	if order.PostOnly {
		params.Set("postOnly", "true")
	}
	if order.Stop != "" {
		params.Set("stop", string(order.Stop))
		params.Set("stopPrice", utils.Round(order.StopPrice, market.PricePrecision, false))
	}
	if order.Hidden {
		params.Set("hidden", "true")
	}
	if order.Iceberg {
		params.Set("iceberg", "true")
		params.Set("visibleSize", utils.Round(order.VisibleSize, market.AmountPrecision, false))
	}
	return e.placeOrder(market, clientOID, params)
}

// CreateOrder : unified entry, amount is in base currency for both types
func (e *Rest) CreateOrder(symbol string, price, amount float64, side Side, tradeType TradeType, useClientID bool) (Order, error) {
	clientOID := utils.FlatUUID()
	if useClientID {
		clientOID = utils.GenerateOrderClientID(e.Option.ClientOrderIDPrefix, 32)
	}
	if tradeType == MARKET {
		return e.CreateMarketOrder(MarketOrderParams{
			Symbol:    symbol,
			Side:      side,
			Size:      amount,
			ClientOID: clientOID,
		})
	}
	return e.CreateLimitOrder(LimitOrderParams{
		Symbol:    symbol,
		Side:      side,
		Price:     price,
		Size:      amount,
		ClientOID: clientOID,
	})
}

func (e *Rest) placeOrder(market Market, clientOID string, params url.Values) (order Order, err error) {
	res, err := e.Fetch(Private, POST, "orders", params, http.Header{})
	if err != nil {
		return
	}

	type response struct {
		OrderID string `json:"orderId"`
	}
	data := response{}
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	order.ID = data.OrderID
	order.ClientID = clientOID
	order.Symbol = market.Symbol
	return
}

func (e *Rest) CancelOrder(orderID string) error {
	_, err := e.Fetch(Private, DELETE, "orders/"+orderID, url.Values{}, http.Header{})
	return err
}

func (e *Rest) CancelAllOrders(symbol string) error {
	params := url.Values{}
	if symbol != "" {
		market, err := e.GetMarket(symbol)
		if err != nil {
			return err
		}
		params.Set("symbol", market.SymbolID)
	}
	_, err := e.Fetch(Private, DELETE, "orders", params, http.Header{})
	return err
}

func (e *Rest) FetchOrders(symbol string, status OrderStatus, pageIndex, pageSize int) (orders []Order, err error) {
	params := url.Values{}
	var market Market
	if symbol != "" {
		if market, err = e.GetMarket(symbol); err != nil {
			return
		}
		params.Set("symbol", market.SymbolID)
	}
	if status != "" {
		params.Set("status", string(status))
	}
	if pageIndex > 0 {
		params.Set("page", strconv.Itoa(pageIndex))
	}
	if pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(pageSize))
	}
	res, err := e.Fetch(Private, GET, "orders", params, http.Header{})
	if err != nil {
		return
	}

	var data OrderListData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	for _, o := range data.Items {
		orders = append(orders, o.parseOrder(e.symbolFor(o.Symbol)))
	}
	return
}

func (e *Rest) FetchOpenOrders(symbol string, pageIndex, pageSize int) ([]Order, error) {
	return e.FetchOrders(symbol, Active, pageIndex, pageSize)
}

// FetchHistoricalOrders : orders settled before the exchange moved to the v1
// order store
func (e *Rest) FetchHistoricalOrders(symbol string, pageIndex, pageSize int) (orders []Order, err error) {
	params := url.Values{}
	if symbol != "" {
		market, err := e.GetMarket(symbol)
		if err != nil {
			return nil, err
		}
		params.Set("symbol", market.SymbolID)
	}
	if pageIndex > 0 {
		params.Set("page", strconv.Itoa(pageIndex))
	}
	if pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(pageSize))
	}
	res, err := e.Fetch(Private, GET, "hist-orders", params, http.Header{})
	if err != nil {
		return
	}

	var data HistOrderListData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	for _, o := range data.Items {
		orders = append(orders, o.parseOrder(e.symbolFor(o.Symbol)))
	}
	return
}

func (e *Rest) FetchOrder(orderID string) (order Order, err error) {
	res, err := e.Fetch(Private, GET, "orders/"+orderID, url.Values{}, http.Header{})
	if err != nil {
		return
	}

	var data OrderData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	order = data.parseOrder(e.symbolFor(data.Symbol))
	return
}

func (e *Rest) FetchFills(orderID, symbol string, pageIndex, pageSize int) (fills []Fill, err error) {
	params := url.Values{}
	if orderID != "" {
		params.Set("orderId", orderID)
	}
	if symbol != "" {
		market, err := e.GetMarket(symbol)
		if err != nil {
			return nil, err
		}
		params.Set("symbol", market.SymbolID)
	}
	if pageIndex > 0 {
		params.Set("page", strconv.Itoa(pageIndex))
	}
	if pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(pageSize))
	}
	res, err := e.Fetch(Private, GET, "fills", params, http.Header{})
	if err != nil {
		return
	}

	var data FillListData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	for _, f := range data.Items {
		fills = append(fills, f.parseFill(e.symbolFor(f.Symbol)))
	}
	return
}

// symbolFor maps an exchange symbol id back to the unified symbol, falling
// back to the raw id when the market list does not know it
func (e *Rest) symbolFor(symbolID string) string {
	market, err := e.GetMarketByID(symbolID)
	if err != nil {
		return symbolID
	}
	return market.Symbol
}
