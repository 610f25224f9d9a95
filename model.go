package kucoin

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	. "github.com/xiaolo66/kucoin/utils"
)

type SymbolData struct {
	Symbol         string `json:"symbol"`
	Name           string `json:"name"`
	BaseCurrency   string `json:"baseCurrency"`
	QuoteCurrency  string `json:"quoteCurrency"`
	BaseMinSize    string `json:"baseMinSize"`
	BaseIncrement  string `json:"baseIncrement"`
	PriceIncrement string `json:"priceIncrement"`
	EnableTrading  bool   `json:"enableTrading"`
}

func (s SymbolData) parseMarket() Market {
	market := Market{
		SymbolID: strings.ToUpper(s.Symbol),
		Symbol:   strings.ToUpper(s.BaseCurrency + "/" + s.QuoteCurrency),
		BaseID:   strings.ToUpper(s.BaseCurrency),
		QuoteID:  strings.ToUpper(s.QuoteCurrency),
		Lot:      SafeParseFloat(s.BaseMinSize),
	}
	market.PricePrecision = incrementPrecision(s.PriceIncrement)
	market.AmountPrecision = incrementPrecision(s.BaseIncrement)
	return market
}

func incrementPrecision(increment string) int {
	pres := strings.Split(increment, ".")
	if len(pres) == 1 {
		return 0
	}
	return len(pres[1])
}

// TickerData : level1 order book of a symbol
type TickerData struct {
	Sequence    string `json:"sequence"`
	Price       string `json:"price"`
	Size        string `json:"size"`
	BestBid     string `json:"bestBid"`
	BestBidSize string `json:"bestBidSize"`
	BestAsk     string `json:"bestAsk"`
	BestAskSize string `json:"bestAskSize"`
	Time        int64  `json:"time"`
}

func (t TickerData) parseTicker(symbol string) Ticker {
	return Ticker{
		Symbol:         symbol,
		Timestamp:      time.Duration(t.Time),
		BestBuyPrice:   SafeParseFloat(t.BestBid),
		BestSellPrice:  SafeParseFloat(t.BestAsk),
		BestBuyAmount:  SafeParseFloat(t.BestBidSize),
		BestSellAmount: SafeParseFloat(t.BestAskSize),
		Last:           SafeParseFloat(t.Price),
	}
}

type AllTickerItem struct {
	Symbol      string `json:"symbol"`
	Buy         string `json:"buy"`
	Sell        string `json:"sell"`
	ChangeRate  string `json:"changeRate"`
	ChangePrice string `json:"changePrice"`
	High        string `json:"high"`
	Low         string `json:"low"`
	Vol         string `json:"vol"`
	VolValue    string `json:"volValue"`
	Last        string `json:"last"`
}

type AllTickerData struct {
	Time   int64           `json:"time"`
	Ticker []AllTickerItem `json:"ticker"`
}

func (t AllTickerItem) parseTicker(symbol string, timestamp int64) Ticker {
	return Ticker{
		Symbol:        symbol,
		Timestamp:     time.Duration(timestamp),
		BestBuyPrice:  SafeParseFloat(t.Buy),
		BestSellPrice: SafeParseFloat(t.Sell),
		Last:          SafeParseFloat(t.Last),
		High:          SafeParseFloat(t.High),
		Low:           SafeParseFloat(t.Low),
		Vol:           SafeParseFloat(t.Vol),
	}
}

// StatsData : 24hr stats, the exchange mixes quoted and bare numbers here
type StatsData struct {
	Symbol      string      `json:"symbol"`
	ChangeRate  json.Number `json:"changeRate"`
	ChangePrice json.Number `json:"changePrice"`
	Open        json.Number `json:"open"`
	Close       json.Number `json:"close"`
	High        json.Number `json:"high"`
	Low         json.Number `json:"low"`
	Vol         json.Number `json:"vol"`
	VolValue    json.Number `json:"volValue"`
	Time        int64       `json:"time"`
}

func (s StatsData) parseTicker(symbol string) Ticker {
	return Ticker{
		Symbol:    symbol,
		Timestamp: time.Duration(s.Time),
		Open:      SafeParseFloat(s.Open.String()),
		Last:      SafeParseFloat(s.Close.String()),
		High:      SafeParseFloat(s.High.String()),
		Low:       SafeParseFloat(s.Low.String()),
		Vol:       SafeParseFloat(s.Vol.String()),
	}
}

type DepthData struct {
	Sequence string   `json:"sequence"`
	Time     int64    `json:"time"`
	Bids     RawDepth `json:"bids"`
	Asks     RawDepth `json:"asks"`
}

func (d DepthData) parseOrderBook(symbol string) OrderBook {
	var ob OrderBook
	ob.Symbol = symbol
	ob.Bids = ob.Bids.Update(d.Bids, true)
	ob.Asks = ob.Asks.Update(d.Asks, false)
	return ob
}

type TradeData struct {
	Sequence string `json:"sequence"`
	Price    string `json:"price"`
	Size     string `json:"size"`
	Side     string `json:"side"`
	Time     int64  `json:"time"`
}

func (t TradeData) parseTrade(symbol string) Trade {
	return Trade{
		Symbol: symbol,
		// trade time is in nanoseconds
		Timestamp: time.Duration(t.Time / 1e6),
		Price:     SafeParseFloat(t.Price),
		Amount:    SafeParseFloat(t.Size),
		Side:      parseSide(t.Side),
	}
}

func parseSide(side string) Side {
	switch side {
	case "buy":
		return Buy
	case "sell":
		return Sell
	}
	return SideUnknown
}

// RawKLine : [time, open, close, high, low, amount, volume]
type RawKLine []string

func (r RawKLine) parseKLine(symbol string, t KLineType) KLine {
	if len(r) < 7 {
		return KLine{Symbol: symbol, Type: t}
	}
	return KLine{
		Symbol:    symbol,
		Type:      t,
		Timestamp: time.Duration(SafeParseFloat(r[0])) * 1000,
		Open:      SafeParseFloat(r[1]),
		Close:     SafeParseFloat(r[2]),
		High:      SafeParseFloat(r[3]),
		Low:       SafeParseFloat(r[4]),
		Volume:    SafeParseFloat(r[6]),
	}
}

type OrderData struct {
	ID          string `json:"id"`
	Symbol      string `json:"symbol"`
	OpType      string `json:"opType"`
	Type        string `json:"type"`
	Side        string `json:"side"`
	Price       string `json:"price"`
	Size        string `json:"size"`
	Funds       string `json:"funds"`
	DealFunds   string `json:"dealFunds"`
	DealSize    string `json:"dealSize"`
	Fee         string `json:"fee"`
	FeeCurrency string `json:"feeCurrency"`
	Stp         string `json:"stp"`
	Stop        string `json:"stop"`
	StopPrice   string `json:"stopPrice"`
	TimeInForce string `json:"timeInForce"`
	PostOnly    bool   `json:"postOnly"`
	Hidden      bool   `json:"hidden"`
	Iceberg     bool   `json:"iceberg"`
	VisibleSize string `json:"visibleSize"`
	CancelAfter int64  `json:"cancelAfter"`
	ClientOid   string `json:"clientOid"`
	Remark      string `json:"remark"`
	IsActive    bool   `json:"isActive"`
	CancelExist bool   `json:"cancelExist"`
	CreatedAt   int64  `json:"createdAt"`
}

func (o OrderData) parseOrder(symbol string) Order {
	order := Order{
		ID:          o.ID,
		ClientID:    o.ClientOid,
		Symbol:      symbol,
		Price:       o.Price,
		Amount:      o.Size,
		Funds:       o.Funds,
		Filled:      o.DealSize,
		Cost:        o.DealFunds,
		Side:        parseSide(o.Side),
		TimeInForce: TimeInForce(o.TimeInForce),
		Stop:        StopType(o.Stop),
		StopPrice:   o.StopPrice,
		PostOnly:    o.PostOnly,
		Hidden:      o.Hidden,
		Iceberg:     o.Iceberg,
		CreateTime:  time.Duration(o.CreatedAt),
	}
	switch o.Type {
	case "limit":
		order.Type = LIMIT
	case "market":
		order.Type = MARKET
	default:
		order.Type = TradeTypeUnKnown
	}
	if o.IsActive {
		order.Status = Active
	} else if o.CancelExist {
		order.Status = Canceled
	} else {
		order.Status = Done
	}
	return order
}

// Pagination : paged list envelope shared by order, fill, deposit and
// withdrawal listings
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalNum    int `json:"totalNum"`
	TotalPage   int `json:"totalPage"`
}

type OrderListData struct {
	Pagination
	Items []OrderData `json:"items"`
}

// HistOrderData : settled v1 order, a much thinner record than OrderData
type HistOrderData struct {
	Symbol    string `json:"symbol"`
	DealPrice string `json:"dealPrice"`
	DealValue string `json:"dealValue"`
	Amount    string `json:"amount"`
	Fee       string `json:"fee"`
	Side      string `json:"side"`
	CreatedAt int64  `json:"createdAt"` // seconds
}

func (o HistOrderData) parseOrder(symbol string) Order {
	return Order{
		Symbol:     symbol,
		Price:      o.DealPrice,
		Amount:     o.Amount,
		Filled:     o.Amount,
		Cost:       o.DealValue,
		Side:       parseSide(o.Side),
		Status:     Done,
		CreateTime: time.Duration(o.CreatedAt) * 1000,
	}
}

type HistOrderListData struct {
	Pagination
	Items []HistOrderData `json:"items"`
}

type FillData struct {
	Symbol      string `json:"symbol"`
	TradeID     string `json:"tradeId"`
	OrderID     string `json:"orderId"`
	Side        string `json:"side"`
	Price       string `json:"price"`
	Size        string `json:"size"`
	Funds       string `json:"funds"`
	Fee         string `json:"fee"`
	FeeCurrency string `json:"feeCurrency"`
	Type        string `json:"type"`
	CreatedAt   int64  `json:"createdAt"`
}

func (f FillData) parseFill(symbol string) Fill {
	fill := Fill{
		Symbol:      symbol,
		OrderID:     f.OrderID,
		TradeID:     f.TradeID,
		Side:        parseSide(f.Side),
		Price:       SafeParseFloat(f.Price),
		Amount:      SafeParseFloat(f.Size),
		Funds:       SafeParseFloat(f.Funds),
		Fee:         SafeParseFloat(f.Fee),
		FeeCurrency: f.FeeCurrency,
		CreateTime:  time.Duration(f.CreatedAt),
	}
	switch f.Type {
	case "limit":
		fill.Type = LIMIT
	case "market":
		fill.Type = MARKET
	default:
		fill.Type = TradeTypeUnKnown
	}
	return fill
}

type FillListData struct {
	Pagination
	Items []FillData `json:"items"`
}

type AccountData struct {
	ID        string `json:"id"`
	Currency  string `json:"currency"`
	Type      string `json:"type"`
	Balance   string `json:"balance"`
	Available string `json:"available"`
	Holds     string `json:"holds"`
}

func (a AccountData) parseAccount() Account {
	return Account{
		ID:        a.ID,
		Currency:  a.Currency,
		Type:      AccountType(a.Type),
		Balance:   SafeParseFloat(a.Balance),
		Available: SafeParseFloat(a.Available),
		Holds:     SafeParseFloat(a.Holds),
	}
}

func (a AccountData) parseBalance() Balance {
	return Balance{
		Asset:     a.Currency,
		Available: SafeParseFloat(a.Available),
		Frozen:    SafeParseFloat(a.Holds),
	}
}

type CurrencyData struct {
	Currency        string `json:"currency"`
	Name            string `json:"name"`
	FullName        string `json:"fullName"`
	Precision       int    `json:"precision"`
	WithdrawMinSize string `json:"withdrawalMinSize"`
	WithdrawMinFee  string `json:"withdrawalMinFee"`
	IsWithdrawable  bool   `json:"isWithdrawEnabled"`
	IsDepositable   bool   `json:"isDepositEnabled"`
}

func (c CurrencyData) parseCurrency() Currency {
	return Currency{
		Code:            c.Currency,
		Name:            c.Name,
		FullName:        c.FullName,
		Precision:       c.Precision,
		WithdrawMinSize: SafeParseFloat(c.WithdrawMinSize),
		WithdrawMinFee:  SafeParseFloat(c.WithdrawMinFee),
		IsWithdrawable:  c.IsWithdrawable,
		IsDepositable:   c.IsDepositable,
	}
}

type DepositAddressData struct {
	Address string `json:"address"`
	Memo    string `json:"memo"`
}

func (d DepositAddressData) parseDepositAddress() DepositAddress {
	return DepositAddress{Address: d.Address, Memo: d.Memo}
}

type DepositData struct {
	Currency   string `json:"currency"`
	Address    string `json:"address"`
	Memo       string `json:"memo"`
	Amount     string `json:"amount"`
	Fee        string `json:"fee"`
	IsInner    bool   `json:"isInner"`
	WalletTxID string `json:"walletTxId"`
	Status     string `json:"status"`
	CreatedAt  int64  `json:"createdAt"`
}

func (d DepositData) parseDeposit() Deposit {
	return Deposit{
		Currency:   d.Currency,
		Address:    d.Address,
		Memo:       d.Memo,
		Amount:     SafeParseFloat(d.Amount),
		Fee:        SafeParseFloat(d.Fee),
		IsInner:    d.IsInner,
		WalletTxID: d.WalletTxID,
		Status:     d.Status,
		CreateTime: time.Duration(d.CreatedAt),
	}
}

type DepositListData struct {
	Pagination
	Items []DepositData `json:"items"`
}

type WithdrawalData struct {
	ID         string `json:"id"`
	Currency   string `json:"currency"`
	Address    string `json:"address"`
	Memo       string `json:"memo"`
	Amount     string `json:"amount"`
	Fee        string `json:"fee"`
	IsInner    bool   `json:"isInner"`
	WalletTxID string `json:"walletTxId"`
	Status     string `json:"status"`
	CreatedAt  int64  `json:"createdAt"`
}

func (w WithdrawalData) parseWithdrawal() Withdrawal {
	return Withdrawal{
		ID:         w.ID,
		Currency:   w.Currency,
		Address:    w.Address,
		Memo:       w.Memo,
		Amount:     SafeParseFloat(w.Amount),
		Fee:        SafeParseFloat(w.Fee),
		IsInner:    w.IsInner,
		WalletTxID: w.WalletTxID,
		Status:     w.Status,
		CreateTime: time.Duration(w.CreatedAt),
	}
}

type WithdrawalListData struct {
	Pagination
	Items []WithdrawalData `json:"items"`
}

type WithdrawalQuotaData struct {
	Currency            string `json:"currency"`
	AvailableAmount     string `json:"availableAmount"`
	RemainAmount        string `json:"remainAmount"`
	WithdrawMinSize     string `json:"withdrawMinSize"`
	LimitBTCAmount      string `json:"limitBTCAmount"`
	UsedBTCAmount       string `json:"usedBTCAmount"`
	WithdrawMinFee      string `json:"withdrawMinFee"`
	InnerWithdrawMinFee string `json:"innerWithdrawMinFee"`
	Precision           int    `json:"precision"`
	IsWithdrawEnabled   bool   `json:"isWithdrawEnabled"`
}

func (w WithdrawalQuotaData) parseWithdrawalQuota() WithdrawalQuota {
	return WithdrawalQuota{
		Currency:            w.Currency,
		AvailableAmount:     SafeParseFloat(w.AvailableAmount),
		RemainAmount:        SafeParseFloat(w.RemainAmount),
		WithdrawMinSize:     SafeParseFloat(w.WithdrawMinSize),
		LimitBTCAmount:      SafeParseFloat(w.LimitBTCAmount),
		UsedBTCAmount:       SafeParseFloat(w.UsedBTCAmount),
		WithdrawMinFee:      SafeParseFloat(w.WithdrawMinFee),
		InnerWithdrawMinFee: SafeParseFloat(w.InnerWithdrawMinFee),
		Precision:           w.Precision,
		IsWithdrawEnabled:   w.IsWithdrawEnabled,
	}
}

type LendOrderData struct {
	OrderID      string `json:"orderId"`
	Currency     string `json:"currency"`
	Size         string `json:"size"`
	FilledSize   string `json:"filledSize"`
	DailyIntRate string `json:"dailyIntRate"`
	Term         int    `json:"term"`
	CreatedAt    int64  `json:"createdAt"`
}

func (l LendOrderData) parseLendOrder() LendOrder {
	return LendOrder{
		OrderID:      l.OrderID,
		Currency:     l.Currency,
		Size:         SafeParseFloat(l.Size),
		FilledSize:   SafeParseFloat(l.FilledSize),
		DailyIntRate: SafeParseFloat(l.DailyIntRate),
		Term:         l.Term,
		CreateTime:   time.Duration(l.CreatedAt),
	}
}

// WsResponse : common frame of the websocket feed. Type is one of welcome,
// pong, ack, error and message.
type WsResponse struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Code    int             `json:"code"`
	Topic   string          `json:"topic"`
	Subject string          `json:"subject"`
	Data    json.RawMessage `json:"data"`
}

// WsDepthData : level2 increment, changes items are [price, size, sequence]
type WsDepthData struct {
	Symbol        string `json:"symbol"`
	SequenceStart int64  `json:"sequenceStart"`
	SequenceEnd   int64  `json:"sequenceEnd"`
	Changes       struct {
		Asks RawDepth `json:"asks"`
		Bids RawDepth `json:"bids"`
	} `json:"changes"`
}

type WsTradeData struct {
	Symbol  string `json:"symbol"`
	TradeID string `json:"tradeId"`
	Side    string `json:"side"`
	Price   string `json:"price"`
	Size    string `json:"size"`
	Time    string `json:"time"` // nanoseconds
}

func (t WsTradeData) parseTrade(symbol string) Trade {
	return Trade{
		Symbol:    symbol,
		Timestamp: time.Duration(SafeParseFloat(t.Time) / 1e6),
		Price:     SafeParseFloat(t.Price),
		Amount:    SafeParseFloat(t.Size),
		Side:      parseSide(t.Side),
	}
}

type WsKLineData struct {
	Symbol  string   `json:"symbol"`
	Candles RawKLine `json:"candles"`
	Time    int64    `json:"time"`
}

type WsBalanceData struct {
	Currency      string `json:"currency"`
	Total         string `json:"total"`
	Available     string `json:"available"`
	Hold          string `json:"hold"`
	RelationEvent string `json:"relationEvent"`
	Time          string `json:"time"`
}

func (b WsBalanceData) parseBalance() Balance {
	return Balance{
		Asset:     b.Currency,
		Available: SafeParseFloat(b.Available),
		Frozen:    SafeParseFloat(b.Hold),
	}
}

type WsOrderData struct {
	Symbol     string `json:"symbol"`
	OrderID    string `json:"orderId"`
	ClientOid  string `json:"clientOid"`
	OrderType  string `json:"orderType"`
	Type       string `json:"type"` // open, match, filled, canceled
	Side       string `json:"side"`
	Price      string `json:"price"`
	Size       string `json:"size"`
	FilledSize string `json:"filledSize"`
	Status     string `json:"status"`
	OrderTime  int64  `json:"orderTime"` // nanoseconds
	Ts         int64  `json:"ts"`        // nanoseconds
}

func (o WsOrderData) parseOrder(symbol string) Order {
	order := Order{
		ID:              o.OrderID,
		ClientID:        o.ClientOid,
		Symbol:          symbol,
		Price:           o.Price,
		Amount:          o.Size,
		Filled:          o.FilledSize,
		Side:            parseSide(o.Side),
		CreateTime:      time.Duration(o.OrderTime / 1e6),
		TransactionTime: time.Duration(o.Ts / 1e6),
	}
	switch o.OrderType {
	case "limit":
		order.Type = LIMIT
	case "market":
		order.Type = MARKET
	default:
		order.Type = TradeTypeUnKnown
	}
	switch o.Type {
	case "canceled":
		order.Status = Canceled
	case "filled":
		order.Status = Done
	default:
		order.Status = Active
	}
	return order
}

// WsOrderBook : order book rebuilt from a rest snapshot plus level2 increments
type WsOrderBook struct {
	OrderBook
	LastSequence int64
}

// SymbolOrderBook : order books of one connection, key is the unified symbol
type SymbolOrderBook map[string]*WsOrderBook

func kLineTypeString(t KLineType) (string, error) {
	switch t {
	case KLine1Minute:
		return "1min", nil
	case KLine3Minute:
		return "3min", nil
	case KLine5Minute:
		return "5min", nil
	case KLine15Minute:
		return "15min", nil
	case KLine30Minute:
		return "30min", nil
	case KLine1Hour:
		return "1hour", nil
	case KLine2Hour:
		return "2hour", nil
	case KLine4Hour:
		return "4hour", nil
	case KLine6Hour:
		return "6hour", nil
	case KLine8Hour:
		return "8hour", nil
	case KLine12Hour:
		return "12hour", nil
	case KLine1Day:
		return "1day", nil
	case KLine1Week:
		return "1week", nil
	}
	return "", errors.New("kline does not support this interval")
}

type WsEndpointData struct {
	Token           string `json:"token"`
	InstanceServers []struct {
		Endpoint     string `json:"endpoint"`
		Protocol     string `json:"protocol"`
		Encrypt      bool   `json:"encrypt"`
		PingInterval int64  `json:"pingInterval"`
		PingTimeout  int64  `json:"pingTimeout"`
	} `json:"instanceServers"`
}

func (w WsEndpointData) parseWsEndpoint() (WsEndpoint, error) {
	if len(w.InstanceServers) == 0 {
		return WsEndpoint{}, RequestError{Message: "no websocket instance server available"}
	}
	server := w.InstanceServers[0]
	return WsEndpoint{
		Endpoint:     server.Endpoint,
		Token:        w.Token,
		Protocol:     server.Protocol,
		Encrypt:      server.Encrypt,
		PingInterval: time.Duration(server.PingInterval) * time.Millisecond,
		PingTimeout:  time.Duration(server.PingTimeout) * time.Millisecond,
	}, nil
}
