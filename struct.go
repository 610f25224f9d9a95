package kucoin

import (
	"errors"
	"fmt"
	"sort"
	"time"

	. "github.com/xiaolo66/kucoin/utils"
)

const (
	RestHost        = "https://openapi-v2.kucoin.com"
	SandboxRestHost = "https://openapi-sandbox.kucoin.com"
	ApiVersion      = "v1"
)

// Options
type Options struct {
	SecretKey  string // SecretKey of this exchange account
	AccessKey  string // AccessKey of this exchange account
	PassPhrase string // api passphrase chosen when the key was created

	Sandbox  bool   // use the sandbox environment instead of production
	RestHost string // rest api host, the default value will be used if not set
	WsHost   string // websocket api host, resolved through the bullet endpoint if not set

	// the all markets of this exchange, key is the Market.Symbol.
	// As a config item, use to prevent high frequency requests causing restricted access when multiple instances are deployed on one server
	// if not set, the rest API will be called to get the market data
	Markets map[string]Market

	AutoReconnect       bool   // whether enable auto reconnect
	ProxyUrl            string // proxy, http://host:port
	ClientOrderIDPrefix string // Prefix of client order id, len better(0~10)
}

type Market struct {
	SymbolID        string  // the market id of exchange, eg: BTC-USDT
	Symbol          string  // the unified market id: XXX/YYY
	BaseID          string  // sell coin, eg: SymbolID = BTC-USDT, baseID = BTC
	QuoteID         string  // buy coin, eg: SymbolID = BTC-USDT, quoteID = USDT
	PricePrecision  int     // price precision
	AmountPrecision int     // amount precision
	Lot             float64 // min size
}

func (m Market) String() string {
	return fmt.Sprintf("%s/%s", m.BaseID, m.QuoteID)
}

type RawDepthItem []interface{}
type RawDepth []RawDepthItem

func (r RawDepthItem) ParseRawDepthItem() (item DepthItem, err error) {
	if len(r) < 2 {
		return item, errors.New("invalid data")
	}
	switch r[0].(type) {
	case float64:
		item.Price = fmt.Sprintf("%v", r[0].(float64))
		item.Amount = fmt.Sprintf("%v", r[1].(float64))
	case string:
		item.Price = r[0].(string)
		item.Amount = r[1].(string)
	default:
		err = errors.New("invalid data, type not support")
	}
	return
}

// DepthItem : each level data of the order book
type DepthItem struct {
	Price  string `json:"price"`
	Amount string `json:"amount"`
}

type Depth []DepthItem

func (d Depth) Len() int           { return len(d) }
func (d Depth) Less(i, j int) bool { return CompareFloatString(d[i].Price, d[j].Price) == CompareLess }
func (d Depth) Swap(i, j int)      { d[i], d[j] = d[j], d[i] }
func (d Depth) Sort()              { sort.Sort(d) }
func (d Depth) Search(price string, reverse bool) int {
	index := -1
	i, j := 0, len(d)
	for i < j {
		h := int(uint(i+j) >> 1)
		ret := CompareFloatString(d[h].Price, price)
		if ret == CompareLess {
			if reverse {
				j = h
			} else {
				i = h + 1
			}
		} else if ret == CompareGreater {
			if reverse {
				i = h + 1
			} else {
				j = h
			}
		} else if ret == CompareEqual {
			index = h
			break
		} else {
			break
		}
	}
	return index
}

func (d Depth) RemoveByIndex(index int) Depth {
	if index >= 0 {
		return append(d[:index], d[index+1:]...)
	}
	return d
}

func (d Depth) Update(newDepth RawDepth, reverse bool) Depth {
	for _, rawItem := range newDepth {
		item, err := rawItem.ParseRawDepthItem()
		if err != nil {
			continue
		}
		index := d.Search(item.Price, reverse)
		amount := SafeParseFloat(item.Amount)
		if index >= 0 {
			if amount < ZERO {
				d = d.RemoveByIndex(index)
			} else {
				d[index] = item
			}
		} else {
			if amount > ZERO {
				d = append(d, item)
			}
		}
	}
	if reverse {
		sort.Sort(sort.Reverse(d))
	} else {
		sort.Sort(d)
	}
	l := len(d)
	if l > 400 {
		l = 400
	}
	return d[:l]
}

type OrderBook struct {
	Symbol string
	Bids   Depth `json:"bids"`
	Asks   Depth `json:"asks"`
}

func (o *OrderBook) Sort() {
	sort.Sort(sort.Reverse(o.Bids))
	sort.Sort(o.Asks)
}

type (
	KLineType   int
	Side        string
	TradeType   string
	OrderStatus string
	TimeInForce string
	STPMode     string
	StopType    string
	AccountType string
)

const (
	KLineUnknown KLineType = iota
	KLine1Minute
	KLine3Minute
	KLine5Minute
	KLine15Minute
	KLine30Minute
	KLine1Hour
	KLine2Hour
	KLine4Hour
	KLine6Hour
	KLine8Hour
	KLine12Hour
	KLine1Day
	KLine1Week
)

const (
	SideUnknown Side = "Unknown"
	Buy              = "buy"
	Sell             = "sell"
)

const (
	TradeTypeUnKnown TradeType = "Unknown"
	LIMIT                      = "limit"
	MARKET                     = "market"
)

const (
	OrderStatusUnKnown OrderStatus = "Unknown"
	Active                         = "active"
	Done                           = "done"
	Canceled                       = "canceled"
)

const (
	GTC TimeInForce = "GTC" // good till cancelled
	GTT             = "GTT" // good till time, requires cancelAfter
	IOC             = "IOC" // immediate or cancel
	FOK             = "FOK" // fill or kill
)

// self trade prevention modes
const (
	STPCancelNewest       STPMode = "CN"
	STPCancelOldest               = "CO"
	STPDecreaseAndCancel          = "DC"
	STPCancelBoth                 = "CB"
)

const (
	StopLoss  StopType = "loss"
	StopEntry          = "entry"
)

const (
	AccountMain  AccountType = "main"
	AccountTrade             = "trade"
)

type Ticker struct {
	Symbol         string
	Timestamp      time.Duration
	BestBuyPrice   float64
	BestSellPrice  float64
	BestBuyAmount  float64
	BestSellAmount float64
	Open           float64
	Last           float64
	High           float64
	Low            float64
	Vol            float64
}

type Trade struct {
	Symbol    string
	Timestamp time.Duration
	Price     float64
	Amount    float64
	Side      Side
}

type KLine struct {
	Symbol    string
	Timestamp time.Duration
	Type      KLineType
	Open      float64
	Close     float64
	High      float64
	Low       float64
	Volume    float64
}

type Order struct {
	ID              string
	ClientID        string
	Symbol          string
	Price           string
	Amount          string
	Funds           string
	Filled          string
	Cost            string
	Status          OrderStatus
	Side            Side
	Type            TradeType
	TimeInForce     TimeInForce
	Stop            StopType
	StopPrice       string
	PostOnly        bool
	Hidden          bool
	Iceberg         bool
	CreateTime      time.Duration
	TransactionTime time.Duration
}

type Fill struct {
	Symbol      string
	OrderID     string
	TradeID     string
	Side        Side
	Type        TradeType
	Price       float64
	Amount      float64
	Funds       float64
	Fee         float64
	FeeCurrency string
	CreateTime  time.Duration
}

type Balance struct {
	Asset     string
	Available float64
	Frozen    float64
}

type BalanceUpdate struct {
	UpdateTime time.Duration
	Balances   map[string]Balance
}

type Account struct {
	ID        string
	Currency  string
	Type      AccountType
	Balance   float64
	Available float64
	Holds     float64
}

type Currency struct {
	Code            string
	Name            string
	FullName        string
	Precision       int
	WithdrawMinSize float64
	WithdrawMinFee  float64
	IsWithdrawable  bool
	IsDepositable   bool
}

type DepositAddress struct {
	Address string
	Memo    string
}

type Deposit struct {
	Currency   string
	Address    string
	Memo       string
	Amount     float64
	Fee        float64
	IsInner    bool
	WalletTxID string
	Status     string
	CreateTime time.Duration
}

type Withdrawal struct {
	ID         string
	Currency   string
	Address    string
	Memo       string
	Amount     float64
	Fee        float64
	IsInner    bool
	WalletTxID string
	Status     string
	CreateTime time.Duration
}

type WithdrawalQuota struct {
	Currency            string
	AvailableAmount     float64
	RemainAmount        float64
	WithdrawMinSize     float64
	LimitBTCAmount      float64
	UsedBTCAmount       float64
	WithdrawMinFee      float64
	Precision           int
	IsWithdrawEnabled   bool
	InnerWithdrawMinFee float64
}

type LendOrder struct {
	OrderID      string
	Currency     string
	Size         float64
	FilledSize   float64
	DailyIntRate float64
	Term         int
	CreateTime   time.Duration
}

// WsEndpoint : websocket channel details resolved through the bullet endpoint
type WsEndpoint struct {
	Endpoint     string
	Token        string
	Protocol     string
	Encrypt      bool
	PingInterval time.Duration
	PingTimeout  time.Duration
}
