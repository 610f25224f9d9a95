package kucoin

type IExchange interface {
	//websocket api
	SubscribeOrderBook(symbol string, sub MessageChan) (string, error)

	SubscribeTrades(symbol string, sub MessageChan) (string, error)

	SubscribeTicker(symbol string, sub MessageChan) (string, error)

	SubscribeAllTicker(sub MessageChan) (string, error)

	SubscribeKLine(symbol string, t KLineType, sub MessageChan) (string, error)

	SubscribeBalance(sub MessageChan) (string, error)

	SubscribeOrder(sub MessageChan) (string, error)

	UnSubscribe(topic string, sub MessageChan) error

	//rest api
	FetchOrderBook(symbol string, size int) (OrderBook, error)

	FetchTicker(symbol string) (Ticker, error)

	FetchAllTicker() (map[string]Ticker, error)

	FetchTrade(symbol string) ([]Trade, error)

	FetchKLine(symbol string, t KLineType) ([]KLine, error)

	FetchMarkets() (map[string]Market, error)

	FetchBalance() (map[string]Balance, error)

	CreateOrder(symbol string, price, amount float64, side Side, tradeType TradeType, useClientID bool) (Order, error)

	CreateMarketOrder(order MarketOrderParams) (Order, error)

	CreateLimitOrder(order LimitOrderParams) (Order, error)

	CancelOrder(orderID string) error

	CancelAllOrders(symbol string) error

	FetchOrder(orderID string) (Order, error)

	FetchOpenOrders(symbol string, pageIndex, pageSize int) ([]Order, error)

	FetchFills(orderID, symbol string, pageIndex, pageSize int) ([]Fill, error)
}
