package kucoin

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/xiaolo66/kucoin/websocket"
	. "github.com/xiaolo66/kucoin/utils"
)

var wsJson = jsoniter.ConfigCompatibleWithStandardLibrary

type SubTopic struct {
	Topic       string
	Symbol      string
	MessageType MessageType
	KLineType   KLineType
	Private     bool
}

type Ws struct {
	Base
	orderBooks   map[string]*SymbolOrderBook // key: ws url
	subTopicInfo map[string]SubTopic         // key: topic
	endpoints    map[string]WsEndpoint       // key: ws url
	publicUrl    string
	privateUrl   string
	urlLock      sync.Mutex
}

func (e *Ws) Init(option Options) {
	e.Base.Init()
	e.Option = option
	e.orderBooks = make(map[string]*SymbolOrderBook)
	e.subTopicInfo = make(map[string]SubTopic)
	e.endpoints = make(map[string]WsEndpoint)
	if e.Option.RestHost == "" {
		if e.Option.Sandbox {
			e.Option.RestHost = SandboxRestHost
		} else {
			e.Option.RestHost = RestHost
		}
	}
}

func (e *Ws) SubscribeTicker(symbol string, sub MessageChan) (string, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return "", err
	}
	return e.subscribe("/market/ticker:"+market.SymbolID, market.Symbol, MsgTicker, KLineUnknown, false, sub)
}

func (e *Ws) SubscribeAllTicker(sub MessageChan) (string, error) {
	return e.subscribe("/market/ticker:all", "", MsgAllTicker, KLineUnknown, false, sub)
}

func (e *Ws) SubscribeTrades(symbol string, sub MessageChan) (string, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return "", err
	}
	return e.subscribe("/market/match:"+market.SymbolID, market.Symbol, MsgTrade, KLineUnknown, false, sub)
}

// SubscribeOrderBook : incremental level2 feed merged into a rest snapshot
func (e *Ws) SubscribeOrderBook(symbol string, sub MessageChan) (string, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return "", err
	}
	return e.subscribe("/market/level2:"+market.SymbolID, market.Symbol, MsgOrderBook, KLineUnknown, false, sub)
}

func (e *Ws) SubscribeKLine(symbol string, t KLineType, sub MessageChan) (string, error) {
	market, err := e.GetMarket(symbol)
	if err != nil {
		return "", err
	}
	kLineType, err := kLineTypeString(t)
	if err != nil {
		return "", err
	}
	topic := fmt.Sprintf("/market/candles:%s_%s", market.SymbolID, kLineType)
	return e.subscribe(topic, market.Symbol, MsgKLine, t, false, sub)
}

func (e *Ws) SubscribeBalance(sub MessageChan) (string, error) {
	return e.subscribe("/account/balance", "", MsgBalance, KLineUnknown, true, sub)
}

func (e *Ws) SubscribeOrder(sub MessageChan) (string, error) {
	return e.subscribe("/spotMarket/tradeOrders", "", MsgOrder, KLineUnknown, true, sub)
}

func (e *Ws) UnSubscribe(topic string, sub MessageChan) error {
	e.RwLock.Lock()
	topicInfo, ok := e.subTopicInfo[topic]
	delete(e.subTopicInfo, topic)
	e.RwLock.Unlock()

	url := e.publicUrl
	if ok && topicInfo.Private {
		url = e.privateUrl
	}
	conn, err := e.ConnectionMgr.GetConnection(url, nil)
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"id":             FlatUUID(),
		"type":           "unsubscribe",
		"topic":          topic,
		"privateChannel": topicInfo.Private,
		"response":       true,
	}
	if err := conn.SendJsonMessage(data); err != nil {
		return err
	}
	conn.UnSubscribe(sub)
	return nil
}

func (e *Ws) subscribe(topic, symbol string, t MessageType, kt KLineType, private bool, sub MessageChan) (string, error) {
	e.RwLock.Lock()
	e.subTopicInfo[topic] = SubTopic{Topic: topic, Symbol: symbol, MessageType: t, KLineType: kt, Private: private}
	e.RwLock.Unlock()

	url, err := e.getConnectionUrl(private)
	if err != nil {
		return "", err
	}
	conn, err := e.ConnectionMgr.GetConnection(url, e.Connect)
	if err != nil {
		return "", err
	}
	data := map[string]interface{}{
		"id":             FlatUUID(),
		"type":           "subscribe",
		"topic":          topic,
		"privateChannel": private,
		"response":       true,
	}
	if err := conn.SendJsonMessage(data); err != nil {
		return "", err
	}
	conn.Subscribe(sub)
	return topic, nil
}

// getConnectionUrl : the ws url carries the bullet token, one url per channel
// kind is cached and reused by every topic on it
func (e *Ws) getConnectionUrl(private bool) (string, error) {
	e.urlLock.Lock()
	defer e.urlLock.Unlock()
	if !private && e.publicUrl != "" {
		return e.publicUrl, nil
	}
	if private && e.privateUrl != "" {
		return e.privateUrl, nil
	}

	endpoint, err := e.requestWsEndpoint(private)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s?token=%s&connectId=%s", endpoint.Endpoint, endpoint.Token, FlatUUID())
	e.endpoints[url] = endpoint
	if private {
		e.privateUrl = url
	} else {
		e.publicUrl = url
	}
	return url, nil
}

// requestWsEndpoint : bullet handshake, the private channels need a signed one
func (e *Ws) requestWsEndpoint(private bool) (WsEndpoint, error) {
	function := "bullet-public"
	if private {
		function = "bullet-private"
	}
	path := fmt.Sprintf("/api/%s/%s", ApiVersion, function)

	client := resty.New()
	if e.Option.ProxyUrl != "" {
		client.SetProxy(e.Option.ProxyUrl)
	}
	req := client.R().
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if private {
		timestamp := EpochMillis()
		signature, err := HmacSign(SHA256, timestamp+POST+path, e.Option.SecretKey, true)
		if err != nil {
			return WsEndpoint{}, err
		}
		req.SetHeaders(map[string]string{
			"KC-API-KEY":        e.Option.AccessKey,
			"KC-API-PASSPHRASE": e.Option.PassPhrase,
			"KC-API-TIMESTAMP":  timestamp,
			"KC-API-SIGN":       signature,
		})
	}

	var response struct {
		Code string         `json:"code"`
		Data WsEndpointData `json:"data"`
	}
	res, err := req.SetResult(&response).Post(e.Option.RestHost + path)
	if err != nil {
		return WsEndpoint{}, RequestError{Message: err.Error()}
	}
	if response.Code != "200000" {
		return WsEndpoint{}, NewAPIError(res.RawResponse, res.Body())
	}
	return response.Data.parseWsEndpoint()
}

func (e *Ws) Connect(url string) (*Connection, error) {
	endpoint := e.endpoints[url]
	heartbeat := endpoint.PingInterval
	if heartbeat == 0 {
		heartbeat = time.Second * 50
	}
	readDeadline := endpoint.PingInterval + endpoint.PingTimeout
	if readDeadline == 0 {
		readDeadline = time.Minute
	}

	conn := NewConnection()
	err := conn.Connect(
		websocket.SetExchangeName("KuCoin"),
		websocket.SetWsUrl(url),
		websocket.SetProxyUrl(e.Option.ProxyUrl),
		websocket.SetIsAutoReconnect(e.Option.AutoReconnect),
		websocket.SetReadDeadLineTime(readDeadline),
		websocket.SetHeartbeatIntervalTime(heartbeat),
		websocket.SetHeartbeatHandler(e.heartbeatHandler),
		websocket.SetMessageHandler(e.messageHandler),
		websocket.SetErrorHandler(e.errorHandler),
		websocket.SetCloseHandler(e.closeHandler),
		websocket.SetReConnectedHandler(e.reConnectedHandler),
		websocket.SetDisConnectedHandler(e.disConnectedHandler),
	)
	return conn, err
}

func (e *Ws) send(url string, data interface{}) error {
	conn, err := e.ConnectionMgr.GetConnection(url, nil)
	if err != nil {
		return err
	}
	return conn.SendJsonMessage(data)
}

// heartbeatHandler : the server expects an application level json ping inside
// every pingInterval
func (e *Ws) heartbeatHandler(url string) {
	data := map[string]string{
		"id":   FlatUUID(),
		"type": "ping",
	}
	if err := e.send(url, data); err != nil {
		e.errorHandler(url, fmt.Errorf("[KuCoinWs] heartbeatHandler - send ping error:%v", err))
	}
}

func (e *Ws) messageHandler(url string, message []byte) {
	var res WsResponse
	if err := wsJson.Unmarshal(message, &res); err != nil {
		e.errorHandler(url, fmt.Errorf("[KuCoinWs] messageHandler unmarshal error:%v", err))
		return
	}

	switch res.Type {
	case "welcome", "pong", "ack":
		return
	case "error":
		e.errorHandler(url, RequestError{Message: fmt.Sprintf("code:%v data:%s", res.Code, res.Data)})
		return
	}
	if res.Topic == "" {
		return
	}

	e.RwLock.RLock()
	topicInfo, ok := e.subTopicInfo[res.Topic]
	e.RwLock.RUnlock()
	if !ok {
		e.errorHandler(url, fmt.Errorf("[KuCoinWs] messageHandler - not subscribed to this topic :%v", res.Topic))
		return
	}

	switch topicInfo.MessageType {
	case MsgTicker:
		e.handleTicker(url, res, topicInfo)
	case MsgAllTicker:
		e.handleAllTicker(url, res)
	case MsgTrade:
		e.handleTrade(url, res, topicInfo)
	case MsgKLine:
		e.handleKLine(url, res, topicInfo)
	case MsgOrderBook:
		e.handleOrderBook(url, res, topicInfo)
	case MsgBalance:
		e.handleBalance(url, res)
	case MsgOrder:
		e.handleOrder(url, res)
	default:
		e.errorHandler(url, fmt.Errorf("[KuCoinWs] messageHandler - not support this topic :%v", res.Topic))
	}
}

func (e *Ws) handleTicker(url string, res WsResponse, topicInfo SubTopic) {
	var data TickerData
	if err := wsJson.Unmarshal(res.Data, &data); err != nil {
		e.errorHandler(url, fmt.Errorf("[KuCoinWs] handleTicker - message Unmarshal to ticker error:%v", err))
		return
	}
	ticker := data.parseTicker(topicInfo.Symbol)
	e.ConnectionMgr.Publish(url, Message{Type: MsgTicker, Data: ticker})
}

// handleAllTicker : the symbol of a ticker:all push rides in the subject
func (e *Ws) handleAllTicker(url string, res WsResponse) {
	market, err := e.GetMarketByID(res.Subject)
	if err != nil {
		return
	}
	var data TickerData
	if err := wsJson.Unmarshal(res.Data, &data); err != nil {
		e.errorHandler(url, fmt.Errorf("[KuCoinWs] handleAllTicker - message Unmarshal to ticker error:%v", err))
		return
	}
	ticker := data.parseTicker(market.Symbol)
	e.ConnectionMgr.Publish(url, Message{Type: MsgAllTicker, Data: ticker})
}

func (e *Ws) handleTrade(url string, res WsResponse, topicInfo SubTopic) {
	var data WsTradeData
	if err := wsJson.Unmarshal(res.Data, &data); err != nil {
		e.errorHandler(url, fmt.Errorf("[KuCoinWs] handleTrade - message Unmarshal to trade error:%v", err))
		return
	}
	trade := data.parseTrade(topicInfo.Symbol)
	e.ConnectionMgr.Publish(url, Message{Type: MsgTrade, Data: trade})
}

func (e *Ws) handleKLine(url string, res WsResponse, topicInfo SubTopic) {
	var data WsKLineData
	if err := wsJson.Unmarshal(res.Data, &data); err != nil {
		e.errorHandler(url, fmt.Errorf("[KuCoinWs] handleKLine - message Unmarshal to kline error:%v", err))
		return
	}
	kline := data.Candles.parseKLine(topicInfo.Symbol, topicInfo.KLineType)
	e.ConnectionMgr.Publish(url, Message{Type: MsgKLine, Data: kline})
}

func (e *Ws) handleOrderBook(url string, res WsResponse, topicInfo SubTopic) {
	e.RwLock.Lock()
	defer e.RwLock.Unlock()

	var data WsDepthData
	if err := wsJson.Unmarshal(res.Data, &data); err != nil {
		e.errorHandler(url, fmt.Errorf("[KuCoinWs] handleOrderBook - message Unmarshal to depth error:%v", err))
		return
	}

	symbolOrderBook, ok := e.orderBooks[url]
	if !ok {
		symbolOrderBook = &SymbolOrderBook{}
		e.orderBooks[url] = symbolOrderBook
	}
	orderBook, ok := (*symbolOrderBook)[topicInfo.Symbol]
	if !ok {
		if err := e.getSnapshotOrderBook(url, topicInfo, symbolOrderBook); err != nil {
			e.errorHandler(url, err)
		}
		return
	}
	if data.SequenceEnd <= orderBook.LastSequence {
		return
	}
	orderBook.LastSequence = data.SequenceEnd
	orderBook.Bids = orderBook.Bids.Update(data.Changes.Bids, true)
	orderBook.Asks = orderBook.Asks.Update(data.Changes.Asks, false)
	e.ConnectionMgr.Publish(url, Message{Type: MsgOrderBook, Data: orderBook.OrderBook})
}

func (e *Ws) getSnapshotOrderBook(url string, topicInfo SubTopic, symbolOrderBook *SymbolOrderBook) error {
	market, err := e.GetMarket(topicInfo.Symbol)
	if err != nil {
		return err
	}

	var response struct {
		Code string    `json:"code"`
		Data DepthData `json:"data"`
	}
	client := resty.New()
	if e.Option.ProxyUrl != "" {
		client.SetProxy(e.Option.ProxyUrl)
	}
	reqUrl := fmt.Sprintf("%s/api/%s/market/orderbook/level2_100?symbol=%s", e.Option.RestHost, ApiVersion, market.SymbolID)
	if _, err = client.R().SetHeader("Accept", "application/json").SetResult(&response).Get(reqUrl); err != nil {
		return fmt.Errorf("[KuCoinWs] getSnapshotOrderBook - request url %s error:%v", reqUrl, err)
	}
	if response.Code != "200000" {
		return fmt.Errorf("[KuCoinWs] getSnapshotOrderBook - request url %s no data", reqUrl)
	}

	var orderBook WsOrderBook
	orderBook.LastSequence, _ = strconv.ParseInt(response.Data.Sequence, 10, 64)
	orderBook.OrderBook = response.Data.parseOrderBook(market.Symbol)
	(*symbolOrderBook)[market.Symbol] = &orderBook
	e.orderBooks[url] = symbolOrderBook
	return nil
}

func (e *Ws) handleBalance(url string, res WsResponse) {
	var data WsBalanceData
	if err := wsJson.Unmarshal(res.Data, &data); err != nil {
		e.errorHandler(url, fmt.Errorf("[KuCoinWs] handleBalance - message Unmarshal to balance error:%v", err))
		return
	}
	balance := data.parseBalance()
	update := BalanceUpdate{
		UpdateTime: time.Duration(SafeParseFloat(data.Time)),
		Balances:   map[string]Balance{balance.Asset: balance},
	}
	e.ConnectionMgr.Publish(url, Message{Type: MsgBalance, Data: update})
}

func (e *Ws) handleOrder(url string, res WsResponse) {
	var data WsOrderData
	if err := wsJson.Unmarshal(res.Data, &data); err != nil {
		e.errorHandler(url, fmt.Errorf("[KuCoinWs] handleOrder - message Unmarshal to order error:%v", err))
		return
	}
	symbol := data.Symbol
	if market, err := e.GetMarketByID(data.Symbol); err == nil {
		symbol = market.Symbol
	}
	order := data.parseOrder(symbol)
	e.ConnectionMgr.Publish(url, Message{Type: MsgOrder, Data: order})
}

func (e *Ws) reConnectedHandler(url string) {
	e.Base.ReConnectedHandler(url, func() {
		e.RwLock.Lock()
		defer e.RwLock.Unlock()
		delete(e.orderBooks, url)
	})
}

func (e *Ws) disConnectedHandler(url string, err error) {
	// clear cache data, Prevent getting dirty data
	e.Base.DisConnectedHandler(url, err, func() {
		delete(e.orderBooks, url)
	})
}

func (e *Ws) closeHandler(url string) {
	// clear cache data and the connection
	e.Base.CloseHandler(url, func() {
		delete(e.orderBooks, url)
		e.urlLock.Lock()
		defer e.urlLock.Unlock()
		if url == e.publicUrl {
			e.publicUrl = ""
		}
		if url == e.privateUrl {
			e.privateUrl = ""
		}
		delete(e.endpoints, url)
	})
}

func (e *Ws) errorHandler(url string, err error) {
	e.Base.ErrorHandler(url, err, nil)
}
