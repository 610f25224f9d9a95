package kucoin

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
)

type Request struct {
	Method  string
	Url     string
	Headers http.Header
	Body    string
}

const (
	Public  = "Public"
	Private = "Private"
	GET     = "GET"
	POST    = "POST"
	PUT     = "PUT"
	DELETE  = "DELETE"
)

type Base struct {
	Option        Options
	ConnectionMgr *ConnectionManager

	RwLock sync.RWMutex
}

func (b *Base) Init() {
	b.ConnectionMgr = NewConnectionManager()
	b.RwLock = sync.RWMutex{}
}

func (b *Base) GetMarketByID(symbolID string) (Market, error) {
	symbolID = strings.ToUpper(symbolID)
	for _, market := range b.Option.Markets {
		if market.SymbolID == symbolID {
			return market, nil
		}
	}
	return Market{}, fmt.Errorf("%v market not found", symbolID)
}

func (b *Base) GetMarket(symbol string) (Market, error) {
	symbol = strings.ToUpper(symbol)
	for _, market := range b.Option.Markets {
		if market.Symbol == symbol {
			return market, nil
		}
	}
	return Market{}, fmt.Errorf("%v market not found", symbol)
}

func (b *Base) ReConnectedHandler(url string, f func()) {
	if f != nil {
		f()
	}
	//Notify subscribers of reconnection message, then clean up the channel
	//because after receiving the reconnection notification, the subscribers will resubscribe and use the new channel
	b.ConnectionMgr.PublishAfterClear(url, ReConnectedMessage)
}

func (b *Base) DisConnectedHandler(url string, err error, f func()) {
	// clear cache data, Prevent getting dirty data
	b.RwLock.Lock()
	defer b.RwLock.Unlock()
	if f != nil {
		f()
	}
	b.ConnectionMgr.Publish(url, DisConnectedMessage)
}

func (b *Base) CloseHandler(url string, f func()) {
	// clear cache data and the connection
	b.RwLock.Lock()
	defer b.RwLock.Unlock()
	if f != nil {
		f()
	}
	b.ConnectionMgr.Publish(url, CloseMessage)
	b.ConnectionMgr.RemoveConnection(url)
}

func (b *Base) ErrorHandler(url string, err error, f func()) {
	if f != nil {
		f()
	}
	b.ConnectionMgr.Publish(url, ErrorMessage(err))
}
