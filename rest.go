package kucoin

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	. "github.com/xiaolo66/kucoin/utils"
)

var restJson = jsoniter.ConfigCompatibleWithStandardLibrary

type Rest struct {
	Base
}

func (e *Rest) Init(option Options) {
	e.Option = option
	if e.Option.RestHost == "" {
		if e.Option.Sandbox {
			e.Option.RestHost = SandboxRestHost
		} else {
			e.Option.RestHost = RestHost
		}
	}
}

// Sign : public requests get the encoded query appended, private requests
// additionally carry the KC-API headers. The signature is
// base64(hmac-sha256(timestamp + METHOD + path + body)) with the query as
// part of the path for GET and the compact json params as body otherwise.
func (e *Rest) Sign(access, method, function string, param url.Values, header http.Header) (request Request) {
	request.Method = method
	request.Headers = header
	request.Headers.Set("Accept", "application/json")
	request.Headers.Set("Content-Type", "application/json")
	request.Headers.Set("User-Agent", "kucoin-go")

	path := fmt.Sprintf("/api/%s/%s", ApiVersion, function)
	if method == GET {
		if len(param) > 0 {
			path = path + "?" + param.Encode()
		}
	} else if len(param) > 0 {
		request.Body = UrlValuesToJson(param)
	}
	request.Url = e.Option.RestHost + path

	if access == Private {
		timestamp := EpochMillis()
		request.Headers.Set("KC-API-KEY", e.Option.AccessKey)
		request.Headers.Set("KC-API-PASSPHRASE", e.Option.PassPhrase)
		request.Headers.Set("KC-API-TIMESTAMP", timestamp)
		auth := timestamp + method + path + request.Body
		signature, err := HmacSign(SHA256, auth, e.Option.SecretKey, true)
		if err != nil {
			return
		}
		request.Headers.Set("KC-API-SIGN", signature)
	}
	return request
}

func (e *Rest) Fetch(access, method, function string, param url.Values, header http.Header) ([]byte, error) {
	request := e.Sign(access, method, function, param, header)
	client := &http.Client{Timeout: time.Second * 10}
	if e.Option.ProxyUrl != "" {
		proxy, _ := url.Parse(e.Option.ProxyUrl)
		client.Transport = &http.Transport{Proxy: http.ProxyURL(proxy)}
	}
	req, err := http.NewRequest(request.Method, request.Url, strings.NewReader(request.Body))
	if err != nil {
		return nil, RequestError{Message: err.Error()}
	}
	req.Header = request.Headers

	res, err := client.Do(req)
	if err != nil {
		return nil, RequestError{Message: err.Error()}
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, RequestError{Message: err.Error()}
	}
	return e.handleResponse(res, body)
}

// handleResponse : anything but a 2xx raises an APIError, as does an envelope
// carrying a business error code or success=false. A 2xx body that is not
// valid json raises a RequestError. The data attribute is unwrapped when the
// exchange provides one.
func (e *Rest) handleResponse(res *http.Response, body []byte) ([]byte, error) {
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, NewAPIError(res, body)
	}

	var result struct {
		Code    string              `json:"code"`
		Success *bool               `json:"success"`
		Data    jsoniter.RawMessage `json:"data"`
	}
	if err := restJson.Unmarshal(body, &result); err != nil {
		return nil, RequestError{Message: fmt.Sprintf("Invalid Response: %s", body)}
	}
	if result.Code != "" && result.Code != "200000" {
		return nil, NewAPIError(res, body)
	}
	if result.Success != nil && !*result.Success {
		return nil, NewAPIError(res, body)
	}
	if len(result.Data) > 0 {
		return result.Data, nil
	}
	return body, nil
}

func (e *Rest) FetchTimestamp() (timestamp int64, err error) {
	res, err := e.Fetch(Public, GET, "timestamp", url.Values{}, http.Header{})
	if err != nil {
		return
	}
	if err = restJson.Unmarshal(res, &timestamp); err != nil {
		err = RequestError{Message: err.Error()}
	}
	return
}

func (e *Rest) FetchCurrencies() (currencies []Currency, err error) {
	res, err := e.Fetch(Public, GET, "currencies", url.Values{}, http.Header{})
	if err != nil {
		return
	}

	var data []CurrencyData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	for _, c := range data {
		currencies = append(currencies, c.parseCurrency())
	}
	return
}

func (e *Rest) FetchCurrency(code string) (currency Currency, err error) {
	res, err := e.Fetch(Public, GET, fmt.Sprintf("currencies/%s", code), url.Values{}, http.Header{})
	if err != nil {
		return
	}

	var data CurrencyData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	currency = data.parseCurrency()
	return
}

// FetchWsEndpoint : websocket channel details, a private endpoint carries the
// token for the account channels
func (e *Rest) FetchWsEndpoint(private bool) (endpoint WsEndpoint, err error) {
	function := "bullet-public"
	access := Public
	if private {
		function = "bullet-private"
		access = Private
	}
	res, err := e.Fetch(access, POST, function, url.Values{}, http.Header{})
	if err != nil {
		return
	}

	var data WsEndpointData
	if err = restJson.Unmarshal(res, &data); err != nil {
		err = RequestError{Message: err.Error()}
		return
	}
	return data.parseWsEndpoint()
}
