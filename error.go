package kucoin

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var errorJson = jsoniter.ConfigCompatibleWithStandardLibrary

// APIError : the exchange answered a request with a failure status or an
// error payload. Message and Code are best-effort extractions from the body,
// they are always set even when the body is empty or malformed.
type APIError struct {
	Message    string
	Code       string // exchange business error code, distinct from StatusCode
	StatusCode int
	Response   *http.Response
	Body       string
	Request    *http.Request
}

// NewAPIError builds an APIError from a response whose body has already been
// read (response bodies are single-read, the caller owns the drain). It never
// fails: an unreadable or non-object body degrades to the raw text, an empty
// body to "Unknown Error".
func NewAPIError(res *http.Response, body []byte) APIError {
	e := APIError{
		Message:    "Unknown Error",
		StatusCode: res.StatusCode,
		Response:   res,
		Body:       string(body),
		Request:    res.Request,
	}

	var fields map[string]interface{}
	if err := errorJson.Unmarshal(body, &fields); err != nil {
		if len(body) > 0 {
			e.Message = string(body)
		}
		return e
	}

	if v, ok := fields["error"]; ok {
		e.Message = stringifyField(v)
	}
	// msg wins over error when both are present
	if v, ok := fields["msg"]; ok {
		e.Message = stringifyField(v)
	}
	if v, ok := fields["message"]; ok {
		if s := stringifyField(v); s != "" {
			e.Message = fmt.Sprintf("%s - %s", e.Message, s)
		}
	}
	if v, ok := fields["code"]; ok {
		e.Code = stringifyField(v)
	}
	if v, ok := fields["data"]; ok {
		if raw, err := errorJson.Marshal(v); err == nil {
			e.Message += string(raw)
		}
	}
	return e
}

func (e APIError) Error() string {
	return fmt.Sprintf("APIError %d: %s", e.StatusCode, e.Message)
}

func stringifyField(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// RequestError : the request could not be built or sent, or the exchange
// answered 2xx with a body that is not valid JSON. No response is attached.
type RequestError struct {
	Message string
}

func (e RequestError) Error() string {
	return fmt.Sprintf("RequestError: %s", e.Message)
}

// MarketOrderError : market order parameters rejected before sending.
type MarketOrderError struct {
	Message string
}

func (e MarketOrderError) Error() string {
	return fmt.Sprintf("MarketOrderError: %s", e.Message)
}

// LimitOrderError : limit order parameters rejected before sending.
type LimitOrderError struct {
	Message string
}

func (e LimitOrderError) Error() string {
	return fmt.Sprintf("LimitOrderError: %s", e.Message)
}
