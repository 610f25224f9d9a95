package kucoin

import (
	"net/http"
	"testing"
)

func newErrorResponse(statusCode int) *http.Response {
	req, _ := http.NewRequest(GET, "https://openapi-v2.kucoin.com/api/v1/orders", nil)
	return &http.Response{StatusCode: statusCode, Request: req}
}

func TestNewAPIErrorAllKeys(t *testing.T) {
	body := []byte(`{"error":"first","msg":"second","message":"detail","code":"400100","data":{"a":1}}`)
	err := NewAPIError(newErrorResponse(400), body)

	if err.Message != `second - detail{"a":1}` {
		t.Errorf("unexpected message: %q", err.Message)
	}
	if err.Code != "400100" {
		t.Errorf("unexpected code: %q", err.Code)
	}
	if err.StatusCode != 400 {
		t.Errorf("unexpected status code: %v", err.StatusCode)
	}
}

func TestNewAPIErrorMsgOverridesError(t *testing.T) {
	err := NewAPIError(newErrorResponse(400), []byte(`{"error":"first","msg":"second"}`))
	if err.Message != "second" {
		t.Errorf("msg should win over error, got %q", err.Message)
	}

	err = NewAPIError(newErrorResponse(400), []byte(`{"error":"first"}`))
	if err.Message != "first" {
		t.Errorf("error alone should be used, got %q", err.Message)
	}
}

func TestNewAPIErrorInvalidAPIKey(t *testing.T) {
	err := NewAPIError(newErrorResponse(400), []byte(`{"code":"400100","msg":"Invalid API Key"}`))
	if err.Code != "400100" {
		t.Errorf("unexpected code: %q", err.Code)
	}
	if err.Message != "Invalid API Key" {
		t.Errorf("unexpected message: %q", err.Message)
	}
	if err.Error() != "APIError 400: Invalid API Key" {
		t.Errorf("unexpected rendering: %q", err.Error())
	}
}

func TestNewAPIErrorPlainTextBody(t *testing.T) {
	err := NewAPIError(newErrorResponse(503), []byte("Service Unavailable"))
	if err.Message != "Service Unavailable" {
		t.Errorf("unexpected message: %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("code should be empty, got %q", err.Code)
	}
	if err.Error() != "APIError 503: Service Unavailable" {
		t.Errorf("unexpected rendering: %q", err.Error())
	}
}

func TestNewAPIErrorEmptyBody(t *testing.T) {
	err := NewAPIError(newErrorResponse(502), nil)
	if err.Message != "Unknown Error" {
		t.Errorf("unexpected message: %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("code should be empty, got %q", err.Code)
	}
}

func TestNewAPIErrorNoDataKey(t *testing.T) {
	err := NewAPIError(newErrorResponse(400), []byte(`{"msg":"bad request","code":"400000"}`))
	if err.Message != "bad request" {
		t.Errorf("message must not change without a data key, got %q", err.Message)
	}
}

func TestNewAPIErrorNumericFields(t *testing.T) {
	err := NewAPIError(newErrorResponse(429), []byte(`{"code":200004,"msg":"rate limited"}`))
	if err.Code != "200004" {
		t.Errorf("numeric code should stringify, got %q", err.Code)
	}
}

func TestNewAPIErrorEmptyMessageField(t *testing.T) {
	err := NewAPIError(newErrorResponse(400), []byte(`{"msg":"broken","message":""}`))
	if err.Message != "broken" {
		t.Errorf("empty message field must not be appended, got %q", err.Message)
	}
}

func TestNewAPIErrorKeepsRequest(t *testing.T) {
	res := newErrorResponse(401)
	err := NewAPIError(res, []byte(`{}`))
	if err.Request != res.Request {
		t.Error("request should be taken from the response")
	}
	if err.Response != res {
		t.Error("response should be recorded")
	}
}

func TestAPIErrorRenderingDeterministic(t *testing.T) {
	err := NewAPIError(newErrorResponse(400), []byte(`{"msg":"oops"}`))
	if err.Error() != err.Error() {
		t.Error("rendering must be a pure function of state")
	}
}

func TestSimpleVariants(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{RequestError{Message: "X"}, "RequestError: X"},
		{MarketOrderError{Message: "size must be positive"}, "MarketOrderError: size must be positive"},
		{LimitOrderError{Message: "missing price"}, "LimitOrderError: missing price"},
	}
	for _, c := range cases {
		if c.err.Error() != c.want {
			t.Errorf("got %q, want %q", c.err.Error(), c.want)
		}
	}
}
