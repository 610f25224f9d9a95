package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const ZERO float64 = 0.0000000001

func Round(f float64, n int, rounding bool) string {
	n10 := math.Pow10(n)
	add := 0.0
	if rounding {
		add = 0.5 / n10
	}
	return fmt.Sprintf("%."+strconv.Itoa(n)+"f", math.Trunc((f+add)*n10)/n10)
}

func SafeParseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

const (
	CompareInvalid = iota
	CompareEqual
	CompareLess
	CompareGreater
)

func CompareFloatString(left, right string) int {
	fL, err1 := strconv.ParseFloat(left, 64)
	fR, err2 := strconv.ParseFloat(right, 64)
	if err1 != nil || err2 != nil {
		return CompareInvalid
	}
	if math.Abs(fL-fR) < ZERO {
		return CompareEqual
	} else if fL > fR {
		return CompareGreater
	} else {
		return CompareLess
	}
}

// EpochMillis : current unix timestamp in milliseconds, as sent in the
// KC-API-TIMESTAMP header
func EpochMillis() string {
	return strconv.FormatInt(time.Now().UnixNano()/1e6, 10)
}

// FlatUUID : uuid v4 without dashes
func FlatUUID() string {
	return strings.Replace(uuid.New().String(), "-", "", -1)
}

func GenerateOrderClientID(prefix string, size int) string {
	uuidStr := FlatUUID()
	if prefix == "" {
		prefix = "kcex"
	}
	return prefix + uuidStr[0:size-len(prefix)]
}

func IsClientOrderID(orderID, prefix string) bool {
	if prefix == "" {
		prefix = "kcex"
	}
	return strings.Contains(orderID, prefix)
}

// UrlValuesToJson : compact json object of the values, used as a signed
// request body. Repeated keys keep all values as an array.
func UrlValuesToJson(values url.Values) string {
	m := make(map[string]interface{}, 0)
	for key, val := range values {
		if len(val) > 1 {
			m[key] = val
		} else if len(val) == 1 {
			m[key] = val[0]
		}
	}
	js, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(js)
}
