// Package wire encodes request payloads into the shapes the Amplitude APIs accept.
package wire

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Param is a single form parameter. Form bodies keep insertion order so the
// api_key always leads the payload.
type Param struct {
	Key   string
	Value any
}

// EncodeForm encodes params as an application/x-www-form-urlencoded body.
// Values are stringified with Stringify before escaping.
func EncodeForm(params ...Param) (string, error) {
	pairs := make([]string, 0, len(params))
	for _, p := range params {
		s, err := Stringify(p.Value)
		if err != nil {
			return "", fmt.Errorf("encoding form field %q: %w", p.Key, err)
		}
		pairs = append(pairs, url.QueryEscape(p.Key)+"="+url.QueryEscape(s))
	}
	return strings.Join(pairs, "&"), nil
}

// Stringify converts a parameter value to its wire string form.
// Strings pass through, nil becomes the empty string, booleans and numbers use
// their standard formatting and everything else is JSON encoded.
func Stringify(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.RawMessage:
		return string(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case json.Number:
		return val.String(), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// StringOrJSON returns v unchanged when it is a string and its JSON encoding
// otherwise. Dashboard query parameters such as the segmentation event use it.
func StringOrJSON(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
