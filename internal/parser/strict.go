package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcncl/jsonmend/internal/models"
)

// decodeStrict parses text that must be fully-conforming JSON, producing
// the same value model as the tolerant pass: objects keep key order and
// numbers split into int64 and float64.
func decodeStrict(s string) (models.Value, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// Exactly one value; anything but trailing whitespace is an error.
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected trailing token %v", tok)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (models.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			arr := models.Array{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		case '{':
			obj := models.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		return coerceNumber(t), nil
	default:
		// string, bool, or nil for a JSON null.
		return t, nil
	}
}

// coerceNumber maps a JSON number onto int64 when it has no fractional or
// exponent part, float64 otherwise. Integers too large for int64 degrade
// to float64, matching encoding/json's default decoding.
func coerceNumber(n json.Number) models.Value {
	raw := n.String()
	if !strings.ContainsAny(raw, ".eE") {
		if v, err := n.Int64(); err == nil {
			return v
		}
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return raw
}
