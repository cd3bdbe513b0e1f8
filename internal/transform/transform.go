// Package transform reshapes recovered values: object key rewriting and
// JSONPath selection.
package transform

import (
	"fmt"

	"github.com/iancoleman/strcase"
	"github.com/theory/jsonpath"

	"github.com/mcncl/jsonmend/internal/errors"
	"github.com/mcncl/jsonmend/internal/models"
)

// Rekey rewrites every object key in v to the given style: "camel",
// "pascal", "snake", or "kebab". An empty style returns v unchanged.
// Arrays and objects are rebuilt; leaves are shared with the input.
func Rekey(v models.Value, style string) (models.Value, error) {
	if style == "" {
		return v, nil
	}
	var convert func(string) string
	switch style {
	case "camel":
		convert = strcase.ToLowerCamel
	case "pascal":
		convert = strcase.ToCamel
	case "snake":
		convert = strcase.ToSnake
	case "kebab":
		convert = strcase.ToKebab
	default:
		return nil, errors.NewTransformError(
			fmt.Sprintf("unknown key style '%s'", style), nil)
	}
	return rekey(v, convert), nil
}

func rekey(v models.Value, convert func(string) string) models.Value {
	switch t := v.(type) {
	case *models.Object:
		out := models.NewObject()
		for _, key := range t.Keys() {
			val, _ := t.Get(key)
			out.Set(convert(key), rekey(val, convert))
		}
		return out
	case models.Array:
		out := make(models.Array, len(t))
		for i, val := range t {
			out[i] = rekey(val, convert)
		}
		return out
	default:
		return v
	}
}

// Select evaluates a JSONPath expression (e.g. "$.user.name") against v and
// returns the first match. Objects are flattened to plain maps for the path
// engine, so key order is not preserved through a selection.
func Select(v models.Value, pathExpr string) (models.Value, error) {
	if pathExpr == "" {
		return nil, errors.NewTransformError("JSONPath expression is empty", nil)
	}

	path, err := jsonpath.Parse(pathExpr)
	if err != nil {
		return nil, errors.NewTransformError(
			fmt.Sprintf("invalid JSONPath %s", pathExpr), err)
	}

	results := path.Select(Plain(v))
	if len(results) == 0 {
		return nil, errors.NewTransformError(
			fmt.Sprintf("JSONPath %s matched nothing", pathExpr), nil)
	}
	return results[0], nil
}

// Plain converts the value model into plain maps and slices, the shape the
// JSONPath engine (and most encoders) expect.
func Plain(v models.Value) any {
	switch t := v.(type) {
	case *models.Object:
		out := make(map[string]any, t.Len())
		for _, key := range t.Keys() {
			val, _ := t.Get(key)
			out[key] = Plain(val)
		}
		return out
	case models.Array:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Plain(val)
		}
		return out
	default:
		return v
	}
}
