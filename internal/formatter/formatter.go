// Package formatter renders recovered values back to text.
package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/mcncl/jsonmend/internal/models"
)

// Formatter renders a parsed value as JSON or YAML text. Object key order
// survives both formats.
type Formatter struct {
	Format  string
	Indent  int
	Compact bool
}

// NewFormatter creates a Formatter with the default JSON settings
func NewFormatter() *Formatter {
	return &Formatter{Format: "json", Indent: 2}
}

// Render returns the textual representation of v per the configured format
func (f *Formatter) Render(v models.Value) (string, error) {
	switch f.Format {
	case "", "json":
		return f.renderJSON(v)
	case "yaml":
		return renderYAML(v)
	default:
		return "", fmt.Errorf("unknown output format '%s'", f.Format)
	}
}

func (f *Formatter) renderJSON(v models.Value) (string, error) {
	var (
		data []byte
		err  error
	)
	if f.Compact || f.Indent <= 0 {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", f.Indent))
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode value: %w", err)
	}
	return string(data), nil
}

func renderYAML(v models.Value) (string, error) {
	data, err := yaml.Marshal(toYAML(v))
	if err != nil {
		return "", fmt.Errorf("failed to encode value: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// toYAML converts the value model into types the YAML encoder understands.
// Objects become MapSlices so insertion order is preserved.
func toYAML(v models.Value) any {
	switch t := v.(type) {
	case *models.Object:
		ms := make(yaml.MapSlice, 0, t.Len())
		for _, key := range t.Keys() {
			val, _ := t.Get(key)
			ms = append(ms, yaml.MapItem{Key: key, Value: toYAML(val)})
		}
		return ms
	case models.Array:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = toYAML(val)
		}
		return out
	default:
		return v
	}
}
