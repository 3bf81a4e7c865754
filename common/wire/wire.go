// Package wire converts payload keys between the snake_case persisted shape
// and the camelCase wire shape with a pure recursive key-rename pass.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/stoewer/go-strcase"
)

// CamelizeKeys renames every map key in a decoded JSON value to lowerCamelCase
func CamelizeKeys(v any) any {
	return renameKeys(v, strcase.LowerCamelCase)
}

// SnakifyKeys renames every map key in a decoded JSON value to snake_case
func SnakifyKeys(v any) any {
	return renameKeys(v, strcase.SnakeCase)
}

func renameKeys(v any, rename func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[rename(k)] = renameKeys(item, rename)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = renameKeys(item, rename)
		}
		return out
	default:
		return v
	}
}

// ToWire marshals v (snake_case tags) and re-keys the result to camelCase
func ToWire(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return CamelizeKeys(decoded), nil
}

// FromWire re-keys a camelCase wire payload to snake_case and decodes into dst
func FromWire(data []byte, dst any) error {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}

	rekeyed, err := json.Marshal(SnakifyKeys(decoded))
	if err != nil {
		return fmt.Errorf("re-key request body: %w", err)
	}

	if err := json.Unmarshal(rekeyed, dst); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	return nil
}
