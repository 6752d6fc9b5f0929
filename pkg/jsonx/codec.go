package jsonx

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Encode marshals val into a JSON string.
func Encode(val any) (string, error) {
	b, err := json.Marshal(val)
	if err != nil {
		return "", fmt.Errorf("jsonx: encode %T: %w", val, err)
	}
	return string(b), nil
}

// Decode unmarshals data into a fresh value of type T.
func Decode[T any](data string) (T, error) {
	var result T
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return result, fmt.Errorf("jsonx: decode %T: %w", result, err)
	}
	return result, nil
}
