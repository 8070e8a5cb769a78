// Package output serializes pipeline results.
package output

import (
	"encoding/json"
	"os"
)

// ToJSON serializes v to JSON, optionally pretty-printed. Compact output
// keeps the dashboard payloads small.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteJSON writes v as a JSON file.
func WriteJSON(path string, v interface{}, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
