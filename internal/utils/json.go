package utils

import "encoding/json"

// MarshalStringList encodes a list of strings for a JSON column, producing
// an empty array rather than null for nil input.
func MarshalStringList(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}

	return json.Marshal(values)
}
