package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decimal is a monetary amount as literal decimal text.
// It decodes from a JSON number or string and encodes as a JSON number.
type Decimal string

// UnmarshalJSON keeps the raw number text. Strings are unquoted; anything
// else (bools, objects) is kept verbatim and rejected later as malformed.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*d = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode decimal: %w", err)
		}
		*d = Decimal(s)
	default:
		*d = Decimal(data)
	}
	return nil
}

// MarshalJSON writes the value as a bare number when it is one.
func (d Decimal) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	if isNumber(string(d)) {
		return []byte(d), nil
	}
	return json.Marshal(string(d))
}

func (d Decimal) String() string {
	return string(d)
}

func isNumber(s string) bool {
	if s == "" || !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return false
	}
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil
}
