package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PersonAmount is one entry of a per-person balance map.
type PersonAmount struct {
	Person string
	Amount Decimal
}

// PersonAmounts encodes as a JSON object whose keys keep slice order, so
// balances are listed in the order people were given.
type PersonAmounts []PersonAmount

// Get returns the amount for person.
func (pa PersonAmounts) Get(person string) (Decimal, bool) {
	for _, e := range pa {
		if e.Person == person {
			return e.Amount, true
		}
	}
	return "", false
}

func (pa PersonAmounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range pa {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Person)
		if err != nil {
			return nil, err
		}
		val, err := e.Amount.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (pa *PersonAmounts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*pa = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("person amounts: expected object, got %v", tok)
	}

	out := PersonAmounts{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("person amounts: expected string key, got %v", keyTok)
		}
		var amount Decimal
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("person amounts: %s: %w", key, err)
		}
		out = append(out, PersonAmount{Person: key, Amount: amount})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*pa = out
	return nil
}
