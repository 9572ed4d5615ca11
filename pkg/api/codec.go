package api

import "encoding/json"

// JSONCodec replaces Connect's protobuf JSON codec with encoding/json so the
// plain structs in this package can be used as messages.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
