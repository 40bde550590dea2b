package apiconnect

import "encoding/json"

// JSONCodec encodes plain Go structs with encoding/json. It is registered
// under the name "json", so requests use Content-Type application/json.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (JSONCodec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }
