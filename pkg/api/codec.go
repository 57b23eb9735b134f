package api

import (
	"encoding/json"
	"fmt"
)

// JSONCodec serializes plain Go messages for Connect. It replaces the default
// protobuf codecs, which only accept generated message types.
type JSONCodec struct {
	name string
}

// Codecs returns the codec under every name Connect clients use for JSON.
func Codecs() []*JSONCodec {
	return []*JSONCodec{{name: "json"}, {name: "json; charset=utf-8"}}
}

// Name implements connect.Codec.
func (c *JSONCodec) Name() string { return c.name }

// Marshal implements connect.Codec.
func (c *JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (c *JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("invalid %s message: %w", c.name, err)
	}
	return nil
}
