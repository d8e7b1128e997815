// Package codec registers the JSON wire codec used by the discovery and swipe
// gRPC services. Clients select it with grpc.CallContentSubtype(Name).
package codec

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Name is the gRPC content-subtype ("application/grpc+json").
const Name = "json"

// JSON marshals messages with encoding/json.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSON) Name() string                       { return Name }

func init() {
	encoding.RegisterCodec(JSON{})
}
