package codec

import (
	"encoding/json"
)

// NewJSONCodec creates a new codec using json encoding
func NewJSONCodec() ICodec {
	return &jsonCodecImpl{}
}

// jsonCodecImpl implements the ICodec interface using json encoding
type jsonCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (c jsonCodecImpl) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c jsonCodecImpl) Decode(b []byte, v any) error {
	return json.Unmarshal(b, v)
}
