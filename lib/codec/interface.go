package codec

// ICodec is the interface for all value codecs. A codec serializes a typed
// value into a byte representation for storage and reconstructs it on read.
type ICodec interface {
	// Encode serializes a value into a byte array
	// It returns the serialized byte array and an error if any
	Encode(v any) ([]byte, error)
	// Decode deserializes a byte array into a value
	// It takes a byte array and a pointer to the target value as parameters
	// It returns an error if any
	Decode(b []byte, v any) error
}
