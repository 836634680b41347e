// Package jsonrs is the single entry point for JSON serialization in this
// repository. Callers should use it instead of importing a JSON library
// directly, so that the implementation can be swapped in one place.
package jsonrs

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var std = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return std.Marshal(v)
}

// MarshalIndent is like Marshal but applies the given prefix and indent.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return std.MarshalIndent(v, prefix, indent)
}

// MarshalToString returns the JSON encoding of v as a string.
func MarshalToString(v any) (string, error) {
	return std.MarshalToString(v)
}

// Unmarshal parses JSON-encoded data into v.
func Unmarshal(data []byte, v any) error {
	return std.Unmarshal(data, v)
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *jsoniter.Decoder {
	return std.NewDecoder(r)
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *jsoniter.Encoder {
	return std.NewEncoder(w)
}
