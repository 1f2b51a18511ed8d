// Package codec provides collections value codecs for plain Go state types
// that have no protobuf definition.
package codec

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
)

// JSONValue encodes T with encoding/json. valueType names the stored type in
// collections schemas.
func JSONValue[T any](valueType string) collcodec.ValueCodec[T] {
	return jsonValue[T]{valueType: valueType}
}

type jsonValue[T any] struct {
	valueType string
}

func (c jsonValue[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (c jsonValue[T]) Decode(bz []byte) (T, error) {
	var value T
	if err := json.Unmarshal(bz, &value); err != nil {
		return value, fmt.Errorf("%s: %w", c.valueType, err)
	}
	return value, nil
}

func (c jsonValue[T]) EncodeJSON(value T) ([]byte, error) {
	return c.Encode(value)
}

func (c jsonValue[T]) DecodeJSON(bz []byte) (T, error) {
	return c.Decode(bz)
}

func (c jsonValue[T]) Stringify(value T) string {
	bz, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%s(%v)", c.valueType, err)
	}
	return string(bz)
}

func (c jsonValue[T]) ValueType() string {
	return c.valueType
}
