package message

import (
	"cosmossdk.io/collections/codec"
	errorsmod "cosmossdk.io/errors"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
)

// HexAddressValue stores a util.HexAddress in a collections Map or Item using
// the address' own 0x prefixed encoding.
var HexAddressValue codec.ValueCodec[util.HexAddress] = hexAddressValue{}

type hexAddressValue struct{}

func (hexAddressValue) Encode(addr util.HexAddress) ([]byte, error) {
	return addr.Marshal()
}

func (hexAddressValue) Decode(bz []byte) (util.HexAddress, error) {
	var addr util.HexAddress
	if err := addr.Unmarshal(bz); err != nil {
		return util.HexAddress{}, errorsmod.Wrap(ErrInvalidHexAddress, err.Error())
	}
	return addr, nil
}

func (hexAddressValue) EncodeJSON(addr util.HexAddress) ([]byte, error) {
	return addr.MarshalJSON()
}

func (hexAddressValue) DecodeJSON(bz []byte) (util.HexAddress, error) {
	var addr util.HexAddress
	err := addr.UnmarshalJSON(bz)
	return addr, err
}

func (hexAddressValue) Stringify(addr util.HexAddress) string {
	return addr.String()
}

func (hexAddressValue) ValueType() string {
	return "hyperlane/hex_address"
}
