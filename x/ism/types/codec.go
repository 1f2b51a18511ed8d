package types

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/collections/codec"
	errorsmod "cosmossdk.io/errors"
)

// IsmValueCodec stores an ISM as its module type byte followed by the JSON
// encoding of the concrete type.
var IsmValueCodec codec.ValueCodec[HyperlaneInterchainSecurityModule] = ismValueCodec{}

type ismValueCodec struct{}

func (ismValueCodec) Encode(ism HyperlaneInterchainSecurityModule) ([]byte, error) {
	bz, err := json.Marshal(ism)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(ism.ModuleType())}, bz...), nil
}

func (ismValueCodec) Decode(bz []byte) (HyperlaneInterchainSecurityModule, error) {
	if len(bz) == 0 {
		return nil, errorsmod.Wrap(ErrUnexpectedIsmType, "empty value")
	}

	var ism HyperlaneInterchainSecurityModule
	switch ModuleType(bz[0]) {
	case ModuleTypeMessageIdMultisig:
		ism = &MessageIdMultisigISM{}
	case ModuleTypeMerkleRootMultisig:
		ism = &MerkleRootMultisigISM{}
	case ModuleTypeNull:
		ism = &NoopISM{}
	case ModuleTypeRouting:
		ism = &RoutingISM{}
	case ModuleTypeAggregation:
		ism = &AggregationISM{}
	default:
		return nil, errorsmod.Wrapf(ErrUnexpectedIsmType, "module type %d", bz[0])
	}

	if err := json.Unmarshal(bz[1:], ism); err != nil {
		return nil, err
	}
	return ism, nil
}

func (c ismValueCodec) EncodeJSON(ism HyperlaneInterchainSecurityModule) ([]byte, error) {
	return json.Marshal(ism)
}

func (c ismValueCodec) DecodeJSON([]byte) (HyperlaneInterchainSecurityModule, error) {
	return nil, fmt.Errorf("%s: decoding an ism from JSON requires its module type", c.ValueType())
}

func (c ismValueCodec) Stringify(ism HyperlaneInterchainSecurityModule) string {
	id, _ := ism.GetId()
	return fmt.Sprintf("%s(%s)", ism.ModuleType(), id)
}

func (ismValueCodec) ValueType() string {
	return "hyperlane/ism"
}
