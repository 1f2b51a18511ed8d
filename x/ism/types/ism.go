package types

import (
	"context"
	"errors"

	errorsmod "cosmossdk.io/errors"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
)

// ModuleType identifies the verification scheme of an ISM. The numbering is
// shared with other Hyperlane implementations.
type ModuleType uint8

const (
	ModuleTypeUnused ModuleType = iota
	ModuleTypeRouting
	ModuleTypeAggregation
	ModuleTypeLegacyMultisig
	ModuleTypeMerkleRootMultisig
	ModuleTypeMessageIdMultisig
	ModuleTypeNull
	ModuleTypeCcipRead
)

var moduleTypeNames = map[ModuleType]string{
	ModuleTypeUnused:             "unused",
	ModuleTypeRouting:            "routing",
	ModuleTypeAggregation:        "aggregation",
	ModuleTypeLegacyMultisig:     "legacy_multisig",
	ModuleTypeMerkleRootMultisig: "merkle_root_multisig",
	ModuleTypeMessageIdMultisig:  "message_id_multisig",
	ModuleTypeNull:               "null",
	ModuleTypeCcipRead:           "ccip_read",
}

func (t ModuleType) String() string {
	if name, ok := moduleTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// HyperlaneInterchainSecurityModule is a stored ISM instance.
type HyperlaneInterchainSecurityModule interface {
	GetId() (util.HexAddress, error)
	GetOwner() string
	ModuleType() ModuleType
	Verify(ctx context.Context, metadata []byte, msg message.Message) (bool, error)
}

// MultisigISM is implemented by ISMs backed by a validator set.
type MultisigISM interface {
	HyperlaneInterchainSecurityModule
	ValidatorsAndThreshold(msg message.Message) ValidatorSet
}

var (
	_ MultisigISM                       = (*MessageIdMultisigISM)(nil)
	_ MultisigISM                       = (*MerkleRootMultisigISM)(nil)
	_ HyperlaneInterchainSecurityModule = (*NoopISM)(nil)
	_ HyperlaneInterchainSecurityModule = (*RoutingISM)(nil)
	_ HyperlaneInterchainSecurityModule = (*AggregationISM)(nil)
)

func getId(id util.HexAddress) (util.HexAddress, error) {
	if id.IsZeroAddress() {
		return util.HexAddress{}, errors.New("address is empty")
	}
	return id, nil
}

// MessageIdMultisigISM verifies a threshold of validator signatures over the
// checkpoint digest of the message id.
type MessageIdMultisigISM struct {
	Id    util.HexAddress `json:"id"`
	Owner string          `json:"owner"`
	ValidatorSet
}

func (ism *MessageIdMultisigISM) GetId() (util.HexAddress, error) { return getId(ism.Id) }
func (ism *MessageIdMultisigISM) GetOwner() string                    { return ism.Owner }
func (ism *MessageIdMultisigISM) ModuleType() ModuleType              { return ModuleTypeMessageIdMultisig }

func (ism *MessageIdMultisigISM) ValidatorsAndThreshold(message.Message) ValidatorSet {
	return ism.ValidatorSet
}

func (ism *MessageIdMultisigISM) Verify(_ context.Context, metadata []byte, msg message.Message) (bool, error) {
	meta, err := ParseMessageIdMultisigMetadata(metadata)
	if err != nil {
		return false, err
	}
	if err := VerifyMultisig(meta.Digest(msg), meta.Signatures, ism.Validators, ism.Threshold); err != nil {
		return false, err
	}
	return true, nil
}

// MerkleRootMultisigISM verifies a threshold of validator signatures over a
// checkpoint whose root contains the message.
type MerkleRootMultisigISM struct {
	Id    util.HexAddress `json:"id"`
	Owner string          `json:"owner"`
	ValidatorSet
}

func (ism *MerkleRootMultisigISM) GetId() (util.HexAddress, error) { return getId(ism.Id) }
func (ism *MerkleRootMultisigISM) GetOwner() string                    { return ism.Owner }
func (ism *MerkleRootMultisigISM) ModuleType() ModuleType              { return ModuleTypeMerkleRootMultisig }

func (ism *MerkleRootMultisigISM) ValidatorsAndThreshold(message.Message) ValidatorSet {
	return ism.ValidatorSet
}

func (ism *MerkleRootMultisigISM) Verify(_ context.Context, metadata []byte, msg message.Message) (bool, error) {
	meta, err := ParseMerkleRootMultisigMetadata(metadata)
	if err != nil {
		return false, err
	}
	if meta.MessageId != msg.Id() {
		return false, errorsmod.Wrapf(ErrMessageIdMismatch, "metadata has %s, message is %s", meta.MessageId, msg.Id())
	}
	if err := VerifyMultisig(meta.Digest(msg), meta.Signatures, ism.Validators, ism.Threshold); err != nil {
		return false, err
	}
	return true, nil
}

// NoopISM accepts every message. Only meant for tests and local networks.
type NoopISM struct {
	Id    util.HexAddress `json:"id"`
	Owner string          `json:"owner"`
}

func (ism *NoopISM) GetId() (util.HexAddress, error) { return getId(ism.Id) }
func (ism *NoopISM) GetOwner() string                    { return ism.Owner }
func (ism *NoopISM) ModuleType() ModuleType              { return ModuleTypeNull }

func (ism *NoopISM) Verify(context.Context, []byte, message.Message) (bool, error) {
	return true, nil
}

// RoutingISM delegates to the ISM enrolled for the message origin. Routes
// are kept by the keeper.
type RoutingISM struct {
	Id    util.HexAddress `json:"id"`
	Owner string          `json:"owner"`
}

func (ism *RoutingISM) GetId() (util.HexAddress, error) { return getId(ism.Id) }
func (ism *RoutingISM) GetOwner() string                    { return ism.Owner }
func (ism *RoutingISM) ModuleType() ModuleType              { return ModuleTypeRouting }

// Verify implements HyperlaneInterchainSecurityModule.
// NOTE: routing needs the stored routes and the ISM router, so verification
// is performed by the x/ism keeper. This method should never be called.
func (ism *RoutingISM) Verify(context.Context, []byte, message.Message) (bool, error) {
	return false, sdkerrors.ErrNotSupported
}

// AggregationISM requires Threshold of Modules to verify the message, each
// with its own slice of the aggregation metadata.
type AggregationISM struct {
	Id        util.HexAddress   `json:"id"`
	Owner     string            `json:"owner"`
	Modules   []util.HexAddress `json:"modules"`
	Threshold uint32            `json:"threshold"`
}

func (ism *AggregationISM) GetId() (util.HexAddress, error) { return getId(ism.Id) }
func (ism *AggregationISM) GetOwner() string                    { return ism.Owner }
func (ism *AggregationISM) ModuleType() ModuleType              { return ModuleTypeAggregation }

// Verify implements HyperlaneInterchainSecurityModule.
// NOTE: sub modules are resolved through the ISM router, so verification is
// performed by the x/ism keeper. This method should never be called.
func (ism *AggregationISM) Verify(context.Context, []byte, message.Message) (bool, error) {
	return false, sdkerrors.ErrNotSupported
}

// Validate checks the module list and threshold.
func (ism *AggregationISM) Validate() error {
	if ism.Threshold == 0 || int(ism.Threshold) > len(ism.Modules) {
		return errorsmod.Wrapf(ErrInvalidAggregation, "threshold %d with %d modules", ism.Threshold, len(ism.Modules))
	}
	seen := make(map[util.HexAddress]struct{}, len(ism.Modules))
	for _, module := range ism.Modules {
		if module == ism.Id {
			return errorsmod.Wrapf(ErrInvalidAggregation, "ism %s cannot aggregate itself", module)
		}
		if _, ok := seen[module]; ok {
			return errorsmod.Wrapf(ErrInvalidAggregation, "duplicate module %s", module)
		}
		seen[module] = struct{}{}
	}
	return nil
}
