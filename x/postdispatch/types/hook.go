package types

import (
	"context"

	"cosmossdk.io/math"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
)

type HookType uint8

const (
	HookTypeUnused HookType = iota
	HookTypeMerkleTree
	HookTypeNoop
	HookTypeProtocolFee
)

func (t HookType) String() string {
	switch t {
	case HookTypeMerkleTree:
		return "merkle_tree"
	case HookTypeNoop:
		return "noop"
	case HookTypeProtocolFee:
		return "protocol_fee"
	default:
		return "unused"
	}
}

// Hook is a stored post dispatch hook. MailboxId is only set for merkle tree
// hooks, Fee and Beneficiary only for protocol fee hooks.
type Hook struct {
	Id          util.HexAddress `json:"id"`
	Type        HookType        `json:"type"`
	Owner       string          `json:"owner"`
	MailboxId   util.HexAddress `json:"mailbox_id"`
	Fee         sdk.Coins       `json:"fee,omitempty"`
	Beneficiary string          `json:"beneficiary,omitempty"`
}

// StandardHookMetadata is optional per dispatch input for hooks. A nil
// *StandardHookMetadata means none was supplied.
type StandardHookMetadata struct {
	GasLimit    math.Int `json:"gas_limit"`
	CustomBytes []byte   `json:"custom_bytes,omitempty"`
}

// PostDispatchHookHandler is implemented by every module that owns hooks and
// registers on the shared post dispatch router.
type PostDispatchHookHandler interface {
	Exists(ctx context.Context, hookId util.HexAddress) (bool, error)
	// PostDispatch runs the hook for a dispatched message and returns the
	// part of payment it did not consume.
	PostDispatch(ctx context.Context, mailboxId, hookId util.HexAddress, metadata *StandardHookMetadata, msg message.Message, payment sdk.Coins) (sdk.Coins, error)
	// QuoteDispatch returns what PostDispatch would consume.
	QuoteDispatch(ctx context.Context, mailboxId, hookId util.HexAddress, metadata *StandardHookMetadata, msg message.Message) (sdk.Coins, error)
}

// PostDispatchRouter resolves a hook id to its owning module.
type PostDispatchRouter = util.Router[PostDispatchHookHandler]
