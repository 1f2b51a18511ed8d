package types

import (
	"fmt"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	EventTypeCreateHook       = "create_hook"
	EventTypeInsertedIntoTree = "inserted_into_tree"
	EventTypeProtocolFeePaid  = "protocol_fee_paid"
	EventTypeClaimFees        = "claim_protocol_fees"
	EventTypeSetProtocolFee   = "set_protocol_fee"

	AttributeKeyHookId    = "hook_id"
	AttributeKeyHookType  = "hook_type"
	AttributeKeyOwner     = "owner"
	AttributeKeyMailboxId = "mailbox_id"
	AttributeKeyMessageId = "message_id"
	AttributeKeyIndex     = "index"
	AttributeKeyAmount    = "amount"
	AttributeKeyRecipient = "recipient"
)

func NewCreateHookEvent(hook Hook) sdk.Event {
	return sdk.NewEvent(
		EventTypeCreateHook,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyHookId, hook.Id.String()),
		sdk.NewAttribute(AttributeKeyHookType, hook.Type.String()),
		sdk.NewAttribute(AttributeKeyOwner, hook.Owner),
		sdk.NewAttribute(AttributeKeyMailboxId, hook.MailboxId.String()),
	)
}

// NewInsertedIntoTreeEvent is what relayers and validators follow to rebuild
// the tree off chain.
func NewInsertedIntoTreeEvent(hookId, messageId util.HexAddress, index uint32) sdk.Event {
	return sdk.NewEvent(
		EventTypeInsertedIntoTree,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyHookId, hookId.String()),
		sdk.NewAttribute(AttributeKeyMessageId, messageId.String()),
		sdk.NewAttribute(AttributeKeyIndex, fmt.Sprint(index)),
	)
}

func NewProtocolFeePaidEvent(hookId, messageId util.HexAddress, amount sdk.Coins) sdk.Event {
	return sdk.NewEvent(
		EventTypeProtocolFeePaid,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyHookId, hookId.String()),
		sdk.NewAttribute(AttributeKeyMessageId, messageId.String()),
		sdk.NewAttribute(AttributeKeyAmount, amount.String()),
	)
}

func NewSetProtocolFeeEvent(hookId util.HexAddress, fee sdk.Coins) sdk.Event {
	return sdk.NewEvent(
		EventTypeSetProtocolFee,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyHookId, hookId.String()),
		sdk.NewAttribute(AttributeKeyAmount, fee.String()),
	)
}

func NewClaimFeesEvent(hookId util.HexAddress, recipient string, amount sdk.Coins) sdk.Event {
	return sdk.NewEvent(
		EventTypeClaimFees,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyHookId, hookId.String()),
		sdk.NewAttribute(AttributeKeyRecipient, recipient),
		sdk.NewAttribute(AttributeKeyAmount, amount.String()),
	)
}
