package types

import (
	"encoding/hex"
	"fmt"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
)

const (
	EventTypeCreateMailbox = "create_mailbox"
	EventTypeSetMailbox    = "set_mailbox"
	EventTypeDispatch      = "dispatch"
	EventTypeDispatchId    = "dispatch_id"
	EventTypeProcess       = "process"
	EventTypeProcessId     = "process_id"

	AttributeKeyMailboxId    = "mailbox_id"
	AttributeKeyOwner        = "owner"
	AttributeKeyLocalDomain  = "local_domain"
	AttributeKeyDefaultIsm   = "default_ism"
	AttributeKeyDefaultHook  = "default_hook"
	AttributeKeyRequiredHook = "required_hook"
	AttributeKeyOrigin       = "origin"
	AttributeKeyDestination  = "destination"
	AttributeKeySender       = "sender"
	AttributeKeyRecipient    = "recipient"
	AttributeKeyNonce        = "nonce"
	AttributeKeyMessage      = "message"
	AttributeKeyMessageId    = "message_id"
)

func optional(addr *util.HexAddress) string {
	if addr == nil {
		return ""
	}
	return addr.String()
}

func NewCreateMailboxEvent(mailbox Mailbox) sdk.Event {
	return sdk.NewEvent(
		EventTypeCreateMailbox,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyMailboxId, mailbox.Id.String()),
		sdk.NewAttribute(AttributeKeyOwner, mailbox.Owner),
		sdk.NewAttribute(AttributeKeyLocalDomain, fmt.Sprint(mailbox.LocalDomain)),
		sdk.NewAttribute(AttributeKeyDefaultIsm, optional(mailbox.DefaultIsm)),
		sdk.NewAttribute(AttributeKeyDefaultHook, optional(mailbox.DefaultHook)),
		sdk.NewAttribute(AttributeKeyRequiredHook, optional(mailbox.RequiredHook)),
	)
}

func NewSetMailboxEvent(mailbox Mailbox) sdk.Event {
	return sdk.NewEvent(
		EventTypeSetMailbox,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyMailboxId, mailbox.Id.String()),
		sdk.NewAttribute(AttributeKeyDefaultIsm, optional(mailbox.DefaultIsm)),
		sdk.NewAttribute(AttributeKeyDefaultHook, optional(mailbox.DefaultHook)),
		sdk.NewAttribute(AttributeKeyRequiredHook, optional(mailbox.RequiredHook)),
	)
}

// NewDispatchEvent carries the full encoded message so relayers can deliver
// it without any other lookup.
func NewDispatchEvent(mailboxId util.HexAddress, msg message.Message) sdk.Event {
	return sdk.NewEvent(
		EventTypeDispatch,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyMailboxId, mailboxId.String()),
		sdk.NewAttribute(AttributeKeySender, msg.Sender.String()),
		sdk.NewAttribute(AttributeKeyDestination, fmt.Sprint(msg.Destination)),
		sdk.NewAttribute(AttributeKeyRecipient, msg.Recipient.String()),
		sdk.NewAttribute(AttributeKeyNonce, fmt.Sprint(msg.Nonce)),
		sdk.NewAttribute(AttributeKeyMessage, "0x"+hex.EncodeToString(msg.Bytes())),
	)
}

func NewDispatchIdEvent(messageId util.HexAddress) sdk.Event {
	return sdk.NewEvent(
		EventTypeDispatchId,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyMessageId, messageId.String()),
	)
}

func NewProcessEvent(mailboxId util.HexAddress, msg message.Message) sdk.Event {
	return sdk.NewEvent(
		EventTypeProcess,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyMailboxId, mailboxId.String()),
		sdk.NewAttribute(AttributeKeyOrigin, fmt.Sprint(msg.Origin)),
		sdk.NewAttribute(AttributeKeySender, msg.Sender.String()),
		sdk.NewAttribute(AttributeKeyRecipient, msg.Recipient.String()),
	)
}

func NewProcessIdEvent(messageId util.HexAddress) sdk.Event {
	return sdk.NewEvent(
		EventTypeProcessId,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyMessageId, messageId.String()),
	)
}
