package types

import (
	"fmt"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
)

const (
	EventTypeCreateInbox = "create_inbox"
	EventTypeReceive     = "receive_message"

	AttributeKeyInboxId   = "inbox_id"
	AttributeKeyOwner     = "owner"
	AttributeKeyMailboxId = "mailbox_id"
	AttributeKeyMessageId = "message_id"
	AttributeKeyOrigin    = "origin"
)

func NewCreateInboxEvent(inbox Inbox) sdk.Event {
	return sdk.NewEvent(
		EventTypeCreateInbox,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyInboxId, inbox.Id.String()),
		sdk.NewAttribute(AttributeKeyOwner, inbox.Owner),
		sdk.NewAttribute(AttributeKeyMailboxId, inbox.MailboxId.String()),
	)
}

func NewReceiveEvent(inboxId util.HexAddress, msg message.Message) sdk.Event {
	return sdk.NewEvent(
		EventTypeReceive,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyInboxId, inboxId.String()),
		sdk.NewAttribute(AttributeKeyMessageId, msg.Id().String()),
		sdk.NewAttribute(AttributeKeyOrigin, fmt.Sprint(msg.Origin)),
	)
}
