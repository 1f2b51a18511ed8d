package types

import (
	"context"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"

	pdtypes "github.com/celestiaorg/hyperlane-mailbox/x/postdispatch/types"
)

// Inbox is a minimal application that sends raw bodies through its mailbox
// and records what it receives.
type Inbox struct {
	Id        util.HexAddress  `json:"id"`
	Owner     string           `json:"owner"`
	MailboxId util.HexAddress  `json:"mailbox_id"`
	IsmId     *util.HexAddress `json:"ism_id,omitempty"`
	Received  uint64           `json:"received"`
}

// ReceivedMessage is a message delivered to an inbox.
type ReceivedMessage struct {
	Id     util.HexAddress   `json:"id"`
	Origin uint32            `json:"origin"`
	Sender util.HexAddress   `json:"sender"`
	Body   []byte            `json:"body"`
	Hints  []util.HexAddress `json:"hints,omitempty"`
}

// MailboxKeeper is the part of the mailbox keeper an inbox dispatches with.
type MailboxKeeper interface {
	LocalDomain(ctx context.Context, mailboxId util.HexAddress) (uint32, error)
	DispatchMessage(
		ctx context.Context,
		mailboxId util.HexAddress,
		sender util.HexAddress,
		destination uint32,
		recipient util.HexAddress,
		body []byte,
		hookId *util.HexAddress,
		hookMetadata *pdtypes.StandardHookMetadata,
		payment sdk.Coins,
	) (util.HexAddress, sdk.Coins, error)
}
