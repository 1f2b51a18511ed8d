package types

import (
	"context"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
)

// MailboxKeeper is the part of the mailbox merkle tree hooks depend on.
type MailboxKeeper interface {
	LocalDomain(ctx context.Context, mailboxId util.HexAddress) (uint32, error)
	IsLatestDispatched(ctx context.Context, mailboxId, messageId util.HexAddress) (bool, error)
}
