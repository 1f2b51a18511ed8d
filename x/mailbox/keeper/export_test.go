package keeper

import (
	"context"

	"github.com/celestiaorg/hyperlane-mailbox/x/mailbox/types"
)

// SetMailboxState is a test func used for overwriting a mailbox in the store collection.
func (k *Keeper) SetMailboxState(ctx context.Context, mailbox types.Mailbox) error {
	return k.setMailbox(ctx, mailbox)
}
