package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	"github.com/celestiaorg/hyperlane-mailbox/x/mailbox/types"
)

// ProcessMessage delivers rawMessage to its recipient once the recipient's
// ism accepts metadata for it. hints are handed to the recipient untouched.
//
// The message is only marked delivered after verification passes, and a
// failure anywhere, including in the recipient, leaves no trace.
func (k *Keeper) ProcessMessage(ctx context.Context, mailboxId util.HexAddress, metadata, rawMessage []byte, hints []util.HexAddress) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	msg, err := k.process(cacheCtx, mailboxId, metadata, rawMessage, hints)
	if err != nil {
		k.rejected(mailboxId, err)
		k.Logger(ctx).Info("process rejected", "mailbox", mailboxId.String(), "err", err)
		return err
	}
	write()

	if k.metrics != nil {
		k.metrics.MessageProcessed(mailboxId, msg.Origin)
	}
	k.Logger(ctx).Info("processed message", "mailbox", mailboxId.String(), "id", msg.Id().String(), "origin", msg.Origin)
	return nil
}

func (k *Keeper) process(ctx sdk.Context, mailboxId util.HexAddress, metadata, rawMessage []byte, hints []util.HexAddress) (message.Message, error) {
	msg, err := message.ParseMessage(rawMessage)
	if err != nil {
		return message.Message{}, err
	}

	mailbox, err := k.GetMailbox(ctx, mailboxId)
	if err != nil {
		return message.Message{}, err
	}

	if msg.Destination != mailbox.LocalDomain {
		return message.Message{}, errorsmod.Wrapf(types.ErrDomainMismatch, "destination %d, local domain %d", msg.Destination, mailbox.LocalDomain)
	}
	if msg.Version != message.Version {
		return message.Message{}, errorsmod.Wrapf(types.ErrUnsupportedVersion, "got %d, want %d", msg.Version, message.Version)
	}

	id := msg.Id()
	key := collections.Join(mailboxId.GetInternalId(), id.Bytes())
	delivered, err := k.delivered.Has(ctx, key)
	if err != nil {
		return message.Message{}, err
	}
	if delivered {
		return message.Message{}, errorsmod.Wrapf(types.ErrAlreadyDelivered, "%s", id)
	}

	handler, err := k.recipient(ctx, msg.Recipient)
	if err != nil {
		return message.Message{}, err
	}
	ismId, err := k.recipientIsm(ctx, mailbox, handler, msg.Recipient)
	if err != nil {
		return message.Message{}, err
	}

	if err := k.verify(ctx, ismId, metadata, msg); err != nil {
		return message.Message{}, err
	}

	if err := k.delivered.Set(ctx, key); err != nil {
		return message.Message{}, err
	}
	mailbox.MessageReceived++
	if err := k.setMailbox(ctx, mailbox); err != nil {
		return message.Message{}, err
	}

	ctx.EventManager().EmitEvent(types.NewProcessEvent(mailboxId, msg))
	ctx.EventManager().EmitEvent(types.NewProcessIdEvent(id))

	if err := handler.Handle(ctx, mailboxId, msg, hints); err != nil {
		return message.Message{}, errorsmod.Wrapf(err, "recipient %s", msg.Recipient)
	}
	return msg, nil
}

func (k *Keeper) verify(ctx context.Context, ismId util.HexAddress, metadata []byte, msg message.Message) error {
	module, err := k.ismRouter.GetModule(ismId)
	if err != nil {
		return errorsmod.Wrapf(types.ErrVerificationFailed, "ism %s: %s", ismId, err)
	}
	ok, err := (*module).Verify(ctx, ismId, metadata, msg.Hyperlane())
	if err != nil {
		return errorsmod.Wrapf(types.ErrVerificationFailed, "ism %s: %s", ismId, err)
	}
	if !ok {
		return errorsmod.Wrapf(types.ErrVerificationFailed, "ism %s rejected message %s", ismId, msg.Id())
	}
	return nil
}
