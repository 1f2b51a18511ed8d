package keeper

import (
	"context"
	stdmath "math"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	"github.com/celestiaorg/hyperlane-mailbox/x/mailbox/types"
	pdtypes "github.com/celestiaorg/hyperlane-mailbox/x/postdispatch/types"
)

// DispatchMessage sends body to recipient on destination. sender must be the
// caller authenticated on ctx. The message is posted to hookId, or the
// mailbox default hook when hookId is nil, and then to the required hook.
// payment is threaded through both and what is left is returned.
//
// Nothing is written unless every step succeeds.
func (k *Keeper) DispatchMessage(
	ctx context.Context,
	mailboxId util.HexAddress,
	sender util.HexAddress,
	destination uint32,
	recipient util.HexAddress,
	body []byte,
	hookId *util.HexAddress,
	hookMetadata *pdtypes.StandardHookMetadata,
	payment sdk.Coins,
) (util.HexAddress, sdk.Coins, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	msg, leftover, err := k.dispatch(cacheCtx, mailboxId, sender, destination, recipient, body, hookId, hookMetadata, payment)
	if err != nil {
		k.rejected(mailboxId, err)
		k.Logger(ctx).Debug("dispatch rejected", "mailbox", mailboxId.String(), "err", err)
		return util.HexAddress{}, nil, err
	}
	write()

	id := msg.Id()
	if k.metrics != nil {
		k.metrics.MessageDispatched(mailboxId, destination)
	}
	k.Logger(ctx).Info("dispatched message", "mailbox", mailboxId.String(), "id", id.String(), "nonce", msg.Nonce, "destination", destination)
	return id, leftover, nil
}

func (k *Keeper) dispatch(
	ctx sdk.Context,
	mailboxId, sender util.HexAddress,
	destination uint32,
	recipient util.HexAddress,
	body []byte,
	hookId *util.HexAddress,
	hookMetadata *pdtypes.StandardHookMetadata,
	payment sdk.Coins,
) (message.Message, sdk.Coins, error) {
	caller, ok := types.AuthenticatedSender(ctx)
	if !ok || caller != sender {
		return message.Message{}, nil, errorsmod.Wrapf(types.ErrSenderMismatch, "claimed %s", sender)
	}

	mailbox, err := k.GetMailbox(ctx, mailboxId)
	if err != nil {
		return message.Message{}, nil, err
	}

	if mailbox.MessageSent == stdmath.MaxUint32 {
		return message.Message{}, nil, errorsmod.Wrapf(types.ErrNonceOverflow, "mailbox %s", mailboxId)
	}
	msg := message.NewMessage(mailbox.MessageSent, mailbox.LocalDomain, sender, destination, recipient, body)

	mailbox.MessageSent++
	mailbox.LatestDispatchedId = msg.Id()
	if err := k.setMailbox(ctx, mailbox); err != nil {
		return message.Message{}, nil, err
	}

	hooks, err := resolveHooks(mailbox, hookId)
	if err != nil {
		return message.Message{}, nil, err
	}

	leftover := payment
	for _, id := range hooks {
		handler, err := k.hookRouter.GetModule(id)
		if err != nil {
			return message.Message{}, nil, err
		}
		leftover, err = (*handler).PostDispatch(ctx, mailboxId, id, hookMetadata, msg, leftover)
		if err != nil {
			return message.Message{}, nil, errorsmod.Wrapf(err, "hook %s", id)
		}
	}

	ctx.EventManager().EmitEvent(types.NewDispatchEvent(mailboxId, msg))
	ctx.EventManager().EmitEvent(types.NewDispatchIdEvent(msg.Id()))

	return msg, leftover, nil
}

// QuoteDispatch returns what dispatching the described message would charge:
// the quote of the selected hook plus the quote of the required hook, summed
// per denom.
func (k *Keeper) QuoteDispatch(
	ctx context.Context,
	mailboxId util.HexAddress,
	sender util.HexAddress,
	destination uint32,
	recipient util.HexAddress,
	body []byte,
	hookId *util.HexAddress,
	hookMetadata *pdtypes.StandardHookMetadata,
) (sdk.Coins, error) {
	mailbox, err := k.GetMailbox(ctx, mailboxId)
	if err != nil {
		return nil, err
	}

	hooks, err := resolveHooks(mailbox, hookId)
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(mailbox.MessageSent, mailbox.LocalDomain, sender, destination, recipient, body)

	quotes := make([]sdk.Coins, 0, len(hooks))
	for _, id := range hooks {
		handler, err := k.hookRouter.GetModule(id)
		if err != nil {
			return nil, err
		}
		quote, err := (*handler).QuoteDispatch(ctx, mailboxId, id, hookMetadata, msg)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "hook %s", id)
		}
		quotes = append(quotes, quote)
	}

	return sumQuotes(quotes...)
}

// resolveHooks returns the override or default hook followed by the required
// hook, if any.
func resolveHooks(mailbox types.Mailbox, override *util.HexAddress) ([]util.HexAddress, error) {
	hook := override
	if hook == nil {
		hook = mailbox.DefaultHook
	}
	if hook == nil {
		return nil, errorsmod.Wrapf(types.ErrNoHookConfigured, "mailbox %s", mailbox.Id)
	}

	hooks := []util.HexAddress{*hook}
	if mailbox.RequiredHook != nil {
		hooks = append(hooks, *mailbox.RequiredHook)
	}
	return hooks, nil
}

// sumQuotes adds quotes per denom. math.Int panics past 256 bits, so the sums
// are taken on big.Int and checked first.
func sumQuotes(quotes ...sdk.Coins) (sdk.Coins, error) {
	sums := make(map[string]*big.Int)
	for _, quote := range quotes {
		for _, coin := range quote {
			sum, ok := sums[coin.Denom]
			if !ok {
				sum = new(big.Int)
				sums[coin.Denom] = sum
			}
			sum.Add(sum, coin.Amount.BigInt())
			if sum.BitLen() > math.MaxBitLen {
				return nil, errorsmod.Wrapf(types.ErrQuoteOverflow, "denom %s", coin.Denom)
			}
		}
	}

	total := make([]sdk.Coin, 0, len(sums))
	for denom, sum := range sums {
		total = append(total, sdk.NewCoin(denom, math.NewIntFromBigInt(sum)))
	}
	return sdk.NewCoins(total...), nil
}
