package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	"github.com/celestiaorg/hyperlane-mailbox/x/postdispatch/types"
)

// CreateProtocolFeeHook creates a hook charging a fixed fee per dispatch.
// Collected fees accrue until the beneficiary claims them.
func (k *Keeper) CreateProtocolFeeHook(ctx context.Context, owner string, fee sdk.Coins, beneficiary string) (util.HexAddress, error) {
	if err := fee.Validate(); err != nil {
		return util.HexAddress{}, errorsmod.Wrap(types.ErrInvalidFee, err.Error())
	}
	if beneficiary == "" {
		beneficiary = owner
	}
	return k.create(ctx, types.Hook{Type: types.HookTypeProtocolFee, Owner: owner, Fee: fee, Beneficiary: beneficiary})
}

// SetProtocolFee replaces the fee of a protocol fee hook.
func (k *Keeper) SetProtocolFee(ctx context.Context, owner string, hookId util.HexAddress, fee sdk.Coins) error {
	hook, err := k.protocolFeeHook(ctx, hookId)
	if err != nil {
		return err
	}
	if hook.Owner != owner {
		return errorsmod.Wrapf(types.ErrInvalidOwner, "%s does not own hook %s", owner, hookId)
	}
	if err := fee.Validate(); err != nil {
		return errorsmod.Wrap(types.ErrInvalidFee, err.Error())
	}

	hook.Fee = fee
	if err := k.hooks.Set(ctx, hookId.GetInternalId(), hook); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewSetProtocolFeeEvent(hookId, fee))
	return nil
}

func (k *Keeper) chargeProtocolFee(ctx context.Context, hook types.Hook, msg message.Message, payment sdk.Coins) (sdk.Coins, error) {
	leftover, hasNeg := payment.SafeSub(hook.Fee...)
	if hasNeg {
		return nil, errorsmod.Wrapf(types.ErrInsufficientPayment, "hook %s requires %s, got %s", hook.Id, hook.Fee, payment)
	}

	for _, coin := range hook.Fee {
		key := collections.Join(hook.Id.GetInternalId(), coin.Denom)
		collected, err := k.collectedFees.Get(ctx, key)
		if errorsmod.IsOf(err, collections.ErrNotFound) {
			collected = math.ZeroInt()
		} else if err != nil {
			return nil, err
		}
		if err := k.collectedFees.Set(ctx, key, collected.Add(coin.Amount)); err != nil {
			return nil, err
		}
	}

	if !hook.Fee.IsZero() {
		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewProtocolFeePaidEvent(hook.Id, msg.Id(), hook.Fee))
	}
	return leftover, nil
}

// CollectedFees returns the fees accrued by a protocol fee hook.
func (k *Keeper) CollectedFees(ctx context.Context, hookId util.HexAddress) (sdk.Coins, error) {
	if _, err := k.protocolFeeHook(ctx, hookId); err != nil {
		return nil, err
	}

	iter, err := k.collectedFees.Iterate(ctx, collections.NewPrefixedPairRange[uint64, string](hookId.GetInternalId()))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	coins := sdk.NewCoins()
	for ; iter.Valid(); iter.Next() {
		kv, err := iter.KeyValue()
		if err != nil {
			return nil, err
		}
		coins = coins.Add(sdk.NewCoin(kv.Key.K2(), kv.Value))
	}
	return coins, nil
}

// ClaimFees resets the collected fees of a hook and returns them. Only the
// beneficiary may claim.
func (k *Keeper) ClaimFees(ctx context.Context, claimer string, hookId util.HexAddress) (sdk.Coins, error) {
	hook, err := k.protocolFeeHook(ctx, hookId)
	if err != nil {
		return nil, err
	}
	if hook.Beneficiary != claimer {
		return nil, errorsmod.Wrapf(types.ErrInvalidOwner, "%s is not the beneficiary of hook %s", claimer, hookId)
	}

	collected, err := k.CollectedFees(ctx, hookId)
	if err != nil {
		return nil, err
	}
	for _, coin := range collected {
		if err := k.collectedFees.Remove(ctx, collections.Join(hookId.GetInternalId(), coin.Denom)); err != nil {
			return nil, err
		}
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewClaimFeesEvent(hookId, claimer, collected))
	return collected, nil
}

func (k *Keeper) protocolFeeHook(ctx context.Context, hookId util.HexAddress) (types.Hook, error) {
	hook, err := k.GetHook(ctx, hookId)
	if err != nil {
		return types.Hook{}, err
	}
	if hook.Type != types.HookTypeProtocolFee {
		return types.Hook{}, errorsmod.Wrapf(types.ErrUnexpectedHookType, "hook %s has type %s", hookId, hook.Type)
	}
	return hook, nil
}
