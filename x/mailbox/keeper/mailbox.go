package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/celestiaorg/hyperlane-mailbox/x/mailbox/types"
)

// CreateMailbox creates a mailbox for localDomain. Every reference in config
// must point at an existing ism or hook.
func (k *Keeper) CreateMailbox(ctx context.Context, owner string, localDomain uint32, config types.MailboxConfig) (util.HexAddress, error) {
	if err := k.validateConfig(ctx, config); err != nil {
		return util.HexAddress{}, err
	}

	next, err := k.sequence.Next(ctx)
	if err != nil {
		return util.HexAddress{}, err
	}

	mailbox := types.Mailbox{
		Id:           util.GenerateHexAddress(mailboxSpecifier(), mailboxModuleId, next),
		Owner:        owner,
		LocalDomain:  localDomain,
		DefaultIsm:   config.DefaultIsm,
		DefaultHook:  config.DefaultHook,
		RequiredHook: config.RequiredHook,
	}
	if err := k.setMailbox(ctx, mailbox); err != nil {
		return util.HexAddress{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewCreateMailboxEvent(mailbox))
	k.Logger(ctx).Info("created mailbox", "id", mailbox.Id.String(), "domain", localDomain, "owner", owner)
	return mailbox.Id, nil
}

// SetMailbox updates the references set in config and, when newOwner is not
// empty, transfers ownership. The local domain cannot change.
func (k *Keeper) SetMailbox(ctx context.Context, owner string, mailboxId util.HexAddress, config types.MailboxConfig, newOwner string) error {
	mailbox, err := k.GetMailbox(ctx, mailboxId)
	if err != nil {
		return err
	}
	if mailbox.Owner != owner {
		return errorsmod.Wrapf(types.ErrInvalidOwner, "%s does not own mailbox %s", owner, mailboxId)
	}
	if err := k.validateConfig(ctx, config); err != nil {
		return err
	}

	if config.DefaultIsm != nil {
		mailbox.DefaultIsm = config.DefaultIsm
	}
	if config.DefaultHook != nil {
		mailbox.DefaultHook = config.DefaultHook
	}
	if config.RequiredHook != nil {
		mailbox.RequiredHook = config.RequiredHook
	}
	if newOwner != "" {
		mailbox.Owner = newOwner
	}

	if err := k.setMailbox(ctx, mailbox); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewSetMailboxEvent(mailbox))
	return nil
}

func (k *Keeper) validateConfig(ctx context.Context, config types.MailboxConfig) error {
	if config.DefaultIsm != nil {
		module, err := k.ismRouter.GetModule(*config.DefaultIsm)
		if err != nil {
			return err
		}
		if err := requireExists((*module).Exists(ctx, *config.DefaultIsm)); err != nil {
			return errorsmod.Wrapf(err, "default ism %s", config.DefaultIsm)
		}
	}

	for _, hookId := range []*util.HexAddress{config.DefaultHook, config.RequiredHook} {
		if hookId == nil {
			continue
		}
		handler, err := k.hookRouter.GetModule(*hookId)
		if err != nil {
			return err
		}
		if err := requireExists((*handler).Exists(ctx, *hookId)); err != nil {
			return errorsmod.Wrapf(err, "hook %s", hookId)
		}
	}
	return nil
}

func requireExists(exists bool, err error) error {
	if err != nil {
		return err
	}
	if !exists {
		return errorsmod.Wrap(sdkerrors.ErrNotFound, "does not exist")
	}
	return nil
}
