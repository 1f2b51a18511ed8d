package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/merkle"
	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	"github.com/celestiaorg/hyperlane-mailbox/x/postdispatch/types"
)

// CreateMerkleTreeHook creates a hook that accumulates the ids of messages
// dispatched by mailboxId. Only that mailbox may post to it. The hook and its
// empty tree are written together or not at all.
func (k *Keeper) CreateMerkleTreeHook(ctx context.Context, owner string, mailboxId util.HexAddress) (util.HexAddress, error) {
	if _, err := k.mailboxKeeper.LocalDomain(ctx, mailboxId); err != nil {
		return util.HexAddress{}, err
	}

	cacheCtx, write := sdk.UnwrapSDKContext(ctx).CacheContext()

	id, err := k.create(cacheCtx, types.Hook{Type: types.HookTypeMerkleTree, Owner: owner, MailboxId: mailboxId})
	if err != nil {
		return util.HexAddress{}, err
	}
	if err := k.trees.Set(cacheCtx, id.GetInternalId(), merkle.NewTree()); err != nil {
		return util.HexAddress{}, err
	}

	write()
	return id, nil
}

func (k *Keeper) insertIntoTree(ctx context.Context, hook types.Hook, mailboxId util.HexAddress, msg message.Message) error {
	if hook.MailboxId != mailboxId {
		return errorsmod.Wrapf(types.ErrInvalidMailbox, "hook %s belongs to mailbox %s, not %s", hook.Id, hook.MailboxId, mailboxId)
	}

	id := msg.Id()
	latest, err := k.mailboxKeeper.IsLatestDispatched(ctx, mailboxId, id)
	if err != nil {
		return err
	}
	if !latest {
		return errorsmod.Wrapf(types.ErrNotLatestDispatched, "message %s", id)
	}

	tree, err := k.trees.Get(ctx, hook.Id.GetInternalId())
	if err != nil {
		return err
	}

	index := tree.Count()
	if err := tree.Insert(id); err != nil {
		return err
	}
	if err := k.trees.Set(ctx, hook.Id.GetInternalId(), tree); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewInsertedIntoTreeEvent(hook.Id, id, index))
	k.Logger(ctx).Debug("inserted into tree", "hook", hook.Id.String(), "message", id.String(), "index", index)
	return nil
}

// Tree returns a copy of the merkle tree of a merkle tree hook.
func (k *Keeper) Tree(ctx context.Context, hookId util.HexAddress) (*merkle.Tree, error) {
	hook, err := k.GetHook(ctx, hookId)
	if err != nil {
		return nil, err
	}
	if hook.Type != types.HookTypeMerkleTree {
		return nil, errorsmod.Wrapf(types.ErrUnexpectedHookType, "hook %s has type %s", hookId, hook.Type)
	}
	return k.trees.Get(ctx, hookId.GetInternalId())
}

func (k *Keeper) Root(ctx context.Context, hookId util.HexAddress) ([32]byte, error) {
	tree, err := k.Tree(ctx, hookId)
	if err != nil {
		return [32]byte{}, err
	}
	return tree.Root(), nil
}

func (k *Keeper) Count(ctx context.Context, hookId util.HexAddress) (uint32, error) {
	tree, err := k.Tree(ctx, hookId)
	if err != nil {
		return 0, err
	}
	return tree.Count(), nil
}

// LatestCheckpoint returns the checkpoint validators sign for the last
// inserted message: the current root and the index of that message.
func (k *Keeper) LatestCheckpoint(ctx context.Context, hookId util.HexAddress) (message.Checkpoint, error) {
	hook, err := k.GetHook(ctx, hookId)
	if err != nil {
		return message.Checkpoint{}, err
	}
	tree, err := k.Tree(ctx, hookId)
	if err != nil {
		return message.Checkpoint{}, err
	}
	if tree.Count() == 0 {
		return message.Checkpoint{}, errorsmod.Wrapf(types.ErrEmptyTree, "hook %s", hookId)
	}

	origin, err := k.mailboxKeeper.LocalDomain(ctx, hook.MailboxId)
	if err != nil {
		return message.Checkpoint{}, err
	}

	return message.Checkpoint{
		Origin:         origin,
		MerkleTreeHook: hookId,
		Root:           tree.Root(),
		Index:          tree.Count() - 1,
	}, nil
}
