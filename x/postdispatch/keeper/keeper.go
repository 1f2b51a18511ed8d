package keeper

import (
	"context"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/codec"
	"github.com/celestiaorg/hyperlane-mailbox/pkg/merkle"
	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	"github.com/celestiaorg/hyperlane-mailbox/x/postdispatch/types"
)

var _ types.PostDispatchHookHandler = (*Keeper)(nil)

// Keeper owns merkle tree, noop and protocol fee hooks.
type Keeper struct {
	hooks         collections.Map[uint64, types.Hook]
	trees         collections.Map[uint64, *merkle.Tree]
	collectedFees collections.Map[collections.Pair[uint64, string], math.Int]
	schema        collections.Schema

	router        *types.PostDispatchRouter
	mailboxKeeper types.MailboxKeeper
}

// NewKeeper creates the keeper and registers it on router.
func NewKeeper(storeService corestore.KVStoreService, router *types.PostDispatchRouter, mailboxKeeper types.MailboxKeeper) *Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	hooks := collections.NewMap(sb, types.HooksKeyPrefix, "hooks", collections.Uint64Key, codec.JSONValue[types.Hook]("hyperlane/hook"))
	trees := collections.NewMap(sb, types.MerkleTreesKeyPrefix, "merkle_trees", collections.Uint64Key, types.TreeValueCodec)
	collectedFees := collections.NewMap(sb, types.CollectedFeesKeyPrefix, "collected_fees", collections.PairKeyCodec(collections.Uint64Key, collections.StringKey), sdk.IntValue)

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}

	keeper := &Keeper{
		hooks:         hooks,
		trees:         trees,
		collectedFees: collectedFees,
		schema:        schema,
		router:        router,
		mailboxKeeper: mailboxKeeper,
	}

	router.RegisterModule(types.RouterModuleId, keeper)

	return keeper
}

// Logger returns the module logger extracted using the sdk context.
func (k *Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// Exists implements types.PostDispatchHookHandler. Only the exact id the
// router handed out exists, so ids of other routers never resolve to a hook.
func (k *Keeper) Exists(ctx context.Context, hookId util.HexAddress) (bool, error) {
	if hookId.GetType() != uint32(types.RouterModuleId) {
		return false, nil
	}
	hook, err := k.hooks.Get(ctx, hookId.GetInternalId())
	if errorsmod.IsOf(err, collections.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return hook.Id == hookId, nil
}

// GetHook returns the stored hook for hookId.
func (k *Keeper) GetHook(ctx context.Context, hookId util.HexAddress) (types.Hook, error) {
	exists, err := k.Exists(ctx, hookId)
	if err != nil {
		return types.Hook{}, err
	}
	if !exists {
		return types.Hook{}, errorsmod.Wrapf(types.ErrHookNotFound, "hook %s", hookId)
	}
	return k.hooks.Get(ctx, hookId.GetInternalId())
}

// PostDispatch implements types.PostDispatchHookHandler.
func (k *Keeper) PostDispatch(ctx context.Context, mailboxId, hookId util.HexAddress, _ *types.StandardHookMetadata, msg message.Message, payment sdk.Coins) (sdk.Coins, error) {
	hook, err := k.GetHook(ctx, hookId)
	if err != nil {
		return nil, err
	}

	switch hook.Type {
	case types.HookTypeMerkleTree:
		return payment, k.insertIntoTree(ctx, hook, mailboxId, msg)
	case types.HookTypeNoop:
		return payment, nil
	case types.HookTypeProtocolFee:
		return k.chargeProtocolFee(ctx, hook, msg, payment)
	default:
		return nil, errorsmod.Wrapf(types.ErrUnexpectedHookType, "hook %s has type %s", hookId, hook.Type)
	}
}

// QuoteDispatch implements types.PostDispatchHookHandler.
func (k *Keeper) QuoteDispatch(ctx context.Context, _, hookId util.HexAddress, _ *types.StandardHookMetadata, _ message.Message) (sdk.Coins, error) {
	hook, err := k.GetHook(ctx, hookId)
	if err != nil {
		return nil, err
	}

	switch hook.Type {
	case types.HookTypeMerkleTree, types.HookTypeNoop:
		return sdk.NewCoins(), nil
	case types.HookTypeProtocolFee:
		return hook.Fee, nil
	default:
		return nil, errorsmod.Wrapf(types.ErrUnexpectedHookType, "hook %s has type %s", hookId, hook.Type)
	}
}

// create allocates an id and stores the hook built for it.
func (k *Keeper) create(ctx context.Context, hook types.Hook) (util.HexAddress, error) {
	id, err := k.router.GetNextSequence(ctx, types.RouterModuleId)
	if err != nil {
		return util.HexAddress{}, err
	}
	hook.Id = id

	if err := k.hooks.Set(ctx, id.GetInternalId(), hook); err != nil {
		return util.HexAddress{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewCreateHookEvent(hook))
	k.Logger(ctx).Info("created hook", "id", id.String(), "type", hook.Type.String(), "owner", hook.Owner)
	return id, nil
}

func (k *Keeper) CreateNoopHook(ctx context.Context, owner string) (util.HexAddress, error) {
	return k.create(ctx, types.Hook{Type: types.HookTypeNoop, Owner: owner})
}
