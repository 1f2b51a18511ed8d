package keeper

import (
	"context"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	"github.com/celestiaorg/hyperlane-mailbox/x/ism/types"
)

// MaxNestingDepth bounds how deep routing and aggregation ISMs may nest
// during a single verification.
const MaxNestingDepth = 8

var _ util.InterchainSecurityModule = (*Keeper)(nil)

// Keeper stores the ISMs owned by this module and verifies messages against
// them. Routing and aggregation ISMs resolve their children through the
// shared ISM router, so they may wrap ISMs owned by other modules.
type Keeper struct {
	isms   collections.Map[uint64, types.HyperlaneInterchainSecurityModule]
	routes collections.Map[collections.Pair[uint64, uint32], util.HexAddress]
	schema collections.Schema

	router *types.IsmRouter
}

// NewKeeper creates the keeper and registers it on router.
func NewKeeper(storeService corestore.KVStoreService, router *types.IsmRouter) *Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	isms := collections.NewMap(sb, types.IsmsKeyPrefix, "isms", collections.Uint64Key, types.IsmValueCodec)
	routes := collections.NewMap(sb, types.RoutingIsmRoutesPrefix, "routes", collections.PairKeyCodec(collections.Uint64Key, collections.Uint32Key), util.HexAddressValue)

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}

	keeper := &Keeper{
		isms:   isms,
		routes: routes,
		schema: schema,
		router: router,
	}

	router.RegisterModule(types.RouterModuleId, keeper)

	return keeper
}

// Logger returns the module logger extracted using the sdk context.
func (k *Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// Exists implements util.InterchainSecurityModule. Ids handed out by other
// routers never match a stored ism, even when the internal ids collide.
func (k *Keeper) Exists(ctx context.Context, ismId util.HexAddress) (bool, error) {
	if ismId.GetType() != uint32(types.RouterModuleId) {
		return false, nil
	}
	ism, err := k.isms.Get(ctx, ismId.GetInternalId())
	if errorsmod.IsOf(err, collections.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	id, err := ism.GetId()
	if err != nil {
		return false, err
	}
	return id == ismId, nil
}

// GetIsm returns the stored ism for ismId.
func (k *Keeper) GetIsm(ctx context.Context, ismId util.HexAddress) (types.HyperlaneInterchainSecurityModule, error) {
	exists, err := k.Exists(ctx, ismId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errorsmod.Wrapf(types.ErrIsmNotFound, "ism %s", ismId)
	}
	return k.isms.Get(ctx, ismId.GetInternalId())
}

// ModuleType returns the verification scheme of ismId.
func (k *Keeper) ModuleType(ctx context.Context, ismId util.HexAddress) (types.ModuleType, error) {
	ism, err := k.GetIsm(ctx, ismId)
	if err != nil {
		return types.ModuleTypeUnused, err
	}
	return ism.ModuleType(), nil
}

// Verify implements util.InterchainSecurityModule.
func (k *Keeper) Verify(ctx context.Context, ismId util.HexAddress, metadata []byte, msg util.HyperlaneMessage) (bool, error) {
	return k.verify(ctx, ismId, metadata, message.FromHyperlane(msg))
}

func (k *Keeper) verify(ctx context.Context, ismId util.HexAddress, metadata []byte, msg message.Message) (bool, error) {
	ctx, err := enter(ctx)
	if err != nil {
		return false, err
	}

	ism, err := k.GetIsm(ctx, ismId)
	if err != nil {
		return false, err
	}

	k.Logger(ctx).Debug("verifying message", "id", msg.Id().String(), "ism", ismId.String(), "type", ism.ModuleType().String())

	switch ism := ism.(type) {
	case *types.RoutingISM:
		route, err := k.Route(ctx, ismId, msg.Origin)
		if err != nil {
			return false, err
		}
		return k.verifyWith(ctx, route, metadata, msg)
	case *types.AggregationISM:
		return k.verifyAggregation(ctx, ism, metadata, msg)
	default:
		return ism.Verify(ctx, metadata, msg)
	}
}

func (k *Keeper) verifyWith(ctx context.Context, ismId util.HexAddress, metadata []byte, msg message.Message) (bool, error) {
	module, err := k.router.GetModule(ismId)
	if err != nil {
		return false, errorsmod.Wrapf(types.ErrIsmNotFound, "ism %s: %s", ismId, err)
	}
	return (*module).Verify(ctx, ismId, metadata, msg.Hyperlane())
}

// verifyAggregation verifies every sub module that was given metadata and
// requires at least Threshold of them to pass. A sub module that is given
// metadata and fails aborts verification.
func (k *Keeper) verifyAggregation(ctx context.Context, ism *types.AggregationISM, metadata []byte, msg message.Message) (bool, error) {
	parts, err := types.ParseAggregationMetadata(metadata, len(ism.Modules))
	if err != nil {
		return false, err
	}

	verified := uint32(0)
	for i, module := range ism.Modules {
		if parts[i] == nil {
			continue
		}
		ok, err := k.verifyWith(ctx, module, parts[i], msg)
		if err != nil {
			return false, errorsmod.Wrapf(err, "aggregated ism %s", module)
		}
		if !ok {
			return false, nil
		}
		verified++
	}

	if verified < ism.Threshold {
		return false, errorsmod.Wrapf(types.ErrThresholdNotReached, "%d of %d modules verified", verified, ism.Threshold)
	}
	return true, nil
}

// ValidatorsAndThreshold returns the validator set that would verify msg.
// Routing ISMs are followed to the route for the message origin.
func (k *Keeper) ValidatorsAndThreshold(ctx context.Context, ismId util.HexAddress, msg message.Message) (types.ValidatorSet, error) {
	for depth := 0; depth < MaxNestingDepth; depth++ {
		ism, err := k.GetIsm(ctx, ismId)
		if err != nil {
			return types.ValidatorSet{}, err
		}

		switch ism := ism.(type) {
		case types.MultisigISM:
			return ism.ValidatorsAndThreshold(msg), nil
		case *types.RoutingISM:
			ismId, err = k.Route(ctx, ismId, msg.Origin)
			if err != nil {
				return types.ValidatorSet{}, err
			}
		default:
			return types.ValidatorSet{}, errorsmod.Wrapf(types.ErrUnexpectedIsmType, "%s ism %s has no validator set", ism.ModuleType(), ismId)
		}
	}
	return types.ValidatorSet{}, types.ErrRecursionLimit
}

type depthKey struct{}

// enter tracks the nesting depth of composite ISMs on the context.
func enter(ctx context.Context) (context.Context, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	depth, _ := sdkCtx.Value(depthKey{}).(int)
	if depth >= MaxNestingDepth {
		return ctx, errorsmod.Wrapf(types.ErrRecursionLimit, "depth %d", depth)
	}
	return sdkCtx.WithValue(depthKey{}, depth+1), nil
}
