package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/celestiaorg/hyperlane-mailbox/x/ism/types"
)

// CreateMessageIdMultisigIsm stores a message-id multisig ism.
func (k *Keeper) CreateMessageIdMultisigIsm(ctx context.Context, owner string, validators []common.Address, threshold uint32) (util.HexAddress, error) {
	set, err := types.NewValidatorSet(validators, threshold)
	if err != nil {
		return util.HexAddress{}, err
	}
	return k.create(ctx, func(id util.HexAddress) types.HyperlaneInterchainSecurityModule {
		return &types.MessageIdMultisigISM{Id: id, Owner: owner, ValidatorSet: set}
	})
}

// CreateMerkleRootMultisigIsm stores a merkle-root multisig ism.
func (k *Keeper) CreateMerkleRootMultisigIsm(ctx context.Context, owner string, validators []common.Address, threshold uint32) (util.HexAddress, error) {
	set, err := types.NewValidatorSet(validators, threshold)
	if err != nil {
		return util.HexAddress{}, err
	}
	return k.create(ctx, func(id util.HexAddress) types.HyperlaneInterchainSecurityModule {
		return &types.MerkleRootMultisigISM{Id: id, Owner: owner, ValidatorSet: set}
	})
}

func (k *Keeper) CreateNoopIsm(ctx context.Context, owner string) (util.HexAddress, error) {
	return k.create(ctx, func(id util.HexAddress) types.HyperlaneInterchainSecurityModule {
		return &types.NoopISM{Id: id, Owner: owner}
	})
}

// CreateRoutingIsm stores a routing ism without routes. Routes are enrolled
// by the owner with SetRoutingIsmDomain.
func (k *Keeper) CreateRoutingIsm(ctx context.Context, owner string) (util.HexAddress, error) {
	return k.create(ctx, func(id util.HexAddress) types.HyperlaneInterchainSecurityModule {
		return &types.RoutingISM{Id: id, Owner: owner}
	})
}

// CreateAggregationIsm stores an aggregation ism over modules, all of which
// must already exist.
func (k *Keeper) CreateAggregationIsm(ctx context.Context, owner string, modules []util.HexAddress, threshold uint32) (util.HexAddress, error) {
	for _, module := range modules {
		if err := k.requireIsm(ctx, module); err != nil {
			return util.HexAddress{}, err
		}
	}

	return k.create(ctx, func(id util.HexAddress) types.HyperlaneInterchainSecurityModule {
		return &types.AggregationISM{
			Id:        id,
			Owner:     owner,
			Modules:   append([]util.HexAddress(nil), modules...),
			Threshold: threshold,
		}
	})
}

// create allocates an id, builds and validates the ism and stores it. It runs
// in a cache context so a rejected ism does not consume an id.
func (k *Keeper) create(ctx context.Context, build func(util.HexAddress) types.HyperlaneInterchainSecurityModule) (util.HexAddress, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	id, err := k.router.GetNextSequence(cacheCtx, types.RouterModuleId)
	if err != nil {
		return util.HexAddress{}, err
	}

	ism := build(id)
	if v, ok := ism.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return util.HexAddress{}, err
		}
	}

	if err := k.isms.Set(cacheCtx, id.GetInternalId(), ism); err != nil {
		return util.HexAddress{}, err
	}
	cacheCtx.EventManager().EmitEvent(types.NewCreateIsmEvent(ism))

	write()

	k.Logger(ctx).Info("created ism", "id", id.String(), "type", ism.ModuleType().String(), "owner", ism.GetOwner())
	return id, nil
}

// SetRoutingIsmDomain routes messages from domain to route. Only the owner
// of the routing ism may change its routes.
func (k *Keeper) SetRoutingIsmDomain(ctx context.Context, owner string, ismId util.HexAddress, domain uint32, route util.HexAddress) error {
	if _, err := k.routingIsm(ctx, owner, ismId); err != nil {
		return err
	}
	if route == ismId {
		return errorsmod.Wrapf(types.ErrUnexpectedIsmType, "routing ism %s cannot route to itself", ismId)
	}
	if err := k.requireIsm(ctx, route); err != nil {
		return err
	}

	if err := k.routes.Set(ctx, collections.Join(ismId.GetInternalId(), domain), route); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewSetRoutingDomainEvent(ismId, domain, route))
	return nil
}

// RemoveRoutingIsmDomain drops the route for domain.
func (k *Keeper) RemoveRoutingIsmDomain(ctx context.Context, owner string, ismId util.HexAddress, domain uint32) error {
	if _, err := k.routingIsm(ctx, owner, ismId); err != nil {
		return err
	}

	key := collections.Join(ismId.GetInternalId(), domain)
	has, err := k.routes.Has(ctx, key)
	if err != nil {
		return err
	}
	if !has {
		return errorsmod.Wrapf(types.ErrNoRoute, "routing ism %s has no route for domain %d", ismId, domain)
	}
	if err := k.routes.Remove(ctx, key); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewRemoveRoutingDomainEvent(ismId, domain))
	return nil
}

// Route returns the ism a routing ism uses for messages from origin.
func (k *Keeper) Route(ctx context.Context, ismId util.HexAddress, origin uint32) (util.HexAddress, error) {
	route, err := k.routes.Get(ctx, collections.Join(ismId.GetInternalId(), origin))
	if errorsmod.IsOf(err, collections.ErrNotFound) {
		return util.HexAddress{}, errorsmod.Wrapf(types.ErrNoRoute, "no ism for route %d", origin)
	}
	return route, err
}

// Routes lists every enrolled route of a routing ism keyed by domain.
func (k *Keeper) Routes(ctx context.Context, ismId util.HexAddress) (map[uint32]util.HexAddress, error) {
	rng := collections.NewPrefixedPairRange[uint64, uint32](ismId.GetInternalId())
	iter, err := k.routes.Iterate(ctx, rng)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	routes := make(map[uint32]util.HexAddress)
	for ; iter.Valid(); iter.Next() {
		kv, err := iter.KeyValue()
		if err != nil {
			return nil, err
		}
		routes[kv.Key.K2()] = kv.Value
	}
	return routes, nil
}

func (k *Keeper) routingIsm(ctx context.Context, owner string, ismId util.HexAddress) (*types.RoutingISM, error) {
	ism, err := k.GetIsm(ctx, ismId)
	if err != nil {
		return nil, err
	}
	routing, ok := ism.(*types.RoutingISM)
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrUnexpectedIsmType, "%s is a %s ism", ismId, ism.ModuleType())
	}
	if routing.Owner != owner {
		return nil, errorsmod.Wrapf(types.ErrInvalidOwner, "%s does not own routing ism %s", owner, ismId)
	}
	return routing, nil
}

// requireIsm checks that some module on the router owns ismId.
func (k *Keeper) requireIsm(ctx context.Context, ismId util.HexAddress) error {
	module, err := k.router.GetModule(ismId)
	if err != nil {
		return errorsmod.Wrapf(types.ErrIsmNotFound, "ism %s: %s", ismId, err)
	}
	exists, err := (*module).Exists(ctx, ismId)
	if err != nil {
		return err
	}
	if !exists {
		return errorsmod.Wrapf(types.ErrIsmNotFound, "ism %s", ismId)
	}
	return nil
}
