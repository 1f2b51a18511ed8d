package types

import (
	"fmt"
	"strings"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
)

const (
	EventTypeCreateIsm           = "create_ism"
	EventTypeSetRoutingDomain    = "set_routing_ism_domain"
	EventTypeRemoveRoutingDomain = "remove_routing_ism_domain"

	AttributeKeyIsmId      = "ism_id"
	AttributeKeyOwner      = "owner"
	AttributeKeyModuleType = "module_type"
	AttributeKeyValidators = "validators"
	AttributeKeyThreshold  = "threshold"
	AttributeKeyDomain     = "domain"
	AttributeKeyRouteIsm   = "route_ism"
)

// NewCreateIsmEvent constructs the event emitted when an ism is stored.
func NewCreateIsmEvent(ism HyperlaneInterchainSecurityModule) sdk.Event {
	id, _ := ism.GetId()
	event := sdk.NewEvent(
		EventTypeCreateIsm,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyIsmId, id.String()),
		sdk.NewAttribute(AttributeKeyOwner, ism.GetOwner()),
		sdk.NewAttribute(AttributeKeyModuleType, ism.ModuleType().String()),
	)

	if multisig, ok := ism.(MultisigISM); ok {
		set := multisig.ValidatorsAndThreshold(message.Message{})
		validators := make([]string, len(set.Validators))
		for i, v := range set.Validators {
			validators[i] = v.Hex()
		}
		event = event.AppendAttributes(
			sdk.NewAttribute(AttributeKeyValidators, strings.Join(validators, ",")),
			sdk.NewAttribute(AttributeKeyThreshold, fmt.Sprint(set.Threshold)),
		)
	}
	return event
}

func NewSetRoutingDomainEvent(ismId util.HexAddress, domain uint32, route util.HexAddress) sdk.Event {
	return sdk.NewEvent(
		EventTypeSetRoutingDomain,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyIsmId, ismId.String()),
		sdk.NewAttribute(AttributeKeyDomain, fmt.Sprint(domain)),
		sdk.NewAttribute(AttributeKeyRouteIsm, route.String()),
	)
}

func NewRemoveRoutingDomainEvent(ismId util.HexAddress, domain uint32) sdk.Event {
	return sdk.NewEvent(
		EventTypeRemoveRoutingDomain,
		sdk.NewAttribute(sdk.AttributeKeyModule, ModuleName),
		sdk.NewAttribute(AttributeKeyIsmId, ismId.String()),
		sdk.NewAttribute(AttributeKeyDomain, fmt.Sprint(domain)),
	)
}
