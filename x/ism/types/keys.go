package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name
	ModuleName = "ism"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterModuleId is the id under which this module registers itself on
	// the shared ISM router.
	RouterModuleId uint8 = 0
)

var (
	IsmsKeyPrefix          = collections.NewPrefix(0)
	RoutingIsmRoutesPrefix = collections.NewPrefix(1)
)
