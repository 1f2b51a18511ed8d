package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name
	ModuleName = "postdispatch"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterModuleId is the id under which this module registers itself on
	// the shared post dispatch router.
	RouterModuleId uint8 = 0
)

var (
	HooksKeyPrefix         = collections.NewPrefix(0)
	MerkleTreesKeyPrefix   = collections.NewPrefix(1)
	CollectedFeesKeyPrefix = collections.NewPrefix(2)
)
