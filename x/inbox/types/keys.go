package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name
	ModuleName = "inbox"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterModuleId is the id under which this module registers itself on
	// the app router.
	RouterModuleId uint8 = 0
)

var (
	InboxesKeyPrefix  = collections.NewPrefix(0)
	ReceivedKeyPrefix = collections.NewPrefix(1)
)
