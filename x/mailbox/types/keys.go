package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name
	ModuleName = "mailbox"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// Router names are written into the first 20 bytes of every id the
	// router hands out.
	IsmRouterName          = "router_ism"
	PostDispatchRouterName = "router_post_dispatch"
	AppRouterName          = "router_app"
)

var (
	MailboxesKeyPrefix        = collections.NewPrefix(0)
	MailboxSequenceKey        = collections.NewPrefix(1)
	DeliveredKeyPrefix        = collections.NewPrefix(2)
	IsmRouterKey              = []byte{3}
	PostDispatchRouterKey     = []byte{4}
	AppRouterKey              = []byte{5}
	LatestDispatchedKeyPrefix = collections.NewPrefix(6)
)
