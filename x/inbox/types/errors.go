package types

import errorsmod "cosmossdk.io/errors"

var (
	ErrInboxNotFound       = errorsmod.Register(ModuleName, 2, "inbox not found")
	ErrInvalidOwner        = errorsmod.Register(ModuleName, 3, "invalid inbox owner")
	ErrUnauthorizedMailbox = errorsmod.Register(ModuleName, 4, "mailbox may not deliver to this inbox")
)
