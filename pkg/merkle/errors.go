package merkle

import errorsmod "cosmossdk.io/errors"

const Codespace = "merkle"

var (
	ErrTreeFull            = errorsmod.Register(Codespace, 2, "merkle tree is full")
	ErrLeafIndexOutOfRange = errorsmod.Register(Codespace, 3, "leaf index out of range")
	ErrInvalidEncoding     = errorsmod.Register(Codespace, 4, "invalid merkle tree encoding")
)
