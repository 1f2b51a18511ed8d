package types

import "github.com/bcp-innovations/hyperlane-cosmos/util"

// IsmRouter resolves an ISM id to the module that owns it. Every module that
// owns ISMs registers on it as a util.InterchainSecurityModule.
type IsmRouter = util.Router[util.InterchainSecurityModule]
