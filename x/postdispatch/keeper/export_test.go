package keeper

import (
	"cosmossdk.io/collections"
	collcodec "cosmossdk.io/collections/codec"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/merkle"
	"github.com/celestiaorg/hyperlane-mailbox/x/postdispatch/types"
)

var ErrTreeWrite = errorsmod.Register("postdispatch_export_test", 2, "tree write failed")

// FailTreeWrites is a test func that makes every later merkle tree write fail.
func (k *Keeper) FailTreeWrites(storeService corestore.KVStoreService) {
	sb := collections.NewSchemaBuilder(storeService)
	k.trees = collections.NewMap(sb, types.MerkleTreesKeyPrefix, "merkle_trees", collections.Uint64Key, failingTreeCodec{types.TreeValueCodec})
}

type failingTreeCodec struct {
	collcodec.ValueCodec[*merkle.Tree]
}

func (failingTreeCodec) Encode(*merkle.Tree) ([]byte, error) {
	return nil, ErrTreeWrite
}
