package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/merkle"
)

// TreeValueCodec stores a merkle tree in its compact binary form.
var TreeValueCodec collcodec.ValueCodec[*merkle.Tree] = treeValueCodec{}

type treeValueCodec struct{}

func (treeValueCodec) Encode(tree *merkle.Tree) ([]byte, error) {
	return tree.Marshal(), nil
}

func (treeValueCodec) Decode(bz []byte) (*merkle.Tree, error) {
	return merkle.UnmarshalTree(bz)
}

func (treeValueCodec) EncodeJSON(tree *merkle.Tree) ([]byte, error) {
	return json.Marshal(tree.Marshal())
}

func (c treeValueCodec) DecodeJSON(bz []byte) (*merkle.Tree, error) {
	var raw []byte
	if err := json.Unmarshal(bz, &raw); err != nil {
		return nil, err
	}
	return c.Decode(raw)
}

func (treeValueCodec) Stringify(tree *merkle.Tree) string {
	root := tree.Root()
	return fmt.Sprintf("count=%d root=0x%s", tree.Count(), hex.EncodeToString(root[:]))
}

func (treeValueCodec) ValueType() string {
	return "hyperlane/merkle_tree"
}
