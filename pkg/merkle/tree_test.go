package merkle_test

import (
	"encoding/hex"
	"testing"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/merkle"
	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
)

const emptyRoot = "27ae5ba08d7291c96c8cbddcc148bf48a6d68c7974b94356f53754ef6171d757"

func testLeaf(i int) [32]byte {
	sender := util.HexAddress(common.HexToAddress("0x7fa9385be102ac3eac297483dd6233d62b3e1496").Hash())
	recipient := util.HexAddress(common.BytesToHash([]byte{0xde, 0xad, 0xbe, 0xef}))
	body := make([]byte, 32)
	body[31] = byte(i)
	return message.NewMessage(uint32(i), 11, sender, 22, recipient, body).Id()
}

func TestEmptyTree(t *testing.T) {
	tree := merkle.NewTree()
	root := tree.Root()
	require.Equal(t, emptyRoot, hex.EncodeToString(root[:]))
	require.Equal(t, uint32(0), tree.Count())

	proverRoot := merkle.NewProver().Root()
	require.Equal(t, root, proverRoot)
}

func TestTreeGoldenRoots(t *testing.T) {
	expected := []struct {
		leaf string
		root string
	}{
		{
			leaf: "6664f2293f2176c06363c23871898576bee62a99eb013a81530631e0a85fef64",
			root: "10df2f89cb24ed6078fc3949b4870e94a7e32e40e8d8c6b7bd74ccc2c933d760",
		},
		{
			leaf: "93c855bbcb25d93d9babcd7430eef6c36827eb3d52cc2add83ec75375d78ab78",
			root: "fecc442b4bf8094cda0193883851aace3728538f164b974a0f679c84a01dd981",
		},
		{
			leaf: "3d79ba8aaa9529e6786f2e15d3d93f41db83e321d8c92ddf6a1417a20ddd95de",
			root: "7a84ecff7ac9ecf9aa4727bc0fef99bc75b0174bd9b4b958594c27c3132f51cb",
		},
	}

	tree := merkle.NewTree()
	for i, tc := range expected {
		leaf := testLeaf(i)
		require.Equal(t, tc.leaf, hex.EncodeToString(leaf[:]))
		require.NoError(t, tree.Insert(leaf))

		root := tree.Root()
		require.Equal(t, tc.root, hex.EncodeToString(root[:]), "root after %d leaves", i+1)
		require.Equal(t, uint32(i+1), tree.Count())
	}
}

func TestProverMatchesTree(t *testing.T) {
	tree := merkle.NewTree()
	prover := merkle.NewProver()

	for n := 0; n < 17; n++ {
		leaf := testLeaf(n)
		require.NoError(t, tree.Insert(leaf))
		require.NoError(t, prover.Insert(leaf))

		root := tree.Root()
		require.Equal(t, root, prover.Root())

		// every leaf inserted so far must prove against the current root
		for i := 0; i <= n; i++ {
			proof, err := prover.Branch(uint32(i))
			require.NoError(t, err)
			require.Equal(t, root, merkle.RootFromBranch(testLeaf(i), proof, uint32(i)), "leaf %d of %d", i, n+1)
		}
	}
}

func TestRootFromBranchRejectsWrongIndex(t *testing.T) {
	prover := merkle.NewProver()
	for i := 0; i < 4; i++ {
		require.NoError(t, prover.Insert(testLeaf(i)))
	}

	proof, err := prover.Branch(1)
	require.NoError(t, err)
	require.NotEqual(t, prover.Root(), merkle.RootFromBranch(testLeaf(1), proof, 0))
	require.NotEqual(t, prover.Root(), merkle.RootFromBranch(testLeaf(2), proof, 1))
}

func TestProverBranchOutOfRange(t *testing.T) {
	prover := merkle.NewProver()
	_, err := prover.Branch(0)
	require.ErrorIs(t, err, merkle.ErrLeafIndexOutOfRange)

	require.NoError(t, prover.Insert(testLeaf(0)))
	_, err = prover.Branch(1)
	require.ErrorIs(t, err, merkle.ErrLeafIndexOutOfRange)
}

func TestTreeMarshal(t *testing.T) {
	tree := merkle.NewTree()
	for i := 0; i < 5; i++ {
		require.NoError(t, tree.Insert(testLeaf(i)))
	}

	decoded, err := merkle.UnmarshalTree(tree.Marshal())
	require.NoError(t, err)
	require.Equal(t, tree.Count(), decoded.Count())
	require.Equal(t, tree.Root(), decoded.Root())

	// both copies must keep evolving identically
	require.NoError(t, tree.Insert(testLeaf(5)))
	require.NoError(t, decoded.Insert(testLeaf(5)))
	require.Equal(t, tree.Root(), decoded.Root())

	_, err = merkle.UnmarshalTree(tree.Marshal()[1:])
	require.ErrorIs(t, err, merkle.ErrInvalidEncoding)
}

func TestTreeFull(t *testing.T) {
	bz := merkle.NewTree().Marshal()
	bz[0], bz[1], bz[2], bz[3] = 0xff, 0xff, 0xff, 0xff

	tree, err := merkle.UnmarshalTree(bz)
	require.NoError(t, err)
	require.Equal(t, uint32(merkle.MaxLeaves), tree.Count())

	err = tree.Insert(testLeaf(0))
	require.ErrorIs(t, err, merkle.ErrTreeFull)
	require.Equal(t, uint32(merkle.MaxLeaves), tree.Count())
}
