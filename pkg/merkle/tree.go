// Package merkle implements the append-only, fixed depth incremental merkle
// tree that commits to the sequence of dispatched message ids.
//
// The on-chain Tree keeps only one cached node per level and can always
// produce the current root. Proofs for arbitrary leaves are built off-chain
// with a Prover, and consumed on-chain through RootFromBranch.
package merkle

import (
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// TreeDepth is the number of levels below the root.
	TreeDepth = 32

	// MaxLeaves is the structural leaf ceiling. The count is a uint32, so the
	// tree refuses the leaf that would make it overflow.
	MaxLeaves = uint64(1)<<TreeDepth - 1
)

// Proof is the sibling path from a leaf to the root, bottom up.
type Proof [TreeDepth][32]byte

// ZeroHashes[i] is the root of an empty subtree of height i.
var ZeroHashes = computeZeroHashes()

func computeZeroHashes() (zeroes [TreeDepth][32]byte) {
	for i := 1; i < TreeDepth; i++ {
		zeroes[i] = hashPair(zeroes[i-1], zeroes[i-1])
	}
	return zeroes
}

func hashPair(left, right [32]byte) [32]byte {
	return crypto.Keccak256Hash(left[:], right[:])
}

// Tree is the incremental merkle tree. The zero value is an empty tree.
type Tree struct {
	branch [TreeDepth][32]byte
	count  uint32
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Count is the number of inserted leaves.
func (t *Tree) Count() uint32 {
	return t.count
}

// Insert appends leaf at index Count().
func (t *Tree) Insert(leaf [32]byte) error {
	if uint64(t.count) >= MaxLeaves {
		return errorsmod.Wrapf(ErrTreeFull, "tree already holds %d leaves", t.count)
	}

	t.count++
	size := t.count
	node := leaf
	for i := 0; i < TreeDepth; i++ {
		if size&1 == 1 {
			t.branch[i] = node
			return nil
		}
		node = hashPair(t.branch[i], node)
		size >>= 1
	}

	// unreachable while count < 2^32
	panic("merkle: tree is full")
}

// Root recomputes the root from the cached branch and the zero hashes.
func (t *Tree) Root() [32]byte {
	var current [32]byte
	for i := 0; i < TreeDepth; i++ {
		if (t.count>>i)&1 == 1 {
			current = hashPair(t.branch[i], current)
		} else {
			current = hashPair(current, ZeroHashes[i])
		}
	}
	return current
}

// RootFromBranch walks proof bottom up, placing the running hash on the left
// or right according to the corresponding bit of index. All TreeDepth levels
// take part, whether or not they hold real leaves.
func RootFromBranch(leaf [32]byte, proof Proof, index uint32) [32]byte {
	current := leaf
	for i := 0; i < TreeDepth; i++ {
		if (index>>i)&1 == 1 {
			current = hashPair(proof[i], current)
		} else {
			current = hashPair(current, proof[i])
		}
	}
	return current
}

// encodedTreeLength is count (4 bytes) followed by the cached branch.
const encodedTreeLength = 4 + TreeDepth*32

// Marshal encodes the tree state for storage.
func (t *Tree) Marshal() []byte {
	bz := make([]byte, 0, encodedTreeLength)
	bz = binary.BigEndian.AppendUint32(bz, t.count)
	for i := range t.branch {
		bz = append(bz, t.branch[i][:]...)
	}
	return bz
}

// UnmarshalTree decodes a tree produced by Marshal.
func UnmarshalTree(bz []byte) (*Tree, error) {
	if len(bz) != encodedTreeLength {
		return nil, errorsmod.Wrapf(ErrInvalidEncoding, "expected %d bytes, got %d", encodedTreeLength, len(bz))
	}

	t := &Tree{count: binary.BigEndian.Uint32(bz[:4])}
	for i := range t.branch {
		copy(t.branch[i][:], bz[4+32*i:4+32*(i+1)])
	}
	return t, nil
}
