package merkle

import errorsmod "cosmossdk.io/errors"

// Prover mirrors a Tree but keeps every leaf so it can produce the branch of
// any leaf against the current root. Relayers rebuild it from the
// inserted-into-tree events of a merkle tree hook.
type Prover struct {
	leaves [][32]byte
}

func NewProver() *Prover {
	return &Prover{}
}

func (p *Prover) Count() uint32 {
	return uint32(len(p.leaves))
}

func (p *Prover) Insert(leaf [32]byte) error {
	if uint64(len(p.leaves)) >= MaxLeaves {
		return errorsmod.Wrapf(ErrTreeFull, "prover already holds %d leaves", len(p.leaves))
	}
	p.leaves = append(p.leaves, leaf)
	return nil
}

// Root returns the same root a Tree holding the same leaves returns.
func (p *Prover) Root() [32]byte {
	if len(p.leaves) == 0 {
		return RootFromBranch(ZeroHashes[0], ZeroHashes, 0)
	}
	proof, _ := p.Branch(0)
	return RootFromBranch(p.leaves[0], proof, 0)
}

// Branch returns the sibling path of the leaf at index for the current leaf
// count. The proof is only valid against roots taken at this count.
func (p *Prover) Branch(index uint32) (Proof, error) {
	if uint64(index) >= uint64(len(p.leaves)) {
		return Proof{}, errorsmod.Wrapf(ErrLeafIndexOutOfRange, "index %d, count %d", index, len(p.leaves))
	}

	var proof Proof
	level := append([][32]byte(nil), p.leaves...)
	position := index
	for depth := 0; depth < TreeDepth; depth++ {
		sibling := position ^ 1
		if uint64(sibling) < uint64(len(level)) {
			proof[depth] = level[sibling]
		} else {
			proof[depth] = ZeroHashes[depth]
		}

		next := make([][32]byte, (len(level)+1)/2)
		for i := range next {
			left := level[2*i]
			right := ZeroHashes[depth]
			if 2*i+1 < len(level) {
				right = level[2*i+1]
			}
			next[i] = hashPair(left, right)
		}
		level = next
		position >>= 1
	}

	return proof, nil
}
