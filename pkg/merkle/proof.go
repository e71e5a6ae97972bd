package merkle

import (
	"bytes"
	"slices"

	"github.com/pkg/errors"
)

// GenerateProof returns the sibling path for target, ordered from the node next
// to the leaf up to the node just below the root. target is a leaf hash; the
// first matching leaf is proven.
func GenerateProof(h *Hasher, leafHashes [][]byte, target []byte) ([]ProofNode, error) {
	index := indexOf(leafHashes, target)
	if index < 0 {
		return nil, errors.Wrapf(ErrLeafNotFound, "no leaf with hash %s", shortHex(target))
	}
	return proofForIndex(h, leafHashes, index), nil
}

func proofForIndex(h *Hasher, leafHashes [][]byte, index int) []ProofNode {
	if isPowerOfTwo(len(leafHashes)) {
		return powerOfTwoProof(h, leafHashes, index)
	}
	return levelClimbProof(h, leafHashes, index)
}

func indexOf(leafHashes [][]byte, target []byte) int {
	for i, leaf := range leafHashes {
		if bytes.Equal(leaf, target) {
			return i
		}
	}
	return -1
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// powerOfTwoProof splits the leaves into equal halves and records the root of
// the half that does not contain index, descending until a pair is left.
// len(leafHashes) must be a power of two.
func powerOfTwoProof(h *Hasher, leafHashes [][]byte, index int) []ProofNode {
	proof := halve(h, leafHashes, index, make([]ProofNode, 0, depth(len(leafHashes))))
	slices.Reverse(proof)
	return proof
}

func halve(h *Hasher, level [][]byte, index int, proof []ProofNode) []ProofNode {
	switch len(level) {
	case 1:
		return proof
	case 2:
		if index == 1 {
			return append(proof, LeftNode(level[0]))
		}
		return append(proof, RightNode(level[1]))
	}

	half := len(level) / 2
	if index < half {
		proof = append(proof, RightNode(subtreeRoot(h, level[half:])))
		return halve(h, level[:half], index, proof)
	}
	proof = append(proof, LeftNode(subtreeRoot(h, level[:half])))
	return halve(h, level[half:], index-half, proof)
}

// levelClimbProof walks up one level at a time. A node carried over without a
// right neighbour contributes nothing at that level.
func levelClimbProof(h *Hasher, leafHashes [][]byte, index int) []ProofNode {
	proof := make([]ProofNode, 0, depth(len(leafHashes)))

	level := leafHashes
	for len(level) > 1 {
		if index%2 == 0 {
			if index+1 < len(level) {
				proof = append(proof, RightNode(level[index+1]))
			}
		} else {
			proof = append(proof, LeftNode(level[index-1]))
		}

		level = nextLevel(h, level)
		index /= 2
	}

	return proof
}

func subtreeRoot(h *Hasher, level [][]byte) []byte {
	for len(level) > 1 {
		level = nextLevel(h, level)
	}
	return level[0]
}

// depth returns ceil(log2(n)), the upper bound on proof length for n leaves.
func depth(n int) int {
	d := 0
	for size := 1; size < n; size <<= 1 {
		d++
	}
	return d
}
