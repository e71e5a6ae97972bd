package merkle

import "github.com/pkg/errors"

// BuildRoot reduces an ordered list of leaf hashes to the merkle root.
// Each level is combined pairwise from left to right. If a level has an odd
// number of nodes the last one is carried up unchanged.
func BuildRoot(h *Hasher, leafHashes [][]byte) ([]byte, error) {
	if len(leafHashes) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "cannot build merkle root from empty leaf list")
	}

	level := leafHashes
	for len(level) > 1 {
		level = nextLevel(h, level)
	}

	return cloneBytes(level[0]), nil
}

// nextLevel combines level into its parent level.
func nextLevel(h *Hasher, level [][]byte) [][]byte {
	next := make([][]byte, 0, (len(level)+1)/2)
	for i := 0; i+1 < len(level); i += 2 {
		next = append(next, h.Combine(level[i], level[i+1]))
	}
	if len(level)%2 == 1 {
		// carry
		next = append(next, level[len(level)-1])
	}
	return next
}
