package merkle

import (
	"bytes"

	"github.com/pkg/errors"
)

// VerifyProof recomputes the root from rawLeaf and proof and reports whether it
// equals root. A proof that simply does not match returns false with no error;
// a proof node with an unknown side or a hash of the wrong size returns
// ErrMalformedProof.
func VerifyProof(h *Hasher, proof []ProofNode, rawLeaf, root []byte) (bool, error) {
	current := h.HashLeaf(rawLeaf)

	for i, node := range proof {
		if len(node.hash) != h.DigestSize() {
			return false, errors.Wrapf(ErrMalformedProof, "proof node %d has %d byte hash, expected %d", i, len(node.hash), h.DigestSize())
		}

		switch node.side {
		case SideRight:
			current = h.Combine(current, node.hash)
		case SideLeft:
			current = h.Combine(node.hash, current)
		default:
			return false, errors.Wrapf(ErrMalformedProof, "proof node %d has side %q", i, node.side)
		}
	}

	return bytes.Equal(current, root), nil
}
