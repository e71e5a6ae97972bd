package merkle

import (
	"bytes"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// HashFunc combines two byte sequences into a digest. It must be deterministic
// and collision resistant; leaves are hashed as fn(leaf, empty).
type HashFunc func(a, b []byte) []byte

// Keccak256 returns keccak256(a || b). It is the default HashFunc.
func Keccak256(a, b []byte) []byte {
	return crypto.Keccak256(a, b)
}

var (
	probeLeft  = []byte("a")
	probeRight = []byte("b")
)

// Hasher wraps a HashFunc and exposes the two hashing operations the tree needs.
type Hasher struct {
	fn         HashFunc
	digestSize int
}

// NewHasher validates fn by probing it once and returns a Hasher backed by it.
// A nil function, an empty digest, a non-deterministic digest or a digest whose
// length depends on the input are rejected.
func NewHasher(fn HashFunc) (*Hasher, error) {
	if fn == nil {
		return nil, errors.Wrap(ErrInvalidInput, "hash function is nil")
	}

	first := fn(probeLeft, probeRight)
	if len(first) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "hash function returned an empty digest")
	}
	second := fn(probeLeft, probeRight)
	if !bytes.Equal(first, second) {
		return nil, errors.Wrap(ErrInvalidInput, "hash function is not deterministic")
	}

	for _, in := range [][2][]byte{
		{nil, nil},
		{make([]byte, 64), probeRight},
		{probeLeft, make([]byte, 257)},
	} {
		if size := len(fn(in[0], in[1])); size != len(first) {
			return nil, errors.Wrapf(ErrInvalidInput, "hash function digest size varies with input (%d and %d bytes)", len(first), size)
		}
	}

	return &Hasher{
		fn:         fn,
		digestSize: len(first),
	}, nil
}

// DigestSize is the length in bytes of every hash this Hasher produces.
func (h *Hasher) DigestSize() int {
	return h.digestSize
}

// Combine hashes two child hashes into their parent.
func (h *Hasher) Combine(a, b []byte) []byte {
	return h.fn(a, b)
}

// HashLeaf hashes a raw leaf as Combine(leaf, empty).
func (h *Hasher) HashLeaf(leaf []byte) []byte {
	return h.fn(leaf, []byte{})
}
