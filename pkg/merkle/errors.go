package merkle

import "github.com/pkg/errors"

var (
	// ErrInvalidInput is returned when a tree is built from an empty leaf list or
	// with a hash function that does not behave like a digest.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLeafNotFound is returned when a proof is requested for a leaf the tree does not hold.
	ErrLeafNotFound = errors.New("leaf not found")

	// ErrMalformedProof is returned when a proof node has an unknown side or a hash
	// of the wrong length.
	ErrMalformedProof = errors.New("malformed proof")
)
