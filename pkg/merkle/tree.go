package merkle

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MerkleTree is a binary merkle tree over an ordered list of raw leaves.
// The leaf order is fixed at construction and the tree is never modified
// afterwards, so every method is safe for concurrent use.
type MerkleTree struct {
	// leaves holds copies of the raw leaves, kept for display
	leaves [][]byte

	// leafHashes[i] is the hash of leaves[i]
	leafHashes [][]byte

	root []byte

	hasher *Hasher
	logger *zap.Logger
}

// Option configures NewMerkleTree.
type Option func(*treeOptions)

type treeOptions struct {
	hashFunc HashFunc
	logger   *zap.Logger
}

// WithHashFunc replaces the default keccak256 hash function.
func WithHashFunc(fn HashFunc) Option {
	return func(o *treeOptions) {
		o.hashFunc = fn
	}
}

// WithLogger sets the logger used for debug output. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *treeOptions) {
		o.logger = l
	}
}

// NewMerkleTree hashes every leaf and computes the root.
func NewMerkleTree(leaves [][]byte, opts ...Option) (*MerkleTree, error) {
	o := &treeOptions{hashFunc: Keccak256}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	if len(leaves) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "cannot build merkle tree from empty leaf list")
	}

	hasher, err := NewHasher(o.hashFunc)
	if err != nil {
		return nil, err
	}

	rawLeaves := make([][]byte, len(leaves))
	leafHashes := make([][]byte, len(leaves))
	for i, leaf := range leaves {
		rawLeaves[i] = cloneBytes(leaf)
		leafHashes[i] = hasher.HashLeaf(leaf)
	}

	root, err := BuildRoot(hasher, leafHashes)
	if err != nil {
		return nil, err
	}

	o.logger.Sugar().Debugw("Built merkle tree",
		"leaves", len(leafHashes),
		"digest_size", hasher.DigestSize(),
		"root", hexutil.Encode(root),
	)

	return &MerkleTree{
		leaves:     rawLeaves,
		leafHashes: leafHashes,
		root:       root,
		hasher:     hasher,
		logger:     o.logger,
	}, nil
}

// Root returns a copy of the merkle root.
func (mt *MerkleTree) Root() []byte {
	return cloneBytes(mt.root)
}

// Len returns the number of leaves.
func (mt *MerkleTree) Len() int {
	return len(mt.leafHashes)
}

// Hasher returns the hasher the tree was built with.
func (mt *MerkleTree) Hasher() *Hasher {
	return mt.hasher
}

// Leaves returns copies of the raw leaves in tree order.
func (mt *MerkleTree) Leaves() [][]byte {
	return cloneAll(mt.leaves)
}

// LeafHashes returns copies of the leaf hashes in tree order.
func (mt *MerkleTree) LeafHashes() [][]byte {
	return cloneAll(mt.leafHashes)
}

// Proof returns the membership proof for rawLeaf.
// If the same value appears more than once, the first occurrence is proven.
func (mt *MerkleTree) Proof(rawLeaf []byte) ([]ProofNode, error) {
	proof, err := GenerateProof(mt.hasher, mt.leafHashes, mt.hasher.HashLeaf(rawLeaf))
	if err != nil {
		return nil, err
	}

	mt.logger.Sugar().Debugw("Generated merkle proof", "leaves", len(mt.leafHashes), "proof_length", len(proof))
	return proof, nil
}

// ProofForIndex returns the membership proof for the leaf at leafIndex.
func (mt *MerkleTree) ProofForIndex(leafIndex int) ([]ProofNode, error) {
	if leafIndex < 0 || leafIndex >= len(mt.leafHashes) {
		return nil, errors.Wrapf(ErrLeafNotFound, "leaf index %d out of bounds (tree has %d leaves)", leafIndex, len(mt.leafHashes))
	}
	return proofForIndex(mt.hasher, mt.leafHashes, leafIndex), nil
}

// Verify checks proof for rawLeaf against the tree's root.
func (mt *MerkleTree) Verify(proof []ProofNode, rawLeaf []byte) (bool, error) {
	return VerifyProof(mt.hasher, proof, rawLeaf, mt.root)
}

// String renders each leaf with a short prefix of its hash, followed by the root.
func (mt *MerkleTree) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "MerkleTree(%d leaves)\n", len(mt.leaves))
	for i, leaf := range mt.leaves {
		fmt.Fprintf(&sb, "  [%d] %s %q\n", i, shortHex(mt.leafHashes[i]), leaf)
	}
	fmt.Fprintf(&sb, "  root %s", hexutil.Encode(mt.root))
	return sb.String()
}

func cloneAll(in [][]byte) [][]byte {
	out := make([][]byte, len(in))
	for i, b := range in {
		out[i] = cloneBytes(b)
	}
	return out
}

// shortHex returns the 0x prefixed hex of the first four bytes of b.
func shortHex(b []byte) string {
	if len(b) > 4 {
		return hexutil.Encode(b[:4]) + "…"
	}
	return hexutil.Encode(b)
}
