// Package proofcodec encodes merkle proofs as self-describing JSON bundles that
// can be checked without the rest of the tree.
package proofcodec

import (
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/hashfn"
	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/merkle"
)

// Bundle is a proof together with everything needed to check it.
type Bundle struct {
	HashFunction string        `json:"hashFunction"`
	Root         hexutil.Bytes `json:"root"`
	Leaf         hexutil.Bytes `json:"leaf"`
	Proof        []Node        `json:"proof"`
}

// Node is the wire form of a merkle.ProofNode.
type Node struct {
	Side string        `json:"side"`
	Hash hexutil.Bytes `json:"hash"`
}

// NewBundle packages proof for leaf under root.
func NewBundle(hashFunction string, root, leaf []byte, proof []merkle.ProofNode) *Bundle {
	nodes := make([]Node, len(proof))
	for i, n := range proof {
		nodes[i] = Node{
			Side: n.Side().String(),
			Hash: n.Hash(),
		}
	}

	return &Bundle{
		HashFunction: hashFunction,
		Root:         append(hexutil.Bytes{}, root...),
		Leaf:         append(hexutil.Bytes{}, leaf...),
		Proof:        nodes,
	}
}

// ProofNodes converts the wire nodes back into merkle proof nodes.
func (b *Bundle) ProofNodes() ([]merkle.ProofNode, error) {
	nodes := make([]merkle.ProofNode, len(b.Proof))
	for i, n := range b.Proof {
		side, err := merkle.ParseSide(n.Side)
		if err != nil {
			return nil, errors.Wrapf(merkle.ErrMalformedProof, "proof node %d: %v", i, err)
		}
		switch side {
		case merkle.SideLeft:
			nodes[i] = merkle.LeftNode(n.Hash)
		case merkle.SideRight:
			nodes[i] = merkle.RightNode(n.Hash)
		}
	}
	return nodes, nil
}

// Verify checks the bundle's proof against its own root.
func (b *Bundle) Verify() (bool, error) {
	fn, err := hashfn.Lookup(b.HashFunction)
	if err != nil {
		return false, err
	}
	hasher, err := merkle.NewHasher(fn)
	if err != nil {
		return false, err
	}

	proof, err := b.ProofNodes()
	if err != nil {
		return false, err
	}
	return merkle.VerifyProof(hasher, proof, b.Leaf, b.Root)
}

// Encode writes b as indented JSON.
func Encode(w io.Writer, b *Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return errors.Wrap(err, "failed to encode proof bundle")
	}
	return nil
}

// Decode reads a bundle and checks that it has a hash function and a root.
func Decode(r io.Reader) (*Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, errors.Wrapf(merkle.ErrMalformedProof, "failed to decode proof bundle: %v", err)
	}
	if b.HashFunction == "" {
		return nil, errors.Wrap(merkle.ErrMalformedProof, "proof bundle has no hash function")
	}
	if len(b.Root) == 0 {
		return nil, errors.Wrap(merkle.ErrMalformedProof, "proof bundle has no root")
	}
	return &b, nil
}
