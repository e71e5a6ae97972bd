package merkle

import "fmt"

// Side records which operand position a sibling hash takes when it is combined
// with the running hash during verification.
type Side uint8

const (
	SideUnknown Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseSide converts "left" or "right" into a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	default:
		return SideUnknown, fmt.Errorf("unsupported side: %q", s)
	}
}

// ProofNode is one sibling hash on the path from a leaf to the root.
// It is either a left sibling or a right sibling; use LeftNode and RightNode to build one.
type ProofNode struct {
	hash []byte
	side Side
}

// LeftNode returns a proof node whose hash is combined on the left of the running hash.
func LeftNode(hash []byte) ProofNode {
	return ProofNode{hash: cloneBytes(hash), side: SideLeft}
}

// RightNode returns a proof node whose hash is combined on the right of the running hash.
func RightNode(hash []byte) ProofNode {
	return ProofNode{hash: cloneBytes(hash), side: SideRight}
}

// Hash returns a copy of the sibling hash.
func (n ProofNode) Hash() []byte {
	return cloneBytes(n.hash)
}

func (n ProofNode) Side() Side {
	return n.side
}

func (n ProofNode) String() string {
	return fmt.Sprintf("%s(%s)", n.side, shortHex(n.hash))
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
