package merkle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// splitLeaves turns fuzz input into between 1 and 40 leaves. The same bytes
// always give the same leaves.
func splitLeaves(data []byte, count uint8) [][]byte {
	n := int(count%40) + 1
	leaves := make([][]byte, n)
	for i := range leaves {
		leaf := []byte{byte(i)}
		if len(data) > 0 {
			start := (i * len(data)) / n
			end := ((i + 1) * len(data)) / n
			leaf = append(leaf, data[start:end]...)
		}
		leaves[i] = leaf
	}
	return leaves
}

func FuzzProofRoundTrip(f *testing.F) {
	f.Add([]byte("abcd"), uint8(3))
	f.Add([]byte{}, uint8(0))
	f.Add([]byte("the quick brown fox"), uint8(16))
	f.Add(make([]byte, 64), uint8(39))

	f.Fuzz(func(t *testing.T, data []byte, count uint8) {
		leaves := splitLeaves(data, count)

		tree, err := NewMerkleTree(leaves)
		require.NoError(t, err)

		for i, leaf := range leaves {
			proof, err := tree.ProofForIndex(i)
			require.NoError(t, err)
			require.LessOrEqual(t, len(proof), depth(len(leaves)))

			valid, err := tree.Verify(proof, leaf)
			require.NoError(t, err)
			require.True(t, valid)
		}
	})
}

func FuzzVerifyNeverPanics(f *testing.F) {
	f.Add([]byte("leaf"), []byte{}, uint8(1))
	f.Add([]byte{}, make([]byte, 32), uint8(2))

	f.Fuzz(func(t *testing.T, leaf []byte, sibling []byte, side uint8) {
		tree, err := NewMerkleTree([][]byte{[]byte("a"), []byte("b"), []byte("c")})
		require.NoError(t, err)

		proof := []ProofNode{{hash: sibling, side: Side(side % 4)}}
		valid, err := tree.Verify(proof, leaf)
		if err != nil {
			require.ErrorIs(t, err, ErrMalformedProof)
			require.False(t, valid)
		}
	})
}
