// Package merkletest holds reusable test suites for merkle.HashFunc implementations.
package merkletest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/merkle"
)

type HashFuncFactory func() merkle.HashFunc

// TestHashFuncCompliance checks the properties the tree relies on from a hash function.
func TestHashFuncCompliance(t *testing.T, f HashFuncFactory) {
	t.Run("digest is deterministic", func(t *testing.T) {
		t.Parallel()

		fn := f()
		require.Equal(t, fn([]byte("left"), []byte("right")), fn([]byte("left"), []byte("right")))
	})

	t.Run("digest respects operand order", func(t *testing.T) {
		t.Parallel()

		fn := f()
		require.NotEqual(t, fn([]byte("left"), []byte("right")), fn([]byte("right"), []byte("left")))
	})

	t.Run("digest respects second operand", func(t *testing.T) {
		t.Parallel()

		fn := f()
		require.NotEqual(t, fn([]byte("leaf"), []byte{}), fn([]byte("leaf"), []byte("x")))
	})

	t.Run("digest has fixed size", func(t *testing.T) {
		t.Parallel()

		fn := f()
		size := len(fn(nil, nil))
		require.NotZero(t, size)
		require.Len(t, fn([]byte("a"), []byte("b")), size)
		require.Len(t, fn(make([]byte, 4096), []byte("b")), size)
	})

	t.Run("hasher accepts function", func(t *testing.T) {
		t.Parallel()

		h, err := merkle.NewHasher(f())
		require.NoError(t, err)
		require.Equal(t, h.Combine([]byte("x"), []byte{}), h.HashLeaf([]byte("x")))
	})
}

// TestTreeProperties builds trees with the hash function and checks that every
// leaf proves, roots are deterministic and unknown leaves are rejected.
func TestTreeProperties(t *testing.T, f HashFuncFactory) {
	for _, n := range []int{1, 2, 3, 4, 5, 8, 13, 16} {
		n := n
		t.Run(fmt.Sprintf("leaves %d", n), func(t *testing.T) {
			t.Parallel()

			leaves := make([][]byte, n)
			for i := range leaves {
				leaves[i] = []byte(fmt.Sprintf("item-%d", i))
			}

			tree, err := merkle.NewMerkleTree(leaves, merkle.WithHashFunc(f()))
			require.NoError(t, err)

			again, err := merkle.NewMerkleTree(leaves, merkle.WithHashFunc(f()))
			require.NoError(t, err)
			require.Equal(t, tree.Root(), again.Root())

			for i, leaf := range leaves {
				proof, err := tree.Proof(leaf)
				require.NoError(t, err)

				valid, err := tree.Verify(proof, leaf)
				require.NoError(t, err)
				require.True(t, valid, "leaf %d", i)

				if n > 1 {
					other := leaves[(i+1)%n]
					valid, err = tree.Verify(proof, other)
					require.NoError(t, err)
					require.False(t, valid, "leaf %d proof accepted leaf %d", i, (i+1)%n)
				}
			}

			_, err = tree.Proof([]byte("absent"))
			require.ErrorIs(t, err, merkle.ErrLeafNotFound)
		})
	}
}
