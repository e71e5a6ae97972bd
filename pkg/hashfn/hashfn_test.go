package hashfn_test

import (
	"crypto/sha256"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/hashfn"
	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/merkle"
	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/merkle/merkletest"
)

func TestCompliance(t *testing.T) {
	t.Parallel()

	for _, name := range hashfn.Names() {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fn, err := hashfn.Lookup(name)
			require.NoError(t, err)
			factory := func() merkle.HashFunc { return fn }

			merkletest.TestHashFuncCompliance(t, factory)
			merkletest.TestTreeProperties(t, factory)
		})
	}
}

func TestKnownDigests(t *testing.T) {
	a, b := []byte("hello "), []byte("world")
	joined := []byte("hello world")

	sha := sha256.Sum256(joined)
	sha3Sum := sha3.Sum256(joined)
	blake2 := blake2b.Sum256(joined)
	blake3Sum := blake3.Sum256(joined)

	cases := map[string][]byte{
		hashfn.NameKeccak256:  crypto.Keccak256(joined),
		hashfn.NameSHA256:     sha[:],
		hashfn.NameSHA3_256:   sha3Sum[:],
		hashfn.NameBlake2b256: blake2[:],
		hashfn.NameBlake3:     blake3Sum[:],
	}

	for name, want := range cases {
		fn, err := hashfn.Lookup(name)
		require.NoError(t, err)
		require.Equal(t, want, fn(a, b), name)
		require.Len(t, fn(a, b), 32, name)
	}
}

func TestLookup(t *testing.T) {
	fn, err := hashfn.Lookup("KECCAK256")
	require.NoError(t, err)
	require.NotNil(t, fn)

	_, err = hashfn.Lookup("md5")
	require.ErrorIs(t, err, merkle.ErrInvalidInput)
	require.Contains(t, err.Error(), "md5")
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{
		hashfn.NameBlake2b256,
		hashfn.NameBlake3,
		hashfn.NameKeccak256,
		hashfn.NameSHA256,
		hashfn.NameSHA3_256,
	}, hashfn.Names())
	require.Contains(t, hashfn.Names(), hashfn.Default)
}

func TestBlake3ConcurrentUse(t *testing.T) {
	want := hashfn.Blake3([]byte("a"), []byte("b"))

	done := make(chan []byte, 16)
	for i := 0; i < cap(done); i++ {
		go func() {
			done <- hashfn.Blake3([]byte("a"), []byte("b"))
		}()
	}
	for i := 0; i < cap(done); i++ {
		require.Equal(t, want, <-done)
	}
}
