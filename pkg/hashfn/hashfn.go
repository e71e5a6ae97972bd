// Package hashfn provides named merkle.HashFunc implementations.
// Every function digests the concatenation of its two operands.
package hashfn

import (
	"crypto/sha256"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/merkle"
)

const (
	NameKeccak256  = "keccak256"
	NameSHA256     = "sha256"
	NameSHA3_256   = "sha3-256"
	NameBlake2b256 = "blake2b-256"
	NameBlake3     = "blake3"

	// Default is the hash function trees use when none is named.
	Default = NameKeccak256
)

var registry = map[string]merkle.HashFunc{
	NameKeccak256:  merkle.Keccak256,
	NameSHA256:     SHA256,
	NameSHA3_256:   SHA3_256,
	NameBlake2b256: Blake2b256,
	NameBlake3:     Blake3,
}

// Lookup returns the hash function registered under name.
func Lookup(name string) (merkle.HashFunc, error) {
	fn, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(merkle.ErrInvalidInput, "unsupported hash function %q, supported: %s", name, strings.Join(Names(), ", "))
	}
	return fn, nil
}

// Names returns the registered names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SHA256 returns sha256(a || b).
func SHA256(a, b []byte) []byte {
	h := sha256.New()
	_, _ = h.Write(a)
	_, _ = h.Write(b)
	return h.Sum(nil)
}

// SHA3_256 returns sha3-256(a || b).
func SHA3_256(a, b []byte) []byte {
	h := sha3.New256()
	_, _ = h.Write(a)
	_, _ = h.Write(b)
	return h.Sum(nil)
}

// Blake2b256 returns blake2b-256(a || b).
func Blake2b256(a, b []byte) []byte {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	_, _ = h.Write(a)
	_, _ = h.Write(b)
	return h.Sum(nil)
}

var blake3Pool = sync.Pool{
	New: func() interface{} {
		return blake3.New()
	},
}

// Blake3 returns blake3(a || b) with a 32 byte output.
func Blake3(a, b []byte) []byte {
	h := blake3Pool.Get().(*blake3.Hasher)
	defer blake3Pool.Put(h)

	h.Reset()
	_, _ = h.Write(a)
	_, _ = h.Write(b)
	return h.Sum(nil)
}
