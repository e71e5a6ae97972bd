package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/merkle"
	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/proofcodec"
)

// runApp runs the CLI with args and returns what it wrote to stdout
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"merkletree"}, args...))
	return out.String(), err
}

func writeLeaves(t *testing.T, leaves ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "leaves.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(leaves, "\n")+"\n"), 0o600))
	return path
}

func TestRootCommand(t *testing.T) {
	out, err := runApp(t, "--leaf", "a", "--leaf", "b", "--leaf", "c", "root")
	require.NoError(t, err)

	tree, err := merkle.NewMerkleTree([][]byte{[]byte("a"), []byte("b"), []byte("c")})
	require.NoError(t, err)
	require.Equal(t, hexutil.Encode(tree.Root())+"\n", out)
}

func TestRootCommandFromFileWithHash(t *testing.T) {
	path := writeLeaves(t, "a", "b", "c", "d")

	keccakOut, err := runApp(t, "--leaves-file", path, "root")
	require.NoError(t, err)

	blakeOut, err := runApp(t, "--leaves-file", path, "--hash", "blake3", "root")
	require.NoError(t, err)

	require.NotEqual(t, keccakOut, blakeOut)
}

func TestShowCommand(t *testing.T) {
	out, err := runApp(t, "--leaf", "alpha", "--leaf", "beta", "show")
	require.NoError(t, err)
	require.Contains(t, out, "MerkleTree(2 leaves)")
	require.Contains(t, out, `"alpha"`)
}

func TestProofVerifyAndCheck(t *testing.T) {
	leavesFile := writeLeaves(t, "a", "b", "c", "d", "e")
	bundlePath := filepath.Join(t.TempDir(), "bundle.json")

	_, err := runApp(t, "-f", leavesFile, "--hash", "sha256", "proof", "--target", "d", "--output", bundlePath)
	require.NoError(t, err)

	f, err := os.Open(bundlePath)
	require.NoError(t, err)
	bundle, err := proofcodec.Decode(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	require.Equal(t, "sha256", bundle.HashFunction)
	require.Equal(t, []byte("d"), []byte(bundle.Leaf))

	out, err := runApp(t, "-f", leavesFile, "--hash", "sha256", "verify", "--bundle", bundlePath)
	require.NoError(t, err)
	require.Contains(t, out, "proof is valid")

	out, err = runApp(t, "check", "--bundle", bundlePath)
	require.NoError(t, err)
	require.Contains(t, out, "proof is valid")

	t.Run("Different tree", func(t *testing.T) {
		other := writeLeaves(t, "a", "b", "c")
		_, err := runApp(t, "-f", other, "--hash", "sha256", "verify", "--bundle", bundlePath)
		require.Error(t, err)
		require.Contains(t, err.Error(), "does not match tree root")
	})

	t.Run("Different hash function", func(t *testing.T) {
		_, err := runApp(t, "-f", leavesFile, "verify", "--bundle", bundlePath)
		require.Error(t, err)
		require.Contains(t, err.Error(), "hash function")
	})

	t.Run("Tampered leaf", func(t *testing.T) {
		bundle.Leaf = []byte("a")
		tampered := filepath.Join(t.TempDir(), "tampered.json")
		f, err := os.Create(tampered)
		require.NoError(t, err)
		require.NoError(t, proofcodec.Encode(f, bundle))
		require.NoError(t, f.Close())

		_, err = runApp(t, "check", "--bundle", tampered)
		require.Error(t, err)
		require.Contains(t, err.Error(), "NOT valid")
	})
}

func TestHashNameIsCaseInsensitive(t *testing.T) {
	leavesFile := writeLeaves(t, "a", "b", "c")
	bundlePath := filepath.Join(t.TempDir(), "bundle.json")

	_, err := runApp(t, "-f", leavesFile, "--hash", "Keccak256", "proof", "--target", "b", "--output", bundlePath)
	require.NoError(t, err)

	f, err := os.Open(bundlePath)
	require.NoError(t, err)
	bundle, err := proofcodec.Decode(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	require.Equal(t, "keccak256", bundle.HashFunction)

	out, err := runApp(t, "-f", leavesFile, "--hash", "KECCAK256", "verify", "--bundle", bundlePath)
	require.NoError(t, err)
	require.Contains(t, out, "proof is valid")

	bundle.HashFunction = "Keccak256"
	mixed := filepath.Join(t.TempDir(), "mixed.json")
	f, err = os.Create(mixed)
	require.NoError(t, err)
	require.NoError(t, proofcodec.Encode(f, bundle))
	require.NoError(t, f.Close())

	out, err = runApp(t, "-f", leavesFile, "verify", "--bundle", mixed)
	require.NoError(t, err)
	require.Contains(t, out, "proof is valid")
}

func TestProofCommandOutputWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}

	_, err := runApp(t, "--leaf", "a", "--leaf", "b", "proof", "--target", "a", "--output", "/dev/full")
	require.Error(t, err)
}

func TestProofCommandHexLeaves(t *testing.T) {
	out, err := runApp(t, "--hex-leaves", "--leaf", "0x01", "--leaf", "0x02", "proof", "--target", "0x02")
	require.NoError(t, err)

	bundle, err := proofcodec.Decode(strings.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, []byte{0x02}, []byte(bundle.Leaf))

	valid, err := bundle.Verify()
	require.NoError(t, err)
	require.True(t, valid)
}

func TestProofCommandUnknownLeaf(t *testing.T) {
	_, err := runApp(t, "--leaf", "a", "proof", "--target", "z")
	require.ErrorIs(t, err, merkle.ErrLeafNotFound)
}

func TestInvalidConfiguration(t *testing.T) {
	_, err := runApp(t, "root")
	require.Error(t, err)
	require.Contains(t, err.Error(), "configuration error")

	_, err = runApp(t, "--hash", "md5", "--leaf", "a", "root")
	require.Error(t, err)
	require.Contains(t, err.Error(), "md5")
}
