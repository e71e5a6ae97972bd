package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/hashfn"
)

// Environment variable names for the merkletree CLI
const (
	EnvHashFunction = "MERKLETREE_HASH"
	EnvLeavesFile   = "MERKLETREE_LEAVES_FILE"
	EnvHexLeaves    = "MERKLETREE_HEX_LEAVES"
	EnvVerbose      = "MERKLETREE_VERBOSE"
)

// TreeConfig describes where leaves come from and how they are hashed.
// Leaves come either from LeavesFile, one per line, or from Leaves.
// When HexLeaves is set every leaf is 0x prefixed hex.
type TreeConfig struct {
	HashFunction string   `json:"hashFunction" yaml:"hashFunction"`
	LeavesFile   string   `json:"leavesFile" yaml:"leavesFile"`
	Leaves       []string `json:"leaves" yaml:"leaves"`
	HexLeaves    bool     `json:"hexLeaves" yaml:"hexLeaves"`
	Verbose      bool     `json:"verbose" yaml:"verbose"`
}

// Validate checks the configuration and reports every problem at once.
func (c *TreeConfig) Validate() error {
	var allErrors field.ErrorList

	if c.HashFunction == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("hashFunction"), "hashFunction is required"))
	} else if _, err := hashfn.Lookup(c.HashFunction); err != nil {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("hashFunction"), c.HashFunction, hashfn.Names()))
	}

	switch {
	case c.LeavesFile == "" && len(c.Leaves) == 0:
		allErrors = append(allErrors, field.Required(field.NewPath("leaves"), "either leavesFile or leaves is required"))
	case c.LeavesFile != "" && len(c.Leaves) > 0:
		allErrors = append(allErrors, field.Forbidden(field.NewPath("leaves"), "leaves cannot be combined with leavesFile"))
	}

	if c.HexLeaves {
		for i, leaf := range c.Leaves {
			if _, err := hexutil.Decode(leaf); err != nil {
				allErrors = append(allErrors, field.Invalid(field.NewPath("leaves").Index(i), leaf, err.Error()))
			}
		}
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// LoadLeaves returns the configured leaves as raw bytes, in order.
// Blank lines in a leaves file are skipped.
func (c *TreeConfig) LoadLeaves() ([][]byte, error) {
	values := c.Leaves
	if c.LeavesFile != "" {
		lines, err := readLines(c.LeavesFile)
		if err != nil {
			return nil, err
		}
		values = lines
	}

	leaves := make([][]byte, 0, len(values))
	for i, v := range values {
		if !c.HexLeaves {
			leaves = append(leaves, []byte(v))
			continue
		}
		decoded, err := hexutil.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("leaf %d is not valid hex: %w", i, err)
		}
		leaves = append(leaves, decoded)
	}
	return leaves, nil
}

// DecodeLeaf converts a single leaf argument using the same encoding as the tree leaves.
func (c *TreeConfig) DecodeLeaf(v string) ([]byte, error) {
	if !c.HexLeaves {
		return []byte(v), nil
	}
	decoded, err := hexutil.Decode(v)
	if err != nil {
		return nil, fmt.Errorf("leaf is not valid hex: %w", err)
	}
	return decoded, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open leaves file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaves file: %w", err)
	}
	return lines, nil
}
