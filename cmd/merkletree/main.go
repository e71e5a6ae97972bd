package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/config"
	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/hashfn"
	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/logger"
	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/merkle"
	"github.com/Layr-Labs/eigenx-merkletree-go/pkg/proofcodec"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "merkletree",
		Usage: "Build merkle trees and create or check membership proofs",
		Description: `Builds a binary merkle tree over an ordered list of leaves.

Leaves are read from --leaves-file (one per line) or from repeated --leaf flags.
Proofs are written as JSON bundles that can be checked against the tree or on their own.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "hash",
				Usage:   fmt.Sprintf("Hash function: %v", hashfn.Names()),
				Value:   hashfn.Default,
				EnvVars: []string{config.EnvHashFunction},
			},
			&cli.StringFlag{
				Name:    "leaves-file",
				Aliases: []string{"f"},
				Usage:   "File with one leaf per line",
				EnvVars: []string{config.EnvLeavesFile},
			},
			&cli.StringSliceFlag{
				Name:  "leaf",
				Usage: "Leaf value, repeat for each leaf in order",
			},
			&cli.BoolFlag{
				Name:    "hex-leaves",
				Usage:   "Leaves are 0x prefixed hex instead of text",
				EnvVars: []string{config.EnvHexLeaves},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "root",
				Usage:  "Print the merkle root",
				Action: rootCommand,
			},
			{
				Name:   "show",
				Usage:  "Print every leaf hash and the root",
				Action: showCommand,
			},
			{
				Name:  "proof",
				Usage: "Write a proof bundle for one leaf",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "target",
						Usage:    "Leaf to prove (same encoding as the tree leaves)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Output file for the bundle (default stdout)",
					},
				},
				Action: proofCommand,
			},
			{
				Name:   "verify",
				Usage:  "Check a proof bundle against the tree built from the configured leaves",
				Flags:  []cli.Flag{bundleFlag()},
				Action: verifyCommand,
			},
			{
				Name:   "check",
				Usage:  "Check a proof bundle against the root it carries",
				Flags:  []cli.Flag{bundleFlag()},
				Action: checkCommand,
			},
		},
		// leaves may contain commas
		DisableSliceFlagSeparator: true,
	}
}

func bundleFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "bundle",
		Usage:    "Path to a proof bundle JSON file",
		Required: true,
	}
}

func parseConfig(c *cli.Context) (*config.TreeConfig, error) {
	cfg := &config.TreeConfig{
		HashFunction: strings.ToLower(c.String("hash")),
		LeavesFile:   c.String("leaves-file"),
		Leaves:       c.StringSlice("leaf"),
		HexLeaves:    c.Bool("hex-leaves"),
		Verbose:      c.Bool("verbose"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration error")
	}
	return cfg, nil
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	return logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
}

// buildTree loads the configured leaves and builds the tree.
func buildTree(c *cli.Context) (*merkle.MerkleTree, *config.TreeConfig, error) {
	cfg, err := parseConfig(c)
	if err != nil {
		return nil, nil, err
	}

	l, err := newLogger(c)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create logger")
	}

	leaves, err := cfg.LoadLeaves()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load leaves")
	}

	fn, err := hashfn.Lookup(cfg.HashFunction)
	if err != nil {
		return nil, nil, err
	}

	tree, err := merkle.NewMerkleTree(leaves, merkle.WithHashFunc(fn), merkle.WithLogger(l))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build merkle tree")
	}

	l.Sugar().Infow("Loaded merkle tree", "hash", cfg.HashFunction, "leaves", tree.Len())
	return tree, cfg, nil
}

func rootCommand(c *cli.Context) error {
	tree, _, err := buildTree(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, hexutil.Encode(tree.Root()))
	return err
}

func showCommand(c *cli.Context) error {
	tree, _, err := buildTree(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, tree.String())
	return err
}

func proofCommand(c *cli.Context) error {
	tree, cfg, err := buildTree(c)
	if err != nil {
		return err
	}

	target, err := cfg.DecodeLeaf(c.String("target"))
	if err != nil {
		return err
	}

	proof, err := tree.Proof(target)
	if err != nil {
		return errors.Wrap(err, "failed to generate proof")
	}

	bundle := proofcodec.NewBundle(cfg.HashFunction, tree.Root(), target, proof)

	if output := c.String("output"); output != "" {
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrap(err, "failed to create output file")
		}
		if err := proofcodec.Encode(f, bundle); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return errors.Wrap(err, "failed to write output file")
		}
		return nil
	}
	return proofcodec.Encode(c.App.Writer, bundle)
}

func verifyCommand(c *cli.Context) error {
	tree, cfg, err := buildTree(c)
	if err != nil {
		return err
	}

	bundle, err := readBundle(c.String("bundle"))
	if err != nil {
		return err
	}
	if !strings.EqualFold(bundle.HashFunction, cfg.HashFunction) {
		return errors.Errorf("bundle uses hash function %q but the tree uses %q", bundle.HashFunction, cfg.HashFunction)
	}
	if !bytes.Equal(bundle.Root, tree.Root()) {
		return errors.Errorf("bundle root %s does not match tree root %s", bundle.Root, hexutil.Encode(tree.Root()))
	}

	proof, err := bundle.ProofNodes()
	if err != nil {
		return err
	}
	valid, err := tree.Verify(proof, bundle.Leaf)
	if err != nil {
		return err
	}
	return report(c.App.Writer, valid)
}

func checkCommand(c *cli.Context) error {
	bundle, err := readBundle(c.String("bundle"))
	if err != nil {
		return err
	}

	valid, err := bundle.Verify()
	if err != nil {
		return err
	}
	return report(c.App.Writer, valid)
}

func readBundle(path string) (*proofcodec.Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open bundle")
	}
	defer f.Close()
	return proofcodec.Decode(f)
}

func report(w io.Writer, valid bool) error {
	if !valid {
		return cli.Exit("proof is NOT valid", 1)
	}
	_, err := fmt.Fprintln(w, "proof is valid")
	return err
}
