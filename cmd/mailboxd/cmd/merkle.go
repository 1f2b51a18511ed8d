package cmd

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/merkle"
)

type treeOutput struct {
	Count uint32 `json:"count" yaml:"count"`
	Root  string `json:"root" yaml:"root"`
}

type proofOutput struct {
	Index uint32   `json:"index" yaml:"index"`
	Leaf  string   `json:"leaf" yaml:"leaf"`
	Root  string   `json:"root" yaml:"root"`
	Proof []string `json:"proof" yaml:"proof"`
}

func merkleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merkle",
		Short: "Build the message id merkle tree off chain",
	}
	cmd.AddCommand(merkleRootCmd(), merkleProofCmd())
	return cmd
}

func merkleRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "root [message-id]...",
		Short: "Print the root of a tree holding the given message ids in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			prover, err := proverFromArgs(args)
			if err != nil {
				return err
			}
			root := prover.Root()
			return printOutput(cmd, treeOutput{Count: prover.Count(), Root: hexutil.Encode(root[:])})
		},
	}
}

func merkleProofCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proof [index] [message-id]...",
		Short: "Print the branch of the leaf at index in a tree holding the given message ids",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return err
			}
			prover, err := proverFromArgs(args[1:])
			if err != nil {
				return err
			}
			proof, err := prover.Branch(uint32(index))
			if err != nil {
				return err
			}

			out := proofOutput{
				Index: uint32(index),
				Leaf:  args[1+int(index)],
				Proof: make([]string, len(proof)),
			}
			root := prover.Root()
			out.Root = hexutil.Encode(root[:])
			for i := range proof {
				out.Proof[i] = hexutil.Encode(proof[i][:])
			}
			return printOutput(cmd, out)
		},
	}
}

func proverFromArgs(ids []string) (*merkle.Prover, error) {
	prover := merkle.NewProver()
	for _, id := range ids {
		leaf, err := hash32(id)
		if err != nil {
			return nil, err
		}
		if err := prover.Insert(leaf); err != nil {
			return nil, err
		}
	}
	return prover, nil
}
