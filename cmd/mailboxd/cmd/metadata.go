package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	ismtypes "github.com/celestiaorg/hyperlane-mailbox/x/ism/types"
)

const (
	metadataMessageId  = "message-id"
	metadataMerkleRoot = "merkle-root"
)

type metadataOutput struct {
	Type           string   `json:"type" yaml:"type"`
	MerkleTreeHook string   `json:"merkle_tree_hook" yaml:"merkle_tree_hook"`
	SignedRoot     string   `json:"signed_root,omitempty" yaml:"signed_root,omitempty"`
	SignedIndex    uint32   `json:"signed_index" yaml:"signed_index"`
	MessageIndex   *uint32  `json:"message_index,omitempty" yaml:"message_index,omitempty"`
	MessageId      string   `json:"message_id,omitempty" yaml:"message_id,omitempty"`
	ProvenRoot     string   `json:"proven_root,omitempty" yaml:"proven_root,omitempty"`
	Signatures     []string `json:"signatures" yaml:"signatures"`
}

func metadataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Inspect multisig ISM metadata",
	}
	cmd.AddCommand(metadataDecodeCmd())
	return cmd
}

func metadataDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       fmt.Sprintf("decode [%s|%s] [hex]", metadataMessageId, metadataMerkleRoot),
		Short:     "Decode relayer supplied metadata",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{metadataMessageId, metadataMerkleRoot},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hexutil.Decode(args[1])
			if err != nil {
				return err
			}
			out, err := decodeMetadata(args[0], raw)
			if err != nil {
				return err
			}
			return printOutput(cmd, out)
		},
	}
}

func decodeMetadata(kind string, raw []byte) (metadataOutput, error) {
	switch kind {
	case metadataMessageId:
		meta, err := ismtypes.ParseMessageIdMultisigMetadata(raw)
		if err != nil {
			return metadataOutput{}, err
		}
		return metadataOutput{
			Type:           kind,
			MerkleTreeHook: meta.MerkleTreeHook.String(),
			SignedRoot:     hexutil.Encode(meta.SignedRoot[:]),
			SignedIndex:    meta.SignedIndex,
			Signatures:     encodeSignatures(meta.Signatures),
		}, nil
	case metadataMerkleRoot:
		meta, err := ismtypes.ParseMerkleRootMultisigMetadata(raw)
		if err != nil {
			return metadataOutput{}, err
		}
		root := meta.Root()
		return metadataOutput{
			Type:           kind,
			MerkleTreeHook: meta.MerkleTreeHook.String(),
			SignedIndex:    meta.SignedIndex,
			MessageIndex:   &meta.MessageIndex,
			MessageId:      meta.MessageId.String(),
			ProvenRoot:     hexutil.Encode(root[:]),
			Signatures:     encodeSignatures(meta.Signatures),
		}, nil
	default:
		return metadataOutput{}, fmt.Errorf("unknown metadata type %q, expected %s or %s", kind, metadataMessageId, metadataMerkleRoot)
	}
}

func encodeSignatures(signatures [][]byte) []string {
	out := make([]string, len(signatures))
	for i, sig := range signatures {
		out[i] = hexutil.Encode(sig)
	}
	return out
}
