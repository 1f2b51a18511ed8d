package cmd

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
)

type checkpointOutput struct {
	Origin         uint32 `json:"origin" yaml:"origin"`
	MerkleTreeHook string `json:"merkle_tree_hook" yaml:"merkle_tree_hook"`
	Root           string `json:"root" yaml:"root"`
	Index          uint32 `json:"index" yaml:"index"`
	MessageId      string `json:"message_id" yaml:"message_id"`
	DomainHash     string `json:"domain_hash" yaml:"domain_hash"`
	Digest         string `json:"digest" yaml:"digest"`
}

func checkpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Inspect validator checkpoints",
	}
	cmd.AddCommand(checkpointDigestCmd())
	return cmd
}

func checkpointDigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the digest validators sign for a checkpoint and message id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			origin, err := domainFlag(cmd.Flags(), "origin", getEnv(cmd).config.OriginDomain)
			if err != nil {
				return err
			}
			hook, err := hexAddressFlag(cmd.Flags(), "merkle-tree-hook")
			if err != nil {
				return err
			}
			messageId, err := hexAddressFlag(cmd.Flags(), "message-id")
			if err != nil {
				return err
			}
			rootFlag, err := cmd.Flags().GetString("root")
			if err != nil {
				return err
			}
			root, err := hash32(rootFlag)
			if err != nil {
				return err
			}
			index, err := cmd.Flags().GetUint32("index")
			if err != nil {
				return err
			}

			checkpoint := message.Checkpoint{Origin: origin, MerkleTreeHook: hook, Root: root, Index: index}
			domainHash := message.DomainHash(origin, hook)
			digest := checkpoint.Digest(messageId)

			return printOutput(cmd, checkpointOutput{
				Origin:         origin,
				MerkleTreeHook: hook.String(),
				Root:           hexutil.Encode(root[:]),
				Index:          index,
				MessageId:      messageId.String(),
				DomainHash:     hexutil.Encode(domainHash[:]),
				Digest:         hexutil.Encode(digest[:]),
			})
		},
	}

	cmd.Flags().Uint32("origin", 0, "Origin domain, defaults to origin_domain from config")
	cmd.Flags().String("merkle-tree-hook", "", "Address of the origin merkle tree hook")
	cmd.Flags().String("root", "", "Checkpoint root")
	cmd.Flags().Uint32("index", 0, "Checkpoint index")
	cmd.Flags().String("message-id", "", "Id of the attested message")
	_ = cmd.MarkFlagRequired("merkle-tree-hook")
	_ = cmd.MarkFlagRequired("root")
	_ = cmd.MarkFlagRequired("message-id")
	return cmd
}
