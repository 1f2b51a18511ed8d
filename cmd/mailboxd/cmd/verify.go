package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	ismtypes "github.com/celestiaorg/hyperlane-mailbox/x/ism/types"
)

type verifyOutput struct {
	MessageId string `json:"message_id" yaml:"message_id"`
	Type      string `json:"type" yaml:"type"`
	Threshold uint32 `json:"threshold" yaml:"threshold"`
	Verified  bool   `json:"verified" yaml:"verified"`
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("verify [%s|%s] [metadata] [message]", metadataMessageId, metadataMerkleRoot),
		Short: "Verify metadata for a raw message against the configured validator set",
		Long: `Verify checks the signatures in the metadata the way a multisig ISM holding
the validators and threshold from the config file would. Both arguments are
0x prefixed hex.`,
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{metadataMessageId, metadataMerkleRoot},
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv(cmd)

			validators, err := e.config.ValidatorSet()
			if err != nil {
				return err
			}
			metadata, err := hexutil.Decode(args[1])
			if err != nil {
				return err
			}
			raw, err := hexutil.Decode(args[2])
			if err != nil {
				return err
			}
			msg, err := message.ParseMessage(raw)
			if err != nil {
				return err
			}

			var ism ismtypes.MultisigISM
			switch args[0] {
			case metadataMessageId:
				ism = &ismtypes.MessageIdMultisigISM{ValidatorSet: validators}
			case metadataMerkleRoot:
				ism = &ismtypes.MerkleRootMultisigISM{ValidatorSet: validators}
			default:
				return fmt.Errorf("unknown metadata type %q, expected %s or %s", args[0], metadataMessageId, metadataMerkleRoot)
			}

			verified, err := ism.Verify(cmd.Context(), metadata, msg)
			if err != nil {
				return fmt.Errorf("verification of %s failed: %w", msg.Id(), err)
			}
			e.logger.Debug("verified message", "id", msg.Id().String(), "type", ism.ModuleType().String())

			return printOutput(cmd, verifyOutput{
				MessageId: msg.Id().String(),
				Type:      ism.ModuleType().String(),
				Threshold: validators.Threshold,
				Verified:  verified,
			})
		},
	}
}
