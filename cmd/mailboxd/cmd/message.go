package cmd

import (
	"fmt"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
)

// messageOutput is the printable form of a message.
type messageOutput struct {
	Id          string `json:"id" yaml:"id"`
	Version     uint8  `json:"version" yaml:"version"`
	Nonce       uint32 `json:"nonce" yaml:"nonce"`
	Origin      uint32 `json:"origin" yaml:"origin"`
	Sender      string `json:"sender" yaml:"sender"`
	Destination uint32 `json:"destination" yaml:"destination"`
	Recipient   string `json:"recipient" yaml:"recipient"`
	Body        string `json:"body" yaml:"body"`
	Raw         string `json:"raw" yaml:"raw"`
}

func newMessageOutput(msg message.Message) messageOutput {
	return messageOutput{
		Id:          msg.Id().String(),
		Version:     msg.Version,
		Nonce:       msg.Nonce,
		Origin:      msg.Origin,
		Sender:      msg.Sender.String(),
		Destination: msg.Destination,
		Recipient:   msg.Recipient.String(),
		Body:        hexutil.Encode(msg.Body),
		Raw:         hexutil.Encode(msg.Bytes()),
	}
}

func messageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Encode and decode messages",
	}
	cmd.AddCommand(messageEncodeCmd(), messageDecodeCmd())
	return cmd
}

func messageEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encode",
		Short:   "Encode a message and print its id",
		Example: "mailboxd message encode --nonce 0 --sender 0x00..01 --recipient 0x00..02 --body 0x68656c6c6f",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getEnv(cmd).config
			flags := cmd.Flags()

			nonce, err := flags.GetUint32("nonce")
			if err != nil {
				return err
			}
			origin, err := domainFlag(cmd.Flags(), "origin", cfg.OriginDomain)
			if err != nil {
				return err
			}
			destination, err := domainFlag(cmd.Flags(), "destination", cfg.DestinationDomain)
			if err != nil {
				return err
			}
			sender, err := hexAddressFlag(cmd.Flags(), "sender")
			if err != nil {
				return err
			}
			recipient, err := hexAddressFlag(cmd.Flags(), "recipient")
			if err != nil {
				return err
			}
			body, err := bytesFlag(cmd.Flags(), "body")
			if err != nil {
				return err
			}

			msg := message.NewMessage(nonce, origin, sender, destination, recipient, body)
			return printOutput(cmd, newMessageOutput(msg))
		},
	}

	cmd.Flags().Uint32("nonce", 0, "Message nonce")
	cmd.Flags().Uint32("origin", 0, "Origin domain, defaults to origin_domain from config")
	cmd.Flags().Uint32("destination", 0, "Destination domain, defaults to destination_domain from config")
	cmd.Flags().String("sender", "", "32 byte sender address")
	cmd.Flags().String("recipient", "", "32 byte recipient address")
	cmd.Flags().String("body", "0x", "Hex encoded body")
	return cmd
}

func messageDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [hex]",
		Short: "Decode a raw message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := hexutil.Decode(args[0])
			if err != nil {
				return err
			}
			msg, err := message.ParseMessage(raw)
			if err != nil {
				return err
			}
			return printOutput(cmd, newMessageOutput(msg))
		},
	}
}

// domainFlag returns the flag value if it was set, fallback otherwise.
func domainFlag(flags *pflag.FlagSet, name string, fallback uint32) (uint32, error) {
	if !flags.Changed(name) {
		return fallback, nil
	}
	return flags.GetUint32(name)
}

func hexAddressFlag(flags *pflag.FlagSet, name string) (util.HexAddress, error) {
	value, err := flags.GetString(name)
	if err != nil {
		return util.HexAddress{}, err
	}
	if value == "" {
		return util.HexAddress{}, nil
	}
	return util.DecodeHexAddress(value)
}

func bytesFlag(flags *pflag.FlagSet, name string) ([]byte, error) {
	value, err := flags.GetString(name)
	if err != nil {
		return nil, err
	}
	return hexutil.Decode(value)
}

// hash32 decodes a 0x prefixed 32 byte hash.
func hash32(s string) ([32]byte, error) {
	bz, err := hexutil.Decode(s)
	if err != nil {
		return [32]byte{}, err
	}
	if len(bz) != 32 {
		return [32]byte{}, fmt.Errorf("expected 32 bytes, got %d", len(bz))
	}
	return [32]byte(bz), nil
}
