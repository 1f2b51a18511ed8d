package cmd

import (
	"crypto/ecdsa"
	"fmt"
	"runtime"
	"time"

	"github.com/bcp-innovations/hyperlane-cosmos/util"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/celestiaorg/hyperlane-mailbox/app"
	"github.com/celestiaorg/hyperlane-mailbox/pkg/ethsig"
	"github.com/celestiaorg/hyperlane-mailbox/pkg/message"
	ismtypes "github.com/celestiaorg/hyperlane-mailbox/x/ism/types"
	mailboxtypes "github.com/celestiaorg/hyperlane-mailbox/x/mailbox/types"
)

const (
	flagValidatorCount = "validator-count"
	flagThreshold      = "threshold"
	flagMessages       = "messages"

	simulationOwner = "simulation"
)

type simulateOutput struct {
	Origin      uint32             `json:"origin" yaml:"origin"`
	Destination uint32             `json:"destination" yaml:"destination"`
	Validators  int                `json:"validators" yaml:"validators"`
	Threshold   uint32             `json:"threshold" yaml:"threshold"`
	Dispatched  int                `json:"dispatched" yaml:"dispatched"`
	Delivered   int                `json:"delivered" yaml:"delivered"`
	OriginRoot  string             `json:"origin_root" yaml:"origin_root"`
	Metrics     map[string]float64 `json:"metrics" yaml:"metrics"`
}

// simulatedChain is one in-memory app acting as a chain on a domain.
type simulatedChain struct {
	app        *app.App
	ctx        sdk.Context
	domain     uint32
	mailboxId  util.HexAddress
	merkleHook util.HexAddress
	inboxId    util.HexAddress
}

// signedMessage is a dispatched message together with the checkpoint taken
// right after it was inserted into the origin tree.
type signedMessage struct {
	msg        message.Message
	checkpoint message.Checkpoint
	metadata   []byte
}

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Relay messages between two in-memory chains secured by a message id multisig ISM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := getEnv(cmd)
			flags := cmd.Flags()

			validatorCount, err := flags.GetInt(flagValidatorCount)
			if err != nil {
				return err
			}
			threshold, err := flags.GetUint32(flagThreshold)
			if err != nil {
				return err
			}
			count, err := flags.GetInt(flagMessages)
			if err != nil {
				return err
			}
			if validatorCount < 1 {
				return fmt.Errorf("--%s must be at least 1", flagValidatorCount)
			}
			if count < 1 {
				return fmt.Errorf("--%s must be at least 1", flagMessages)
			}

			keys, validators, err := generateValidators(validatorCount)
			if err != nil {
				return err
			}
			if _, err := ismtypes.NewValidatorSet(validators, threshold); err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			origin, err := newSimulatedChain(e.config.OriginDomain, nil, func(a *app.App, ctx sdk.Context) (util.HexAddress, error) {
				return a.IsmKeeper.CreateNoopIsm(ctx, simulationOwner)
			}, e)
			if err != nil {
				return err
			}
			destination, err := newSimulatedChain(e.config.DestinationDomain, registry, func(a *app.App, ctx sdk.Context) (util.HexAddress, error) {
				return a.IsmKeeper.CreateMessageIdMultisigIsm(ctx, simulationOwner, validators, threshold)
			}, e)
			if err != nil {
				return err
			}

			messages := make([]*signedMessage, count)
			for i := range messages {
				body := []byte(fmt.Sprintf("message %d", i))
				id, _, err := origin.app.InboxKeeper.Send(origin.ctx, simulationOwner, origin.inboxId, destination.domain, destination.inboxId, body, nil, nil, nil)
				if err != nil {
					return fmt.Errorf("failed to send message %d: %w", i, err)
				}
				checkpoint, err := origin.app.PostDispatchKeeper.LatestCheckpoint(origin.ctx, origin.merkleHook)
				if err != nil {
					return err
				}
				messages[i] = &signedMessage{
					msg:        message.NewMessage(uint32(i), origin.domain, origin.inboxId, destination.domain, destination.inboxId, body),
					checkpoint: checkpoint,
				}
				if messages[i].msg.Id() != id {
					return fmt.Errorf("message %d has id %s, expected %s", i, id, messages[i].msg.Id())
				}
			}

			if err := signMessages(cmd, messages, keys[:threshold]); err != nil {
				return err
			}

			for _, m := range messages {
				if err := destination.app.MailboxKeeper.ProcessMessage(destination.ctx, destination.mailboxId, m.metadata, m.msg.Bytes(), nil); err != nil {
					return fmt.Errorf("failed to process %s: %w", m.msg.Id(), err)
				}
			}

			received, err := destination.app.InboxKeeper.ReceivedMessages(destination.ctx, destination.inboxId)
			if err != nil {
				return err
			}
			root, err := origin.app.PostDispatchKeeper.Root(origin.ctx, origin.merkleHook)
			if err != nil {
				return err
			}
			totals, err := gatherTotals(registry)
			if err != nil {
				return err
			}

			e.logger.Info("simulation finished", "dispatched", count, "delivered", len(received))
			return printOutput(cmd, simulateOutput{
				Origin:      origin.domain,
				Destination: destination.domain,
				Validators:  validatorCount,
				Threshold:   threshold,
				Dispatched:  count,
				Delivered:   len(received),
				OriginRoot:  hexutil.Encode(root[:]),
				Metrics:     totals,
			})
		},
	}

	cmd.Flags().Int(flagValidatorCount, 4, "Number of generated validators")
	cmd.Flags().Uint32(flagThreshold, 3, "Signatures required by the destination ISM")
	cmd.Flags().Int(flagMessages, 10, "Number of messages to relay")
	return cmd
}

func newSimulatedChain(domain uint32, registry *prometheus.Registry, defaultIsm func(*app.App, sdk.Context) (util.HexAddress, error), e env) (*simulatedChain, error) {
	var opts []app.Option
	if registry != nil {
		opts = append(opts, app.WithMetrics(registry))
	}
	a, err := app.New(e.logger.With("domain", domain), dbm.NewMemDB(), opts...)
	if err != nil {
		return nil, err
	}
	ctx := a.NewContext(1, time.Unix(0, 0).UTC())

	ismId, err := defaultIsm(a, ctx)
	if err != nil {
		return nil, err
	}
	mailboxId, err := a.MailboxKeeper.CreateMailbox(ctx, simulationOwner, domain, mailboxtypes.MailboxConfig{DefaultIsm: &ismId})
	if err != nil {
		return nil, err
	}
	merkleHook, err := a.PostDispatchKeeper.CreateMerkleTreeHook(ctx, simulationOwner, mailboxId)
	if err != nil {
		return nil, err
	}
	if err := a.MailboxKeeper.SetMailbox(ctx, simulationOwner, mailboxId, mailboxtypes.MailboxConfig{DefaultHook: &merkleHook}, ""); err != nil {
		return nil, err
	}
	inboxId, err := a.InboxKeeper.CreateInbox(ctx, simulationOwner, mailboxId, nil)
	if err != nil {
		return nil, err
	}

	return &simulatedChain{
		app:        a,
		ctx:        ctx,
		domain:     domain,
		mailboxId:  mailboxId,
		merkleHook: merkleHook,
		inboxId:    inboxId,
	}, nil
}

func generateValidators(n int) ([]*ecdsa.PrivateKey, []common.Address, error) {
	keys := make([]*ecdsa.PrivateKey, n)
	addresses := make([]common.Address, n)
	for i := range keys {
		key, err := crypto.GenerateKey()
		if err != nil {
			return nil, nil, err
		}
		keys[i] = key
		addresses[i] = crypto.PubkeyToAddress(key.PublicKey)
	}
	return keys, addresses, nil
}

// signMessages builds message-id metadata for every message, signing with
// keys in order. Messages are signed in parallel.
func signMessages(cmd *cobra.Command, messages []*signedMessage, keys []*ecdsa.PrivateKey) error {
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())

	for _, m := range messages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			metadata := ismtypes.MessageIdMultisigMetadata{
				MerkleTreeHook: m.checkpoint.MerkleTreeHook,
				SignedRoot:     m.checkpoint.Root,
				SignedIndex:    m.checkpoint.Index,
			}
			digest := m.checkpoint.Digest(m.msg.Id())
			for _, key := range keys {
				sig, err := ethsig.Sign(digest[:], key)
				if err != nil {
					return err
				}
				metadata.Signatures = append(metadata.Signatures, sig)
			}
			m.metadata = metadata.Bytes()
			return nil
		})
	}
	return g.Wait()
}

func gatherTotals(registry *prometheus.Registry) (map[string]float64, error) {
	families, err := registry.Gather()
	if err != nil {
		return nil, err
	}
	totals := make(map[string]float64, len(families))
	for _, family := range families {
		for _, m := range family.GetMetric() {
			totals[family.GetName()] += m.GetCounter().GetValue()
		}
	}
	return totals, nil
}
