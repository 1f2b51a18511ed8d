package cmd

import (
	"context"
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagHome      = "home"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagOutput    = "output"
)

type contextKey struct{}

// env is what the root command hands to its subcommands.
type env struct {
	config Config
	logger log.Logger
}

// NewRootCmd creates the root command of mailboxd.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Encode, prove and verify interchain mailbox messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlag("log_level", cmd.Flags().Lookup(flagLogLevel)); err != nil {
				return err
			}
			if err := v.BindPFlag("log_format", cmd.Flags().Lookup(flagLogFormat)); err != nil {
				return err
			}
			if err := v.BindPFlag("output", cmd.Flags().Lookup(flagOutput)); err != nil {
				return err
			}

			home, err := cmd.Flags().GetString(flagHome)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(v, home)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			cmd.SetContext(context.WithValue(cmd.Context(), contextKey{}, env{config: cfg, logger: logger}))
			return nil
		},
	}

	rootCmd.PersistentFlags().String(flagHome, DefaultHome(), "Directory holding config.toml")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String(flagLogFormat, "plain", "Log format (plain, json)")
	rootCmd.PersistentFlags().StringP(flagOutput, "o", "yaml", "Output format (yaml, json)")

	rootCmd.AddCommand(
		messageCmd(),
		merkleCmd(),
		checkpointCmd(),
		metadataCmd(),
		verifyCmd(),
		simulateCmd(),
	)

	rootCmd.SetContext(context.Background())
	return rootCmd
}

func newLogger(cfg Config) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	opts := []log.Option{log.LevelOption(level)}
	switch cfg.LogFormat {
	case "plain":
	case "json":
		opts = append(opts, log.OutputJSONOption())
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	return log.NewLogger(os.Stderr, opts...), nil
}

// getEnv returns the env the root command stored on cmd.
func getEnv(cmd *cobra.Command) env {
	e, ok := cmd.Context().Value(contextKey{}).(env)
	if !ok {
		return env{config: DefaultConfig(), logger: log.NewNopLogger()}
	}
	return e
}
