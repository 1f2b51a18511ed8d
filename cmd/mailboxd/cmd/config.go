package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	ismtypes "github.com/celestiaorg/hyperlane-mailbox/x/ism/types"
)

const (
	// EnvPrefix is the prefix of environment variables overriding config.
	EnvPrefix = "MAILBOXD"

	appName = "mailboxd"
)

// Config is read from <home>/config.toml, environment variables and flags,
// in increasing order of precedence.
type Config struct {
	LogLevel          string   `mapstructure:"log_level"`
	LogFormat         string   `mapstructure:"log_format"`
	Output            string   `mapstructure:"output"`
	OriginDomain      uint32   `mapstructure:"origin_domain"`
	DestinationDomain uint32   `mapstructure:"destination_domain"`
	Validators        []string `mapstructure:"validators"`
	Threshold         uint32   `mapstructure:"threshold"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:          "info",
		LogFormat:         "plain",
		Output:            "yaml",
		OriginDomain:      100,
		DestinationDomain: 1337,
	}
}

// DefaultHome is where the config file is looked up unless --home is set.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, "."+appName)
}

// loadConfig reads the config file in home, if there is one, into v on top
// of the defaults.
func loadConfig(v *viper.Viper, home string) (Config, error) {
	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("origin_domain", defaults.OriginDomain)
	v.SetDefault("destination_domain", defaults.DestinationDomain)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.AddConfigPath(home)
	v.SetConfigName("config")
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ValidatorSet parses the configured validator addresses.
func (c Config) ValidatorSet() (ismtypes.ValidatorSet, error) {
	validators := make([]common.Address, 0, len(c.Validators))
	for _, validator := range c.Validators {
		if !common.IsHexAddress(validator) {
			return ismtypes.ValidatorSet{}, fmt.Errorf("invalid validator address %q", validator)
		}
		validators = append(validators, common.HexToAddress(validator))
	}
	return ismtypes.NewValidatorSet(validators, c.Threshold)
}
