package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// printOutput renders v in the configured output format.
func printOutput(cmd *cobra.Command, v any) error {
	var (
		bz  []byte
		err error
	)

	switch format := getEnv(cmd).config.Output; format {
	case "yaml":
		bz, err = yaml.Marshal(v)
	case "json":
		bz, err = json.MarshalIndent(v, "", "  ")
		bz = append(bz, '\n')
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(bz)
	return err
}
