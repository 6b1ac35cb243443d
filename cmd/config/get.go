package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/commands"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "get [key]",
		Short: "Gets a global config value. Lists all values without a key",
		Args:  cobra.MaximumNArgs(1),
	}, &getRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type getRunner struct{}

func (i *getRunner) RunE(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("Printing config entries:")
		for _, key := range keys() {
			fmt.Printf("  %s: %v  (%s)\n", key, viper.Get(key), config[key].help)
		}
		return nil
	}

	key, _, err := lookup(args[0])
	if err != nil {
		return err
	}

	fmt.Println("Printing config entry:")
	fmt.Printf("  %s: %v\n", key, viper.Get(key))

	return nil
}
