package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/commands"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Sets a global config value",
		Args:  cobra.ExactArgs(2),
	}, &setRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type setRunner struct{}

func (i *setRunner) RunE(cmd *cobra.Command, args []string) error {
	key, entry, err := lookup(args[0])
	if err != nil {
		return err
	}

	newValue, err := parseValue(entry.kind, args[1])
	if err != nil {
		return err
	}

	previousValue := viper.Get(key)
	previousStringValue := fmt.Sprintf("%v", previousValue)
	if previousValue == nil {
		previousStringValue = "(unset)"
	}
	viper.Set(key, newValue)

	fmt.Printf(
		"Changing config entry:\n  %s: %s → %v\n",
		key,
		gchalk.Strikethrough(previousStringValue),
		gchalk.Bold(fmt.Sprintf("%v", newValue)),
	)

	file, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return err
	}
	return viper.WriteConfigAs(file)
}

func parseValue(kind int, value string) (interface{}, error) {
	switch kind {
	case configKindBool:
		return parseBool(value)
	case configKindString:
		return value, nil
	case configKindInt:
		num, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", value)
		}
		return num, nil
	case configKindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q. Use something like \"15s\"", value)
		}
		return d.String(), nil
	default:
		return nil, fmt.Errorf("what? uncovered config values type")
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value. Use \"true\" or \"false\"")
	}
}
