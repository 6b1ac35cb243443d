// Package config is the "config" subcommand. It reads and writes the
// global config file
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/commands"
	iconfig "github.com/iamfatinilham/nuxcraft-pycher/internals/config"
)

const (
	configKindString = iota
	configKindBool
	configKindInt
	configKindDuration
)

type configEntry struct {
	kind int
	help string
}

var config = map[string]configEntry{
	iconfig.KeyPlayer:           {configKindString, "offline player name"},
	iconfig.KeyJava:             {configKindString, "java executable"},
	iconfig.KeyGameDir:          {configKindString, "game directory"},
	iconfig.KeyMemory:           {configKindString, "max heap (like 2G or 2048M)"},
	iconfig.KeyThreads:          {configKindInt, "parallel downloads"},
	iconfig.KeyPlatform:         {configKindString, "platform override (linux, windows, osx)"},
	iconfig.KeyOffline:          {configKindBool, "launch the last version without network"},
	iconfig.KeySnapshots:        {configKindBool, "list snapshots"},
	iconfig.KeyBeta:             {configKindBool, "list old betas and alphas"},
	iconfig.KeyJVMFlags:         {configKindString, "extra java flags"},
	iconfig.KeyGameFlags:        {configKindString, "extra game flags"},
	iconfig.KeyOpenAL:           {configKindBool, "force the system OpenAL"},
	iconfig.KeyNoOpenAL:         {configKindBool, "never use the system OpenAL"},
	iconfig.KeyDisableHugePages: {configKindBool, "disable huge/large pages"},
	iconfig.KeyFullscreen:       {configKindBool, "start in fullscreen"},
	iconfig.KeyVerbose:          {configKindBool, "print debug logs"},
	iconfig.KeyRateLimit:        {configKindInt, "max requests per second (0 = unlimited)"},
	iconfig.KeyTimeout:          {configKindDuration, "max time a download may stall (like 15s)"},
	iconfig.KeyNonInteractive:   {configKindBool, "never show the version menu"},
	iconfig.KeyRetryMissingOnly: {configKindBool, "retry only missing files on a failed verification"},
}

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
}

// FilePath is the global config file
func FilePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "nuxcraft", "config.toml"), nil
}

func lookup(key string) (string, configEntry, error) {
	key = strings.ToLower(key)
	entry, ok := config[key]
	if !ok {
		return key, entry, &commands.CliError{
			Text:        fmt.Sprintf("config key \"%s\" does not exist", key),
			Suggestions: []string{"Use one of: " + strings.Join(keys(), ", ")},
		}
	}
	return key, entry, nil
}

func keys() []string {
	k := maps.Keys(config)
	slices.Sort(k)
	return k
}
