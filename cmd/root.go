package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iamfatinilham/nuxcraft-pycher/cmd/config"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/commands"
	iconfig "github.com/iamfatinilham/nuxcraft-pycher/internals/config"
)

// Version is set by main
var Version = "dev"

// Commit is set by main
var Commit string

var (
	cfgFile       string
	disableColors bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nuxcraft [version]",
	Short: "NuxCraft-PyCher at your service.",
	Long:  "Download, verify and launch Minecraft versions with an offline player",
	Args:  cobra.MaximumNArgs(1),

	Example: `
  nuxcraft
  nuxcraft 1.20.1 -p Steve -m 4G
  nuxcraft --last
  nuxcraft download 1.8.9 --threads 4`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// It returns the exit code
func Execute(ctx context.Context) int {
	rootCmd.Version = Version
	if Commit != "" {
		rootCmd.Version += " (" + Commit + ")"
	}
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return commands.PrintError(os.Stdout, err)
	}
	return 0
}

// flagAliases maps the alternative flag names to the canonical ones
var flagAliases = map[string]string{
	"last":                "offline",
	"dhp":                 "disable-huge-pages",
	"dlp":                 "disable-huge-pages",
	"disable-large-pages": "disable-huge-pages",
	"demo-mode":           "demo",
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.SetNormalizeFunc(normalizeFlagName)

	flags.StringVar(&cfgFile, "config", "", "config file (default is $CONFIG_DIR/nuxcraft/config.toml)")
	flags.BoolVarP(&disableColors, "no-color", "", false, "disable color output")

	flags.StringP("player", "p", iconfig.DefaultPlayer, "Set player username")
	flags.String("java", "java", "Java binary path")
	flags.String("game-dir", iconfig.DefaultGameDir, "Custom game directory")
	flags.StringP("memory", "m", iconfig.DefaultMemory, "RAM (e.g. 8G or 4096M)")
	flags.IntP("threads", "t", 0, "Max number of download threads (default is the number of CPUs)")
	flags.String("platform", "", "Overwrite the detected platform (linux, windows or osx)")
	flags.Bool("offline", false, "Launch the last version without network access (alias --last)")
	flags.BoolP("refresh", "R", false, "Fetch the version list and descriptor from the internet")
	flags.BoolP("recheck", "r", false, "Ignore the integrity marker and verify all files again")
	flags.BoolP("snapshots", "s", false, "Show snapshot releases")
	flags.BoolP("beta", "b", false, "Show old beta releases")
	flags.BoolP("old", "O", false, "Old version compatibility (legacy sounds, no native access flag)")
	flags.String("jvm-flags", "", "Extra flags for the JVM")
	flags.String("game-flags", "", "Extra flags for the game")
	flags.Bool("openal", false, "Use the system OpenAL if possible")
	flags.Bool("no-openal", false, "Never use the system OpenAL")
	flags.Bool("disable-huge-pages", false, "Disable huge pages (alias --dhp, --dlp)")
	flags.BoolP("fullscreen", "f", false, "Launch the game in fullscreen mode")
	flags.Bool("demo", false, "Launch the game in demo mode")
	flags.BoolP("verbose", "v", false, "Print debug logs")
	flags.Int("rate-limit", 0, "Max requests per second (0 is unlimited)")
	flags.Duration("timeout", 0, "Max time a download may stall (default 15s)")
	flags.Bool("non-interactive", false, "Disable menus and spinners")
	flags.Bool("retry-missing-only", false, "Only download missing files in retry rounds")

	bindFlags(flags)

	rootCmd.AddCommand(config.SubCmd)
}

func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// bindFlags binds every flag to the config key of the same name without dashes
func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "no-color" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "")
		if err := viper.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors || os.Getenv("CI") != "" {
		gchalk.SetLevel(gchalk.LevelNone)
		commands.EmojiEnabled = false
	}

	// a .env file in the working directory is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Println("Could not read .env file:", err)
	}

	iconfig.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix("NUXCRAFT")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if configDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(configDir, "nuxcraft"))
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	// If a config file is found, read it in.
	configErr := viper.ReadInConfig()

	if !viper.GetBool(iconfig.KeyVerbose) {
		log.SetOutput(io.Discard)
	}
	if configErr == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
}
