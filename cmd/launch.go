package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/commands"
)

func init() {
	runner := &launchRunner{}
	commands.New(rootCmd, runner)
	rootCmd.Flags().BoolVar(&runner.downloadOnly, "download-only", false, "Only download game files")

	cmd := commands.New(&cobra.Command{
		Use:     "launch [version]",
		Short:   "Launch a Minecraft version (the default command)",
		Aliases: []string{"run", "start", "play"},
		Args:    cobra.MaximumNArgs(1),
	}, &launchRunner{})
	rootCmd.AddCommand(cmd.Command)

	download := commands.New(&cobra.Command{
		Use:   "download [version]",
		Short: "Download and verify a Minecraft version without launching it",
		Args:  cobra.MaximumNArgs(1),
	}, &launchRunner{downloadOnly: true})
	rootCmd.AddCommand(download.Command)
}

type launchRunner struct {
	downloadOnly bool
}

func (l *launchRunner) RunE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := newSession()
	if err != nil {
		return err
	}

	id, url, err := s.selectVersion(ctx, firstArg(args))
	if err != nil {
		return err
	}

	launcher := s.launcher()
	if err := launcher.Prepare(ctx, id, url); err != nil {
		return err
	}

	if l.downloadOnly {
		s.logger.Success(fmt.Sprintf("Game %s Downloaded Successfully", id))
		s.logger.Success(fmt.Sprintf("%s library included...", s.cfg.Platform.Name))
		return nil
	}

	if err := launcher.CheckJava(ctx); err != nil {
		return err
	}
	command, err := launcher.BuildCommand()
	if err != nil {
		return err
	}
	return launcher.Run(command)
}
