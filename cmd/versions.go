package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/commands"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/picker"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/versions"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:     "versions",
		Short:   "List the available Minecraft versions",
		Aliases: []string{"list", "ls"},
		Args:    cobra.NoArgs,
	}, &versionsRunner{})
	rootCmd.AddCommand(cmd.Command)

	javaCmd := commands.New(&cobra.Command{
		Use:   "java-version [version]",
		Short: "Print the Java major version a Minecraft version requires",
		Args:  cobra.MaximumNArgs(1),
	}, &javaVersionRunner{})
	rootCmd.AddCommand(javaCmd.Command)
}

type versionsRunner struct{}

func (v *versionsRunner) RunE(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	m, err := s.loadVersions(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Latest release: %s | Latest snapshot: %s\n", gchalk.Bold(m.Latest.Release), gchalk.Bold(m.Latest.Snapshot))
	fmt.Print(picker.Menu(m.Filter(versions.Types(s.cfg.Snapshots, s.cfg.Beta)...), s.instance.LastVersion()))
	return nil
}

type javaVersionRunner struct{}

func (j *javaVersionRunner) RunE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := newSession()
	if err != nil {
		return err
	}
	m, err := s.loadVersions(ctx)
	if err != nil {
		return err
	}

	var release *versions.Release
	if id := firstArg(args); id != "" {
		r, ok := m.Find(id)
		if !ok {
			return &commands.CliError{Text: fmt.Sprintf("version %s could not be found", id), Err: versions.ErrUnknownVersion}
		}
		release = r
	} else {
		p := picker.New()
		p.Interactive = p.Interactive && !s.cfg.NonInteractive
		release, err = p.Pick(ctx, m.Filter(versions.Types(s.cfg.Snapshots, s.cfg.Beta)...), s.instance.LastVersion())
		if err != nil {
			return err
		}
	}

	fmt.Printf("\nSelected: %s\n", release.ID)
	fmt.Println("Fetching Java requirement...")
	major, err := s.loader.JavaMajor(ctx, release)
	if err != nil {
		return err
	}
	fmt.Printf("  %sRequired Java Major Version: %s\n", commands.Emoji("☕ "), gchalk.Bold(gchalk.Green(fmt.Sprint(major))))
	return nil
}
