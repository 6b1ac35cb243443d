package launcher

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/gchalk"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/commands"
)

// LaunchLogName is the file in the logs directory the game output is written to
const LaunchLogName = "latest_launch.log"

// Run starts the game detached from this process. The command line and the
// game output are written to the launch log
func (l *Launcher) Run(command *Command) error {
	l.reportHugePages(command.HugePages)
	l.printSummary()

	logPath := filepath.Join(l.Instance.LogsDir(), LaunchLogName)
	f, err := l.fs().Create(logPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeLaunchHeader(f, l.Config.Platform.Name, command.Args); err != nil {
		return err
	}

	cmd := exec.Command(command.Args[0], command.Args[1:]...)
	cmd.Dir = l.Instance.Directory
	// on disk this is an *os.File, the child writes to it directly
	cmd.Stdout = f
	cmd.Stderr = f
	l.Cmd = cmd

	fmt.Println("│")
	fmt.Println(
		lipgloss.JoinHorizontal(
			0.5,
			gchalk.Hex("#7a563b")("│"+"\n"+"┕"),
			commands.StyleGrass.Render(commands.Emoji("⛏  ")+"Launching Minecraft"),
		),
	)

	runtime.GC()
	if err := l.start(cmd); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return &commands.CliError{Text: err.Error(), Err: err}
		}
		return err
	}

	l.Logger.Success("Game launch started.")
	l.Logger.Info("Please, be patient... Game output goes to " + logPath)
	return nil
}

// writeLaunchHeader writes the executed command and a divider
func writeLaunchHeader(w io.Writer, platformName string, args []string) error {
	divider := strings.Repeat("-", 25)
	_, err := fmt.Fprintf(
		w,
		"    (PLATFORM: %s) COMMAND EXECUTED:\n\n%s\n\n%s GAME OUTPUT START %s\n\n",
		platformName,
		strings.Join(args, " "),
		divider,
		divider,
	)
	return err
}

func (l *Launcher) printSummary() {
	cfg := l.Config
	l.Logger.Info("")
	l.Logger.Info(commands.Emoji("👍 ") + "Finalizing...")
	logger := l.Logger.Indent(4)
	logger.Info("Game Version: " + l.LaunchManifest.ID)
	logger.Info("Player Name: " + cfg.Player)
	logger.Info("Max Allocated RAM: " + cfg.Memory)
	logger.Infof("Max Thread Count: %d", cfg.Threads)

	for _, w := range memoryWarnings(ParseMemory(cfg.Memory)) {
		l.Logger.Warn(w)
	}
	if w := cfg.PlayerNameWarning(); w != "" {
		l.Logger.Warn(w)
	}
	if cfg.Demo {
		l.Logger.Warn("DEMO MODE enabled. Have a nice 1 Hour 40 Minutes demo!")
	}
}

// startDetached starts cmd in its own session and does not wait for it
func startDetached(cmd *exec.Cmd) error {
	cmd.SysProcAttr = detachedAttr()
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
