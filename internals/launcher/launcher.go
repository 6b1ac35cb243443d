package launcher

import (
	"net/http"
	"os/exec"

	"github.com/spf13/afero"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/cmdlog"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/config"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/instances"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/minecraft"
)

// Name is used as launcher brand
const Name = "NuxCraft-PyCher"

// Launcher prepares and launches one game version with CLI output
type Launcher struct {
	Config *config.Config
	// Instance is the game directory the version is installed to
	Instance *instances.Instance
	Client   *http.Client
	Logger   *cmdlog.Logger

	// Version is the version number of this launcher
	Version string

	// LaunchManifest is set after calling `Prepare`
	LaunchManifest *minecraft.LaunchManifest
	// Resolution is set after calling `Prepare`
	Resolution *instances.Resolution
	// AssetIndex is set after calling `Prepare`. It can be nil if the index is missing
	AssetIndex *minecraft.AssetIndex

	// NonInteractive disables spinners
	NonInteractive bool
	// ResourcesURL is the base url of asset objects. Defaults to the mojang servers
	ResourcesURL string

	Cmd *exec.Cmd

	// start is replaced in tests
	start func(cmd *exec.Cmd) error
}

// New returns a launcher for the game directory in cfg
func New(cfg *config.Config, fs afero.Fs, client *http.Client, logger *cmdlog.Logger) *Launcher {
	return &Launcher{
		Config:         cfg,
		Instance:       instances.New(fs, cfg.GameDir, cfg.Platform),
		Client:         client,
		Logger:         logger,
		NonInteractive: cfg.NonInteractive,
		start:          startDetached,
	}
}

func (l *Launcher) fs() afero.Fs {
	return l.Instance.Fs
}
