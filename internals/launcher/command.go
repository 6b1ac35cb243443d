package launcher

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/auth"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/instances"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/platform"
)

// openALPath is the system OpenAL library that replaces the bundled one
const openALPath = "/usr/lib/libopenal.so.1"

// Command is the complete launch command
type Command struct {
	Args      []string
	HugePages HugePages
}

// BuildCommand returns the java command line. Prepare has to be called first
func (l *Launcher) BuildCommand() (*Command, error) {
	if l.LaunchManifest == nil || l.Resolution == nil {
		return nil, fmt.Errorf("launcher is not prepared")
	}
	cfg := l.Config
	man := l.LaunchManifest
	nativesDir := l.Instance.NativesDir(man.ID)

	data, err := (&auth.Offline{Name: cfg.Player}).LaunchAuthData()
	if err != nil {
		return nil, err
	}

	args := []string{cfg.Java}
	args = append(args, HeapFlags(ParseMemory(cfg.Memory))...)

	hugePages := l.hugePages()
	if hugePages == HugePagesEnabled {
		args = append(args, hugePagesFlags...)
	}

	if !cfg.Old {
		args = append(args, "--enable-native-access=ALL-UNNAMED")
	}

	if l.useOpenAL() {
		args = append(args,
			"-Dorg.lwjgl.util.NoChecks=true",
			"-Dorg.lwjgl.librarypath="+nativesDir,
			"-Dnet.java.games.input.librarypath="+nativesDir,
		)
	}

	args = append(args,
		"-Djava.library.path="+nativesDir,
		"-Djna.library.path="+nativesDir,
		fmt.Sprintf("-Dminecraft.launcher.brand=%s(%s)", Name, l.Version),
	)
	args = append(args, cfg.JVMFlags...)

	params := instances.LaunchParams{
		Auth:            data,
		Classpath:       l.Resolution.Classpath,
		NativesDir:      nativesDir,
		LauncherName:    Name,
		LauncherVersion: l.Version,
	}
	if l.legacyResources() {
		params.GameAssets = l.Instance.ResourcesDir()
	}
	args = append(args, l.Instance.BuildArguments(man, params)...)

	args = append(args, cfg.GameFlags...)
	if cfg.Fullscreen {
		args = append(args, "--fullscreen")
	}
	if cfg.Demo {
		args = append(args, "--demo")
	}

	return &Command{Args: args, HugePages: hugePages}, nil
}

// useOpenAL reports if the system OpenAL should be used. Only linux ships it
// in a well known place
func (l *Launcher) useOpenAL() bool {
	if l.Config.Platform.Name != platform.Linux.Name || !l.Config.UseOpenAL() {
		return false
	}
	ok, _ := afero.Exists(l.fs(), openALPath)
	return ok
}
