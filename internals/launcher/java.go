package launcher

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/commands"
)

// ErrJavaNotFound is returned if the java binary can not be found
var ErrJavaNotFound = errors.New("java binary not found")

var javaVersionRegex = regexp.MustCompile(`version "([^"]+)"`)

// parseJavaMajor returns the major version from `java -version` output.
// "1.8.0_382" is java 8, "17.0.8" is java 17
func parseJavaMajor(output string) (int, error) {
	match := javaVersionRegex.FindStringSubmatch(output)
	if match == nil {
		return 0, fmt.Errorf("unexpected java -version output")
	}
	raw := match[1]
	// "1.8.0_382" and "17-ea" are not valid semver
	raw = strings.SplitN(raw, "_", 2)[0]
	raw = strings.SplitN(raw, "-", 2)[0]

	v, err := semver.NewVersion(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid java version %q: %w", match[1], err)
	}
	if v.Major() == 1 {
		return int(v.Minor()), nil
	}
	return int(v.Major()), nil
}

// JavaMajor runs `<java> -version` and returns the major version
func (l *Launcher) JavaMajor(ctx context.Context) (int, error) {
	bin, err := exec.LookPath(l.Config.Java)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrJavaNotFound, l.Config.Java)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	// java prints the version to stderr
	out, err := exec.CommandContext(ctx, bin, "-version").CombinedOutput()
	if err != nil {
		return 0, err
	}
	return parseJavaMajor(string(out))
}

// CheckJava warns if the java runtime is older than the version requires.
// It fails if there is no java binary at all
func (l *Launcher) CheckJava(ctx context.Context) error {
	required := l.LaunchManifest.JavaVersion.MajorVersion
	major, err := l.JavaMajor(ctx)
	if errors.Is(err, ErrJavaNotFound) {
		return &commands.CliError{
			Text: err.Error(),
			Err:  err,
			Suggestions: []string{
				"Install java or set the java binary with --java",
			},
		}
	}
	if err != nil {
		l.Logger.Warnf("Could not detect the java version: %v", err)
		return nil
	}

	l.Logger.Log(fmt.Sprintf("Java %d (%s)", major, l.Config.Java))
	if required != 0 && major < required {
		l.Logger.Warnf("Minecraft %s requires Java %d but %s is Java %d", l.LaunchManifest.ID, required, l.Config.Java, major)
	}
	return nil
}
