// Package platform describes the few things that differ between the
// operating systems the launcher supports.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is everything the resolver, the extractor and the command builder
// need to know about the target operating system
type Platform struct {
	// Name is the os name used in launcher manifest rules ("linux", "windows", "osx")
	Name string
	// Aliases are other spellings of Name found in (older) manifests
	Aliases []string
	// Arch is the architecture in manifest notation ("x64", "x86", "arm64" …)
	Arch string
	// ClassifierKey selects the native classifier of a library ("natives-linux")
	ClassifierKey string
	// PathSeparator joins classpath entries
	PathSeparator string
	// NativeExt lists file extensions of native libraries inside native jars
	NativeExt []string
}

var (
	// Linux is the linux platform
	Linux = Platform{
		Name:          "linux",
		ClassifierKey: "natives-linux",
		PathSeparator: ":",
		NativeExt:     []string{".so"},
	}
	// Windows is the windows platform. Old manifests use "win" instead of "windows"
	Windows = Platform{
		Name:          "windows",
		Aliases:       []string{"win"},
		ClassifierKey: "natives-windows",
		PathSeparator: ";",
		NativeExt:     []string{".dll"},
	}
	// MacOS is the macOS platform. Mojang historically calls it "osx"
	MacOS = Platform{
		Name:          "osx",
		Aliases:       []string{"macos"},
		ClassifierKey: "natives-osx",
		PathSeparator: ":",
		NativeExt:     []string{".dylib", ".jnilib"},
	}
)

// Matches returns true if the given manifest os name refers to this platform
func (p Platform) Matches(osName string) bool {
	if osName == p.Name {
		return true
	}
	for _, alias := range p.Aliases {
		if osName == alias {
			return true
		}
	}
	return false
}

// IsNative returns true if the given file name has a native library extension
func (p Platform) IsNative(name string) bool {
	for _, ext := range p.NativeExt {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// ArchBits returns "64" or "32". It is used to expand the ${arch} token in
// legacy native classifier names like "natives-windows-${arch}"
func (p Platform) ArchBits() string {
	switch p.Arch {
	case "x86", "arm32":
		return "32"
	default:
		return "64"
	}
}

// WithArch returns a copy of p with the architecture set
func (p Platform) WithArch(goarch string) Platform {
	p.Arch = archMap(goarch)
	return p
}

// Detect returns the platform this binary is running on
func Detect() Platform {
	p, err := ByName(runtime.GOOS)
	if err != nil {
		// unknown unix-like system. linux is the closest guess
		p = Linux
	}
	return p.WithArch(runtime.GOARCH)
}

// ByName returns a platform by its go (GOOS) or manifest name
func ByName(name string) (Platform, error) {
	switch strings.ToLower(name) {
	case "linux":
		return Linux.WithArch(runtime.GOARCH), nil
	case "windows", "win":
		return Windows.WithArch(runtime.GOARCH), nil
	case "darwin", "osx", "macos":
		return MacOS.WithArch(runtime.GOARCH), nil
	}
	return Platform{}, fmt.Errorf("unsupported platform %q (use linux, windows or osx)", name)
}

func archMap(arch string) string {
	switch arch {
	case "amd64", "x86_64":
		return "x64"
	case "386", "i386":
		return "x86"
	case "arm":
		return "arm32"
	}
	// arm64 and others keep their go name
	return arch
}
