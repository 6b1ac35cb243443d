package instances

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/platform"
)

// layout lists every directory created on startup (relative to the game directory)
var layout = []string{
	"versions",
	"libraries",
	"assets/indexes",
	"assets/objects",
	"resources",
	"cache",
	"logs",
}

// Instance describes a local game directory. It contains the versions,
// libraries, assets, caches and logs
type Instance struct {
	// Directory is the absolute game directory
	Directory string
	Fs        afero.Fs
	Platform  platform.Platform
}

// New returns an instance stored in dir
func New(fs afero.Fs, dir string, p platform.Platform) *Instance {
	return &Instance{Directory: dir, Fs: fs, Platform: p}
}

// EnsureLayout creates all directories the launcher writes to
func (i *Instance) EnsureLayout() error {
	for _, dir := range layout {
		if err := i.Fs.MkdirAll(filepath.Join(i.Directory, filepath.FromSlash(dir)), os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

// VersionsDir returns the path to the versions directory
func (i *Instance) VersionsDir() string {
	return filepath.Join(i.Directory, "versions")
}

// VersionDir returns the directory of a single version
func (i *Instance) VersionDir(id string) string {
	return filepath.Join(i.VersionsDir(), id)
}

// LaunchManifestPath returns the path of the version json
func (i *Instance) LaunchManifestPath(id string) string {
	return filepath.Join(i.VersionDir(id), id+".json")
}

// ClientJarPath returns the path of the client jar
func (i *Instance) ClientJarPath(id string) string {
	return filepath.Join(i.VersionDir(id), id+".jar")
}

// NativesDir returns the directory native libraries are extracted to
func (i *Instance) NativesDir(id string) string {
	return filepath.Join(i.VersionDir(id), "natives")
}

// AssetsDir returns the path to the assets directory
func (i *Instance) AssetsDir() string {
	return filepath.Join(i.Directory, "assets")
}

// AssetIndexPath returns the path of an asset index
func (i *Instance) AssetIndexPath(id string) string {
	return filepath.Join(i.AssetsDir(), "indexes", id+".json")
}

// AssetObjectsDir returns the path to the content addressed asset store
func (i *Instance) AssetObjectsDir() string {
	return filepath.Join(i.AssetsDir(), "objects")
}

// LibrariesDir returns the path to the libraries directory
func (i *Instance) LibrariesDir() string {
	return filepath.Join(i.Directory, "libraries")
}

// ResourcesDir returns the path to the legacy resources directory
func (i *Instance) ResourcesDir() string {
	return filepath.Join(i.Directory, "resources")
}

// CacheDir returns the path to the cache directory
func (i *Instance) CacheDir() string {
	return filepath.Join(i.Directory, "cache")
}

// LogsDir returns the path to the logs directory
func (i *Instance) LogsDir() string {
	return filepath.Join(i.Directory, "logs")
}
