package integrity

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// MarkerName is the file name of the integrity marker inside a version directory
const MarkerName = ".integrity_passed"

// Marker is the persisted "all files of this version were verified" flag.
// Only its presence matters
type Marker struct {
	fs   afero.Fs
	path string
}

// MarkerFor returns the marker of the version stored in versionDir
func MarkerFor(fs afero.Fs, versionDir string) Marker {
	return Marker{fs: fs, path: filepath.Join(versionDir, MarkerName)}
}

// Path returns the marker file path
func (m Marker) Path() string {
	return m.path
}

// Exists returns true if the marker was written before
func (m Marker) Exists() bool {
	ok, err := afero.Exists(m.fs, m.path)
	return err == nil && ok
}

// Write persists the marker
func (m Marker) Write() error {
	if err := m.fs.MkdirAll(filepath.Dir(m.path), os.ModePerm); err != nil {
		return err
	}
	return afero.WriteFile(m.fs, m.path, []byte("OK"), 0o644)
}

// Remove deletes the marker. A missing marker is not an error
func (m Marker) Remove() error {
	err := m.fs.Remove(m.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
