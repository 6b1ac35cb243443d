package instances

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const lastVersionFile = "last_version.txt"

// LastVersion returns the id of the last launched version or "" if there is none
func (i *Instance) LastVersion() string {
	buf, err := afero.ReadFile(i.Fs, filepath.Join(i.CacheDir(), lastVersionFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(buf))
}

// SaveLastVersion remembers id for the next `--last` launch
func (i *Instance) SaveLastVersion(id string) error {
	if err := i.Fs.MkdirAll(i.CacheDir(), os.ModePerm); err != nil {
		return err
	}
	return afero.WriteFile(i.Fs, filepath.Join(i.CacheDir(), lastVersionFile), []byte(id), 0o644)
}
