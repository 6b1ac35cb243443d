package instances

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/minecraft"
)

// ReconstructResources copies the asset objects to resources/<name> so that
// versions before 1.6 find their sounds. Existing files are kept.
// It returns the number of copied files
func (i *Instance) ReconstructResources(index *minecraft.AssetIndex) int {
	names := make([]string, 0, len(index.Objects))
	for name := range index.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	copied := 0
	for _, name := range names {
		obj := index.Objects[name]
		if !obj.Valid() {
			continue
		}
		src := filepath.Join(i.AssetObjectsDir(), filepath.FromSlash(obj.UnixPath()))
		dst := filepath.Join(i.ResourcesDir(), filepath.FromSlash(name))

		if ok, _ := afero.Exists(i.Fs, src); !ok {
			continue
		}
		if ok, _ := afero.Exists(i.Fs, dst); ok {
			continue
		}
		if err := i.copyFile(src, dst); err != nil {
			log.Printf("[WARN] could not copy %s to %s: %v", src, dst, err)
			continue
		}
		copied++
	}
	return copied
}

func (i *Instance) copyFile(src string, dst string) error {
	if err := i.Fs.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return err
	}
	in, err := i.Fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := i.Fs.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
