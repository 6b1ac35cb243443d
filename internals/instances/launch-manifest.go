package instances

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/minecraft"
)

var (
	// ErrNoLaunchManifest is returned if the version json is not on disk
	ErrNoLaunchManifest = errors.New("version json is missing")
	// ErrNoAssetIndex is returned if the asset index is not on disk
	ErrNoAssetIndex = errors.New("asset index is missing")
)

// ReadLaunchManifest reads the version json of id
func (i *Instance) ReadLaunchManifest(id string) (*minecraft.LaunchManifest, error) {
	man := &minecraft.LaunchManifest{}
	if err := i.readJSON(i.LaunchManifestPath(id), man); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoLaunchManifest, i.LaunchManifestPath(id))
		}
		return nil, fmt.Errorf("could not read version json of %s: %w", id, err)
	}
	// custom versions sometimes lack the id
	if man.ID == "" {
		man.ID = id
	}
	return man, nil
}

// ReadAssetIndex reads the asset index referenced by man
func (i *Instance) ReadAssetIndex(man *minecraft.LaunchManifest) (*minecraft.AssetIndex, error) {
	index := &minecraft.AssetIndex{}
	path := i.AssetIndexPath(man.AssetIndexID())
	if err := i.readJSON(path, index); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoAssetIndex, path)
		}
		return nil, fmt.Errorf("could not read asset index %s: %w", man.AssetIndexID(), err)
	}
	return index, nil
}

func (i *Instance) readJSON(path string, v interface{}) error {
	buf, err := afero.ReadFile(i.Fs, path)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, v)
}
