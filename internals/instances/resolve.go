package instances

import (
	"log"
	"path/filepath"
	"sort"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/downloadmgr"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/minecraft"
)

// Resolution is everything that has to be on disk to launch a version
type Resolution struct {
	// Classpath starts with the client jar followed by the libraries in manifest order
	Classpath []string
	// Libraries are the client jar and all library jars
	Libraries []downloadmgr.Task
	// Natives are the native classifier jars. They are not part of the classpath
	Natives []downloadmgr.Task
}

// NativeArchives returns the local paths of all native jars
func (r *Resolution) NativeArchives() []string {
	paths := make([]string, len(r.Natives))
	for i, t := range r.Natives {
		paths[i] = t.Target
	}
	return paths
}

// Tasks returns the library and native tasks
func (r *Resolution) Tasks() []downloadmgr.Task {
	tasks := make([]downloadmgr.Task, 0, len(r.Libraries)+len(r.Natives))
	tasks = append(tasks, r.Libraries...)
	return append(tasks, r.Natives...)
}

// ResolveLibraries walks the libraries of man and returns the classpath and
// download tasks for this instance's platform. Every target path is only
// returned once, the first occurrence wins
func (i *Instance) ResolveLibraries(man *minecraft.LaunchManifest) *Resolution {
	libDir := i.LibrariesDir()
	seen := make(map[string]struct{})
	fresh := func(path string) bool {
		if _, ok := seen[path]; ok {
			return false
		}
		seen[path] = struct{}{}
		return true
	}

	jar := i.ClientJarPath(man.ID)
	fresh(jar)
	res := &Resolution{Classpath: []string{jar}}
	if client := man.Downloads.Client; client.URL != "" {
		res.Libraries = append(res.Libraries, artifactTask(&client, jar))
	}

	for _, lib := range man.Libraries {
		if !lib.Rules.Allowed(i.Platform) {
			continue
		}

		if artifact := lib.MainArtifact(); artifact != nil {
			path := filepath.Join(libDir, filepath.FromSlash(artifact.Path))
			if fresh(path) {
				res.Libraries = append(res.Libraries, artifactTask(artifact, path))
				res.Classpath = append(res.Classpath, path)
			}
		}

		if native := lib.NativeArtifact(i.Platform); native != nil {
			path := filepath.Join(libDir, filepath.FromSlash(native.Path))
			if fresh(path) {
				res.Natives = append(res.Natives, artifactTask(native, path))
			}
		}
	}

	return res
}

func artifactTask(a *minecraft.Artifact, target string) downloadmgr.Task {
	return downloadmgr.Task{URL: a.URL, Target: target, Sha1: a.Sha1, Size: a.SizeHint()}
}

// ResolveAssets returns one download task per distinct asset object.
// resourcesURL defaults to minecraft.ResourcesURL. Tasks are sorted by hash
func (i *Instance) ResolveAssets(index *minecraft.AssetIndex, resourcesURL string) []downloadmgr.Task {
	byHash := make(map[string]minecraft.AssetObject, len(index.Objects))
	for name, obj := range index.Objects {
		if !obj.Valid() {
			log.Printf("[WARN] skipping asset %s with invalid hash %q", name, obj.Hash)
			continue
		}
		byHash[obj.Hash] = obj
	}

	hashes := make([]string, 0, len(byHash))
	for hash := range byHash {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)

	objects := i.AssetObjectsDir()
	tasks := make([]downloadmgr.Task, 0, len(hashes))
	for _, hash := range hashes {
		obj := byHash[hash]
		tasks = append(tasks, downloadmgr.Task{
			URL:    obj.DownloadURL(resourcesURL),
			Target: filepath.Join(objects, filepath.FromSlash(obj.UnixPath())),
			Sha1:   obj.Hash,
			Size:   obj.Size,
		})
	}
	return tasks
}
