package launcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/jwalton/gchalk"
	"github.com/spf13/afero"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/commands"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/downloadmgr"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/instances"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/integrity"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/natives"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/versions"
)

// Prepare ensures everything that is needed to launch version id exists.
// descriptorURL may be empty if the descriptor was downloaded before
func (l *Launcher) Prepare(ctx context.Context, id string, descriptorURL string) error {
	instance := l.Instance

	l.printIntro(id)

	if err := instance.EnsureLayout(); err != nil {
		return err
	}

	task := l.Logger.NewTask(4)
	task.Step("📄", "Reading version descriptor")
	if err := l.prepareLaunchManifest(ctx, id, descriptorURL); err != nil {
		return err
	}
	man := l.LaunchManifest
	marker := integrity.MarkerFor(l.fs(), instance.VersionDir(id))

	task.Step("🔎", "Resolving files")
	indexTask, err := l.prepareAssetIndex(ctx, marker)
	if err != nil {
		return err
	}

	l.Resolution = instance.ResolveLibraries(man)
	var queue downloadmgr.Queue
	queue.Add(l.Resolution.Tasks()...)
	if indexTask != nil {
		queue.Add(*indexTask)
	}
	if l.AssetIndex != nil {
		queue.Add(instance.ResolveAssets(l.AssetIndex, l.ResourcesURL)...)
	}
	tasks := queue.Tasks()
	fmt.Println(commands.PipeText.Render(fmt.Sprintf(
		"%d libraries, %d natives, %d files total",
		len(l.Resolution.Libraries),
		len(l.Resolution.Natives),
		len(tasks),
	)))

	task.Step("🌐", "Downloading & verifying")
	if err := l.verify(ctx, marker, tasks); err != nil {
		return err
	}

	if l.legacyResources() && l.AssetIndex != nil {
		n := instance.ReconstructResources(l.AssetIndex)
		l.Logger.Log(fmt.Sprintf("Reconstructed %d legacy sound files", n))
	}

	task.Step("📦", "Extracting natives")
	extractor := natives.New(l.fs(), l.Config.Platform)
	extracted, err := extractor.Extract(l.Resolution.NativeArchives(), l.Resolution.Classpath, instance.NativesDir(id))
	if err != nil {
		return err
	}
	if extracted != 0 {
		l.Logger.Log(fmt.Sprintf("Extracted %d natives (%s)", extracted, l.Config.Platform.Name))
	}

	return nil
}

// prepareLaunchManifest downloads the version descriptor if it is missing
// (or a refresh was requested) and reads it
func (l *Launcher) prepareLaunchManifest(ctx context.Context, id string, descriptorURL string) error {
	instance := l.Instance
	target := instance.LaunchManifestPath(id)

	exists, _ := afero.Exists(l.fs(), target)
	if !l.Config.Offline && descriptorURL != "" && (l.Config.Refresh || !exists) {
		outcome := l.fetcher().Fetch(ctx, downloadmgr.NewTask(descriptorURL, target, ""))
		if outcome.Status == downloadmgr.Failed {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[WARN] could not download version descriptor: %v", outcome.Err)
		}
	}

	man, err := instance.ReadLaunchManifest(id)
	if errors.Is(err, instances.ErrNoLaunchManifest) {
		return &commands.CliError{
			Text: fmt.Sprintf("version descriptor for %s is missing", id),
			Err:  err,
			Suggestions: []string{
				"Run without --offline to download it",
				"Check your internet connection",
			},
		}
	}
	if err != nil {
		return err
	}
	if err := man.Validate(); err != nil {
		return err
	}
	l.LaunchManifest = man
	return nil
}

// prepareAssetIndex downloads the asset index unless the version was verified
// before and reads it. Without a verified marker a missing index is fatal, the
// marker would otherwise hide the assets for good. A verified version with a
// missing index only skips the assets
func (l *Launcher) prepareAssetIndex(ctx context.Context, marker integrity.Marker) (*downloadmgr.Task, error) {
	man := l.LaunchManifest
	instance := l.Instance
	unverified := l.Config.Recheck || !marker.Exists()

	// custom versions may ship the index without a url
	var task *downloadmgr.Task
	if man.AssetIndex.URL != "" {
		t := downloadmgr.NewTask(man.AssetIndex.URL, instance.AssetIndexPath(man.AssetIndexID()), man.AssetIndex.Sha1)
		task = &t
	}

	if task != nil && !l.Config.Offline && unverified {
		if outcome := l.fetcher().Fetch(ctx, *task); outcome.Status == downloadmgr.Failed {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("[WARN] could not download asset index: %v", outcome.Err)
		}
	}

	index, err := instance.ReadAssetIndex(man)
	if err == nil {
		l.AssetIndex = index
		return task, nil
	}
	if task == nil || l.Config.Offline || !unverified {
		log.Printf("[WARN] %v", err)
		return nil, nil
	}
	return nil, &commands.CliError{
		Text: fmt.Sprintf("asset index %s of %s could not be downloaded", man.AssetIndexID(), man.ID),
		Err:  err,
		Suggestions: []string{
			"Check your internet connection and try again",
		},
	}
}
