package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/cmdlog"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/commands"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/config"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/instances"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/launcher"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/ownhttp"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/picker"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/versions"
)

// session holds everything a command needs for one run
type session struct {
	cfg      *config.Config
	fs       afero.Fs
	client   *http.Client
	logger   *cmdlog.Logger
	instance *instances.Instance
	loader   *versions.Loader
}

func newSession() (*session, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, &commands.CliError{Text: err.Error(), Err: err}
	}

	client := ownhttp.New(ownhttp.UserAgent(Version, cfg.Platform.Name), ownhttp.NewLimiter(cfg.RateLimit))
	fs := afero.NewOsFs()
	instance := instances.New(fs, cfg.GameDir, cfg.Platform)
	if err := instance.EnsureLayout(); err != nil {
		return nil, err
	}

	// the version list is small, a total timeout is fine here
	listClient := &http.Client{Transport: client.Transport, Timeout: cfg.Timeout}
	loader := versions.NewLoader(listClient, fs, filepath.Join(instance.CacheDir(), "manifest.json"))

	return &session{
		cfg:      cfg,
		fs:       fs,
		client:   client,
		logger:   cmdlog.New(),
		instance: instance,
		loader:   loader,
	}, nil
}

func (s *session) launcher() *launcher.Launcher {
	l := launcher.New(s.cfg, s.fs, s.client, s.logger)
	l.Version = Version
	return l
}

func (s *session) loadVersions(ctx context.Context) (*versions.Manifest, error) {
	m, err := s.loader.Load(ctx, s.cfg.Refresh)
	if errors.Is(err, versions.ErrNoVersionList) {
		return nil, &commands.CliError{
			Text: "Failed to fetch version manifest and no cache available",
			Err:  err,
			Suggestions: []string{
				"Check your internet connection",
			},
		}
	}
	return m, err
}

// selectVersion returns the version id to launch and the url of its descriptor.
// The url is empty if the last version is launched offline
func (s *session) selectVersion(ctx context.Context, id string) (string, string, error) {
	last := s.instance.LastVersion()
	if id == "" && s.cfg.Offline && last != "" {
		s.logger.Success(fmt.Sprintf("Local Authentication Active: Loading %s", last))
		return last, "", nil
	}

	m, err := s.loadVersions(ctx)
	if err != nil {
		return "", "", err
	}

	var release *versions.Release
	if id != "" {
		r, ok := m.Find(id)
		if !ok {
			return "", "", &commands.CliError{
				Text: fmt.Sprintf("version %s could not be found", id),
				Err:  versions.ErrUnknownVersion,
				Suggestions: []string{
					"Run with --refresh to update the version list",
					"List the available versions with \"nuxcraft versions\"",
				},
			}
		}
		release = r
	} else {
		p := picker.New()
		p.Interactive = p.Interactive && !s.cfg.NonInteractive
		release, err = p.Pick(ctx, m.Filter(versions.Types(s.cfg.Snapshots, s.cfg.Beta)...), last)
		if err != nil {
			return "", "", err
		}
	}

	if err := s.instance.SaveLastVersion(release.ID); err != nil {
		return "", "", err
	}
	return release.ID, release.URL, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
