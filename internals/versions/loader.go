package versions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	// PrimaryURL is tried first
	PrimaryURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"
	// FallbackURL is used when PrimaryURL fails
	FallbackURL = "https://piston-meta.mojang.com/mc/game/version_manifest.json"
)

var (
	// ErrNoVersionList is returned if the version list can neither be fetched nor read from the cache
	ErrNoVersionList = errors.New("failed to fetch version manifest and no cache available")
	// ErrUnknownVersion is returned if a version is not part of the version list
	ErrUnknownVersion = errors.New("supplied version could not be found")
)

// Loader fetches the version list and caches it on disk
type Loader struct {
	Client *http.Client
	Fs     afero.Fs
	// CachePath is the json file the list is cached in
	CachePath string
	// URLs are tried in order
	URLs []string
}

// NewLoader returns a loader using the mojang urls
func NewLoader(client *http.Client, fs afero.Fs, cachePath string) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		Client:    client,
		Fs:        fs,
		CachePath: cachePath,
		URLs:      []string{PrimaryURL, FallbackURL},
	}
}

// Load returns the cached version list. It is fetched if there is no cache yet
// or refresh is set. A failed fetch falls back to the cache
func (l *Loader) Load(ctx context.Context, refresh bool) (*Manifest, error) {
	if !refresh {
		if m, err := l.readCache(); err == nil {
			return m, nil
		}
	}

	m, fetchErr := l.fetch(ctx)
	if fetchErr == nil {
		if err := l.writeCache(m); err != nil {
			log.Printf("[WARN] could not cache version list: %v", err)
		}
		return m, nil
	}

	// the context error wins, the user wants to stop
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	m, err := l.readCache()
	if err != nil {
		return nil, errors.Wrap(ErrNoVersionList, fetchErr.Error())
	}
	log.Printf("[WARN] using cached version list: %v", fetchErr)
	return m, nil
}

func (l *Loader) fetch(ctx context.Context) (*Manifest, error) {
	var lastErr error
	for _, url := range l.URLs {
		m, err := l.fetchURL(ctx, url)
		if err == nil {
			return m, nil
		}
		log.Printf("[WARN] cannot fetch version list from %s: %v", url, err)
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no version list url configured")
	}
	return nil, lastErr
}

func (l *Loader) fetchURL(ctx context.Context, url string) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := l.Client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "request to %s failed", url)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid status code: %s from %s", res.Status, url)
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read version list")
	}
	m := &Manifest{}
	if err := json.Unmarshal(buf, m); err != nil {
		return nil, errors.Wrap(err, "invalid version list")
	}
	return m, nil
}

func (l *Loader) readCache() (*Manifest, error) {
	buf, err := afero.ReadFile(l.Fs, l.CachePath)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := json.Unmarshal(buf, m); err != nil {
		return nil, errors.Wrap(err, "corrupted version list cache")
	}
	return m, nil
}

func (l *Loader) writeCache(m *Manifest) error {
	if err := l.Fs.MkdirAll(filepath.Dir(l.CachePath), os.ModePerm); err != nil {
		return err
	}
	buf, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return afero.WriteFile(l.Fs, l.CachePath, buf, 0o644)
}

// Resolve returns the release id from the version list
func (l *Loader) Resolve(ctx context.Context, id string, refresh bool) (*Release, error) {
	m, err := l.Load(ctx, refresh)
	if err != nil {
		return nil, err
	}
	r, ok := m.Find(id)
	if !ok {
		return nil, errors.Wrap(ErrUnknownVersion, id)
	}
	return r, nil
}
