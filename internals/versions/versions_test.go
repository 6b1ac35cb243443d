package versions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const versionList = `{
	"latest": {"release": "1.20.1", "snapshot": "23w31a"},
	"versions": [
		{"id": "23w31a", "type": "snapshot", "url": "https://example.com/23w31a.json"},
		{"id": "1.20.1", "type": "release", "url": "https://example.com/1.20.1.json"},
		{"id": "1.8.9", "type": "release", "url": "https://example.com/1.8.9.json"},
		{"id": "b1.7.3", "type": "old_beta", "url": "https://example.com/b1.7.3.json"},
		{"id": "a1.0.4", "type": "old_alpha", "url": "https://example.com/a1.0.4.json"}
	]
}`

func TestIsPre16(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"1.5.2", true},
		{"1.6", false},
		{"1.6.4", false},
		{"1.20.1", false},
		{"1.4", true},
		{"b1.7.3", true},
		{"a1.0.4", true},
		{"rd-132211", true},
		{"c0.0.13a", true},
		{"inf-20100618", true},
		{"13w24a", false},
		{"1.20-pre1", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsPre16(tt.id); got != tt.want {
				t.Errorf("IsPre16(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestTypes(t *testing.T) {
	require.Equal(t, []string{TypeRelease}, Types(false, false))
	require.Equal(t, []string{TypeSnapshot}, Types(true, false))
	require.Equal(t, []string{TypeSnapshot}, Types(true, true))
	require.Equal(t, []string{TypeOldBeta, TypeOldAlpha}, Types(false, true))
}

func newListServer(t *testing.T, status int) (*httptest.Server, *int32) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(versionList))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func testLoader(urls ...string) *Loader {
	l := NewLoader(nil, afero.NewMemMapFs(), "/game/cache/manifest.json")
	l.URLs = urls
	return l
}

func TestLoader_Load(t *testing.T) {
	srv, hits := newListServer(t, http.StatusOK)
	l := testLoader(srv.URL)

	m, err := l.Load(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, "1.20.1", m.Latest.Release)
	require.Len(t, m.Versions, 5)

	cached, err := afero.Exists(l.Fs, "/game/cache/manifest.json")
	require.NoError(t, err)
	require.True(t, cached)

	// served from cache
	_, err = l.Load(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(hits))

	_, err = l.Load(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestLoader_Fallback(t *testing.T) {
	broken, brokenHits := newListServer(t, http.StatusInternalServerError)
	working, _ := newListServer(t, http.StatusOK)

	l := testLoader(broken.URL, working.URL)
	m, err := l.Load(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, m.Versions, 5)
	require.Equal(t, int32(1), atomic.LoadInt32(brokenHits))
}

func TestLoader_CacheFallback(t *testing.T) {
	broken, _ := newListServer(t, http.StatusBadGateway)
	l := testLoader(broken.URL)

	_, err := l.Load(context.Background(), true)
	require.True(t, errors.Is(err, ErrNoVersionList), "got %v", err)

	require.NoError(t, afero.WriteFile(l.Fs, l.CachePath, []byte(versionList), 0o644))
	m, err := l.Load(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, "23w31a", m.Latest.Snapshot)
}

func TestManifest_Filter(t *testing.T) {
	l := testLoader()
	require.NoError(t, afero.WriteFile(l.Fs, l.CachePath, []byte(versionList), 0o644))
	m, err := l.Load(context.Background(), false)
	require.NoError(t, err)

	ids := func(rs []Release) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}
	require.Equal(t, []string{"1.20.1", "1.8.9"}, ids(m.Filter(Types(false, false)...)))
	require.Equal(t, []string{"b1.7.3", "a1.0.4"}, ids(m.Filter(Types(false, true)...)))

	r, ok := m.Find("1.8.9")
	require.True(t, ok)
	require.Equal(t, "https://example.com/1.8.9.json", r.URL)

	_, err = l.Resolve(context.Background(), "2.0", false)
	require.True(t, errors.Is(err, ErrUnknownVersion))
}

func TestLoader_JavaMajor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1.20.1.json":
			w.Write([]byte(`{"id": "1.20.1", "javaVersion": {"component": "java-runtime-gamma", "majorVersion": 17}}`))
		case "/1.5.2.json":
			w.Write([]byte(`{"id": "1.5.2"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	l := testLoader()

	tests := []struct {
		path string
		want int
		err  bool
	}{
		{"/1.20.1.json", 17, false},
		{"/1.5.2.json", DefaultJavaMajor, false},
		{"/missing.json", 0, true},
	}
	for _, tt := range tests {
		got, err := l.JavaMajor(context.Background(), &Release{ID: tt.path, URL: srv.URL + tt.path})
		if tt.err {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}
