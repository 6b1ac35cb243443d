package launcher

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/cmdlog"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/config"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/platform"
)

func sha1Hex(b []byte) string {
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

func nativesZip(t *testing.T) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for name, content := range map[string]string{
		"liblwjgl.so":          "elf",
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0",
	} {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

type gameServer struct {
	*httptest.Server
	mu       sync.Mutex
	files    map[string][]byte
	requests atomic.Int64
}

// take removes a file from the server and returns it
func (s *gameServer) take(path string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	content := s.files[path]
	delete(s.files, path)
	return content
}

func (s *gameServer) put(path string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = content
}

// newGameServer serves a small but complete version
func newGameServer(t *testing.T) *gameServer {
	s := &gameServer{files: map[string][]byte{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.mu.Lock()
		content, ok := s.files[r.URL.Path]
		s.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(content)
	}))
	t.Cleanup(s.Close)

	jar := []byte("client jar")
	lib := []byte("library jar")
	natives := nativesZip(t)
	sound := []byte("ogg")
	soundHash := sha1Hex(sound)
	index := []byte(fmt.Sprintf(`{"objects": {"sound/click.ogg": {"hash": %q, "size": 3}}}`, soundHash))

	s.files["/client.jar"] = jar
	s.files["/lib.jar"] = lib
	s.files["/natives.jar"] = natives
	s.files["/index.json"] = index
	s.files["/objects/"+soundHash[:2]+"/"+soundHash] = sound
	s.files["/1.20.1.json"] = []byte(fmt.Sprintf(`{
		"id": "1.20.1",
		"type": "release",
		"mainClass": "net.minecraft.client.main.Main",
		"javaVersion": {"majorVersion": 17},
		"downloads": {"client": {"url": "%[1]s/client.jar", "sha1": %[2]q}},
		"assetIndex": {"id": "5", "url": "%[1]s/index.json", "sha1": %[3]q},
		"libraries": [
			{"name": "com.mojang:brigadier:1.1.8", "downloads": {"artifact": {"path": "com/mojang/brigadier.jar", "url": "%[1]s/lib.jar", "sha1": %[4]q}}},
			{"name": "org.lwjgl:lwjgl:3.3.1:natives-linux", "downloads": {"classifiers": {"natives-linux": {"path": "org/lwjgl/natives.jar", "url": "%[1]s/natives.jar", "sha1": %[5]q}}}}
		],
		"arguments": {
			"game": ["--username", "${auth_player_name}", "--assetsDir", "${assets_root}"],
			"jvm": ["-cp", "${classpath}"]
		}
	}`, s.URL, sha1Hex(jar), sha1Hex(index), sha1Hex(lib), sha1Hex(natives)))
	return s
}

func testConfig() *config.Config {
	return &config.Config{
		Player:           "Steve",
		Java:             "java",
		GameDir:          "/game",
		Memory:           "4G",
		Threads:          2,
		Platform:         platform.Linux,
		Timeout:          5 * time.Second,
		NonInteractive:   true,
		DisableHugePages: true,
	}
}

func testLauncher(srv *gameServer, cfg *config.Config, fs afero.Fs) *Launcher {
	l := New(cfg, fs, srv.Client(), cmdlog.NewWithWriter(io.Discard))
	l.Version = "test"
	l.ResourcesURL = srv.URL + "/objects"
	return l
}

func TestLauncher_Prepare(t *testing.T) {
	srv := newGameServer(t)
	fs := afero.NewMemMapFs()
	l := testLauncher(srv, testConfig(), fs)

	require.NoError(t, l.Prepare(context.Background(), "1.20.1", srv.URL+"/1.20.1.json"))

	for _, path := range []string{
		"/game/versions/1.20.1/1.20.1.json",
		"/game/versions/1.20.1/1.20.1.jar",
		"/game/versions/1.20.1/.integrity_passed",
		"/game/versions/1.20.1/natives/liblwjgl.so",
		"/game/libraries/com/mojang/brigadier.jar",
		"/game/assets/indexes/5.json",
	} {
		ok, err := afero.Exists(fs, path)
		require.NoError(t, err)
		require.True(t, ok, path)
	}
	ok, _ := afero.Exists(fs, "/game/versions/1.20.1/natives/MANIFEST.MF")
	require.False(t, ok)
	// not a legacy version
	ok, _ = afero.Exists(fs, "/game/resources/sound/click.ogg")
	require.False(t, ok)

	// verified before: nothing is requested again
	before := srv.requests.Load()
	l = testLauncher(srv, testConfig(), fs)
	require.NoError(t, l.Prepare(context.Background(), "1.20.1", srv.URL+"/1.20.1.json"))
	require.Equal(t, before, srv.requests.Load())
}

func TestLauncher_PrepareOfflineWithoutDescriptor(t *testing.T) {
	srv := newGameServer(t)
	cfg := testConfig()
	cfg.Offline = true
	l := testLauncher(srv, cfg, afero.NewMemMapFs())

	err := l.Prepare(context.Background(), "1.20.1", srv.URL+"/1.20.1.json")
	require.Error(t, err)
	require.Contains(t, err.Error(), "descriptor")
	require.Equal(t, int64(0), srv.requests.Load())
}

func TestLauncher_PrepareLegacyResources(t *testing.T) {
	srv := newGameServer(t)
	fs := afero.NewMemMapFs()
	cfg := testConfig()
	cfg.Old = true
	l := testLauncher(srv, cfg, fs)

	require.NoError(t, l.Prepare(context.Background(), "1.20.1", srv.URL+"/1.20.1.json"))
	content, err := afero.ReadFile(fs, "/game/resources/sound/click.ogg")
	require.NoError(t, err)
	require.Equal(t, "ogg", string(content))
}

func TestLauncher_PrepareAssetIndexUnavailable(t *testing.T) {
	srv := newGameServer(t)
	fs := afero.NewMemMapFs()
	index := srv.take("/index.json")

	l := testLauncher(srv, testConfig(), fs)
	err := l.Prepare(context.Background(), "1.20.1", srv.URL+"/1.20.1.json")
	require.Error(t, err)
	require.Contains(t, err.Error(), "asset index")
	ok, _ := afero.Exists(fs, "/game/versions/1.20.1/.integrity_passed")
	require.False(t, ok, "marker must not be written without the assets")

	// the server recovered
	srv.put("/index.json", index)
	l = testLauncher(srv, testConfig(), fs)
	require.NoError(t, l.Prepare(context.Background(), "1.20.1", srv.URL+"/1.20.1.json"))
	require.NotNil(t, l.AssetIndex)

	hash := sha1Hex([]byte("ogg"))
	content, err := afero.ReadFile(fs, "/game/assets/objects/"+hash[:2]+"/"+hash)
	require.NoError(t, err)
	require.Equal(t, "ogg", string(content))
	ok, _ = afero.Exists(fs, "/game/versions/1.20.1/.integrity_passed")
	require.True(t, ok)
}

func TestLauncher_PrepareVerifiedWithoutIndex(t *testing.T) {
	srv := newGameServer(t)
	fs := afero.NewMemMapFs()
	l := testLauncher(srv, testConfig(), fs)
	require.NoError(t, l.Prepare(context.Background(), "1.20.1", srv.URL+"/1.20.1.json"))

	// the marker is trusted, a lost index only skips the assets
	require.NoError(t, fs.Remove("/game/assets/indexes/5.json"))
	l = testLauncher(srv, testConfig(), fs)
	require.NoError(t, l.Prepare(context.Background(), "1.20.1", srv.URL+"/1.20.1.json"))
	require.Nil(t, l.AssetIndex)
}

func TestLauncher_BuildCommand(t *testing.T) {
	srv := newGameServer(t)
	fs := afero.NewMemMapFs()
	cfg := testConfig()
	cfg.JVMFlags = []string{"-XX:+UseG1GC"}
	cfg.GameFlags = []string{"--quickPlaySingleplayer", "world"}
	cfg.Fullscreen = true
	cfg.Demo = true
	l := testLauncher(srv, cfg, fs)

	_, err := l.BuildCommand()
	require.Error(t, err)

	require.NoError(t, l.Prepare(context.Background(), "1.20.1", srv.URL+"/1.20.1.json"))
	cmd, err := l.BuildCommand()
	require.NoError(t, err)
	require.Equal(t, HugePagesDisabled, cmd.HugePages)

	natives := "/game/versions/1.20.1/natives"
	require.Equal(t, []string{
		"java", "-Xmx4096M", "-Xms1024M",
		"--enable-native-access=ALL-UNNAMED",
		"-Djava.library.path=" + natives,
		"-Djna.library.path=" + natives,
		"-Dminecraft.launcher.brand=NuxCraft-PyCher(test)",
		"-XX:+UseG1GC",
		"-cp", "/game/versions/1.20.1/1.20.1.jar:/game/libraries/com/mojang/brigadier.jar",
		"net.minecraft.client.main.Main",
		"--username", "Steve",
		"--assetsDir", "/game/assets",
		"--quickPlaySingleplayer", "world",
		"--fullscreen",
		"--demo",
	}, cmd.Args)
}

func TestLauncher_BuildCommandSystemFeatures(t *testing.T) {
	srv := newGameServer(t)
	fs := afero.NewMemMapFs()
	cfg := testConfig()
	cfg.Old = true
	l := testLauncher(srv, cfg, fs)
	require.NoError(t, l.Prepare(context.Background(), "1.20.1", srv.URL+"/1.20.1.json"))

	require.NoError(t, afero.WriteFile(fs, openALPath, []byte("so"), 0o644))
	cmd, err := l.BuildCommand()
	require.NoError(t, err)
	require.NotContains(t, cmd.Args, "--enable-native-access=ALL-UNNAMED")
	require.Contains(t, cmd.Args, "-Dorg.lwjgl.util.NoChecks=true")
	require.Contains(t, cmd.Args, "-Dorg.lwjgl.librarypath=/game/versions/1.20.1/natives")

	cfg.NoOpenAL = true
	cmd, err = l.BuildCommand()
	require.NoError(t, err)
	require.NotContains(t, cmd.Args, "-Dorg.lwjgl.util.NoChecks=true")

	// other platforms never use the system library
	cfg.NoOpenAL = false
	cfg.Platform = platform.Windows
	cmd, err = l.BuildCommand()
	require.NoError(t, err)
	require.NotContains(t, cmd.Args, "-Dorg.lwjgl.util.NoChecks=true")
}

func TestLauncher_Run(t *testing.T) {
	srv := newGameServer(t)
	fs := afero.NewMemMapFs()
	l := testLauncher(srv, testConfig(), fs)
	require.NoError(t, l.Prepare(context.Background(), "1.20.1", srv.URL+"/1.20.1.json"))
	cmd, err := l.BuildCommand()
	require.NoError(t, err)

	var started *exec.Cmd
	l.start = func(cmd *exec.Cmd) error {
		started = cmd
		fmt.Fprintln(cmd.Stdout, "[Render thread/INFO]: Setting user: Steve")
		return nil
	}
	require.NoError(t, l.Run(cmd))
	require.NotNil(t, started)
	require.Equal(t, "/game", started.Dir)
	require.Equal(t, cmd.Args, started.Args)

	content, err := afero.ReadFile(fs, "/game/logs/latest_launch.log")
	require.NoError(t, err)
	log := string(content)
	require.True(t, strings.HasPrefix(log, "    (PLATFORM: linux) COMMAND EXECUTED:\n\n"+strings.Join(cmd.Args, " ")+"\n\n"))
	require.Contains(t, log, "------------------------- GAME OUTPUT START -------------------------\n\n[Render thread/INFO]")
}

func TestLauncher_HugePages(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := testConfig()
	l := New(cfg, fs, nil, cmdlog.NewWithWriter(io.Discard))
	require.Equal(t, HugePagesDisabled, l.hugePages())

	cfg.DisableHugePages = false
	if hugePagesName != "Transparent Huge Pages (THP)" {
		t.Skip("transparent huge pages are linux only")
	}
	require.Equal(t, HugePagesUnavailable, l.hugePages())

	require.NoError(t, afero.WriteFile(fs, thpPath, []byte("always [madvise] never\n"), 0o644))
	require.Equal(t, HugePagesEnabled, l.hugePages())

	require.NoError(t, afero.WriteFile(fs, thpPath, []byte("always madvise [never]\n"), 0o644))
	require.Equal(t, HugePagesUnavailable, l.hugePages())
}
