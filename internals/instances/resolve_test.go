package instances

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/minecraft"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/platform"
)

const testManifest = `{
	"id": "1.20.1",
	"type": "release",
	"mainClass": "net.minecraft.client.main.Main",
	"downloads": {"client": {"sha1": "c0ffee", "size": 100, "url": "https://piston-data.mojang.com/client.jar"}},
	"assetIndex": {"id": "5", "sha1": "aa", "url": "https://piston-meta.mojang.com/5.json"},
	"libraries": [
		{
			"name": "ca.weblite:java-objc-bridge:1.1",
			"downloads": {"artifact": {"path": "ca/weblite/java-objc-bridge/1.1/java-objc-bridge-1.1.jar", "sha1": "l1", "size": 1, "url": "https://libraries.minecraft.net/l1.jar"}},
			"rules": [{"action": "allow", "os": {"name": "osx"}}]
		},
		{
			"name": "com.mojang:brigadier:1.1.8",
			"downloads": {"artifact": {"path": "com/mojang/brigadier/1.1.8/brigadier-1.1.8.jar", "sha1": "l2", "size": 1, "url": "https://libraries.minecraft.net/l2.jar"}}
		},
		{
			"name": "org.lwjgl:lwjgl:3.3.1",
			"downloads": {"artifact": {"path": "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar", "sha1": "l3", "size": 1, "url": "https://libraries.minecraft.net/l3.jar"}},
			"rules": [{"action": "allow"}, {"action": "disallow", "os": {"name": "osx"}}]
		},
		{
			"name": "org.lwjgl.lwjgl:lwjgl-platform:2.9.4",
			"natives": {"linux": "natives-linux", "osx": "natives-osx"},
			"downloads": {"classifiers": {
				"natives-linux": {"path": "org/lwjgl/lwjgl/lwjgl-platform/2.9.4/lwjgl-platform-2.9.4-natives-linux.jar", "sha1": "n1", "size": 1, "url": "https://libraries.minecraft.net/n1.jar"},
				"natives-osx": {"path": "osx.jar", "sha1": "n2", "size": 1, "url": "https://libraries.minecraft.net/n2.jar"}
			}}
		},
		{
			"name": "com.mojang:brigadier:1.1.8",
			"downloads": {"artifact": {"path": "com/mojang/brigadier/1.1.8/brigadier-1.1.8.jar", "sha1": "l2", "size": 1, "url": "https://libraries.minecraft.net/l2.jar"}}
		}
	]
}`

func testInstance(p platform.Platform) *Instance {
	return New(afero.NewMemMapFs(), "/game", p)
}

func parseManifest(t *testing.T, raw string) *minecraft.LaunchManifest {
	t.Helper()
	man := &minecraft.LaunchManifest{}
	require.NoError(t, json.Unmarshal([]byte(raw), man))
	return man
}

func TestResolveLibraries_ClasspathOrder(t *testing.T) {
	i := testInstance(platform.Linux)
	res := i.ResolveLibraries(parseManifest(t, testManifest))

	lib := func(p string) string { return filepath.Join("/game/libraries", filepath.FromSlash(p)) }
	require.Equal(t, []string{
		filepath.Join("/game/versions/1.20.1/1.20.1.jar"),
		lib("com/mojang/brigadier/1.1.8/brigadier-1.1.8.jar"),
		lib("org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar"),
	}, res.Classpath)

	require.Len(t, res.Libraries, 3)
	require.Equal(t, "c0ffee", res.Libraries[0].Sha1)
	require.Equal(t, "https://piston-data.mojang.com/client.jar", res.Libraries[0].URL)
	require.EqualValues(t, 100, res.Libraries[0].Size)

	require.Len(t, res.Natives, 1)
	require.Equal(t, "n1", res.Natives[0].Sha1)
	require.Equal(t, []string{lib("org/lwjgl/lwjgl/lwjgl-platform/2.9.4/lwjgl-platform-2.9.4-natives-linux.jar")}, res.NativeArchives())
	require.Len(t, res.Tasks(), 4)
}

func TestResolveLibraries_OtherPlatform(t *testing.T) {
	i := testInstance(platform.MacOS)
	res := i.ResolveLibraries(parseManifest(t, testManifest))

	require.Len(t, res.Classpath, 3)
	require.Contains(t, res.Classpath[1], "java-objc-bridge")
	require.Contains(t, res.Classpath[2], "brigadier")
	require.Equal(t, "n2", res.Natives[0].Sha1)
}

func TestResolveLibraries_Deterministic(t *testing.T) {
	i := testInstance(platform.Linux)
	man := parseManifest(t, testManifest)
	require.Equal(t, i.ResolveLibraries(man), i.ResolveLibraries(man))
}

func TestResolveAssets(t *testing.T) {
	i := testInstance(platform.Linux)
	index := &minecraft.AssetIndex{Objects: map[string]minecraft.AssetObject{
		"minecraft/sounds/a.ogg":   {Hash: "ffee0000", Size: 3},
		"minecraft/sounds/b.ogg":   {Hash: "00aa1111", Size: 5},
		"minecraft/sounds/dup.ogg": {Hash: "ffee0000", Size: 3},
		"broken":                   {Hash: "x"},
	}}

	tasks := i.ResolveAssets(index, "")
	require.Len(t, tasks, 2)
	require.Equal(t, "https://resources.download.minecraft.net/00/00aa1111", tasks[0].URL)
	require.Equal(t, filepath.Join("/game/assets/objects/00/00aa1111"), tasks[0].Target)
	require.Equal(t, "00aa1111", tasks[0].Sha1)
	require.Equal(t, "https://resources.download.minecraft.net/ff/ffee0000", tasks[1].URL)

	mirrored := i.ResolveAssets(index, "http://mirror.local/")
	require.Equal(t, "http://mirror.local/00/00aa1111", mirrored[0].URL)
}
