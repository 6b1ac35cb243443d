package instances

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/auth"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/platform"
)

const structuredManifest = `{
	"id": "1.20.1",
	"mainClass": "net.minecraft.client.main.Main",
	"assetIndex": {"id": "5"},
	"arguments": {
		"game": [
			"--username", "${auth_player_name}",
			"--version", "${version_name}",
			"--uuid", "${auth_uuid}",
			"--accessToken", "${auth_access_token}",
			"--clientId", "${clientid}",
			"--xuid", "${auth_xuid}",
			"--userType", "${user_type}",
			"--versionType", "${version_type}",
			{"rules": [{"action": "allow", "features": {"is_demo_user": true}}], "value": "--demo"}
		],
		"jvm": [
			{"rules": [{"action": "allow", "os": {"name": "osx"}}], "value": ["-XstartOnFirstThread"]},
			{"rules": [{"action": "allow", "os": {"name": "linux"}}], "value": ["-Dlinux=yes", "-Dlinux2=yes"]},
			"-Djava.library.path=${natives_directory}",
			"-Dminecraft.launcher.brand=${launcher_name}",
			"-cp",
			"${classpath}"
		]
	}
}`

const legacyManifest = `{
	"id": "1.7.10",
	"mainClass": "net.minecraft.client.main.Main",
	"assets": "1.7.10",
	"minecraftArguments": "--username ${auth_player_name} --version ${version_name} --gameDir ${game_directory} --assetsDir ${assets_root} --assetIndex ${assets_index_name} --uuid ${auth_uuid} --accessToken ${auth_access_token} --userProperties ${user_properties} --userType ${user_type}"
}`

func testParams() LaunchParams {
	data, _ := (&auth.Offline{Name: "Steve"}).LaunchAuthData()
	return LaunchParams{
		Auth:         data,
		Classpath:    []string{"/game/versions/1.20.1/1.20.1.jar", "/game/libraries/a.jar"},
		NativesDir:   "/game/versions/1.20.1/natives",
		LauncherName: "nuxcraft",
	}
}

func TestBuildArguments_Structured(t *testing.T) {
	i := testInstance(platform.Linux)
	args := i.BuildArguments(parseManifest(t, structuredManifest), testParams())

	uuid := auth.OfflineUUID("Steve").String()
	require.Equal(t, []string{
		"-Dlinux=yes", "-Dlinux2=yes",
		"-Djava.library.path=/game/versions/1.20.1/natives",
		"-Dminecraft.launcher.brand=nuxcraft",
		"-cp", "/game/versions/1.20.1/1.20.1.jar:/game/libraries/a.jar",
		"net.minecraft.client.main.Main",
		"--username", "Steve",
		"--version", "1.20.1",
		"--uuid", uuid,
		"--accessToken", "null",
		"--userType", "mojang",
		"--versionType", "release",
	}, args)
}

func TestBuildArguments_WindowsSeparator(t *testing.T) {
	i := testInstance(platform.Windows)
	args := i.BuildArguments(parseManifest(t, structuredManifest), testParams())
	require.Contains(t, args, "/game/versions/1.20.1/1.20.1.jar;/game/libraries/a.jar")
	require.NotContains(t, args, "-Dlinux=yes")
}

func TestBuildArguments_Legacy(t *testing.T) {
	i := testInstance(platform.Linux)
	params := testParams()
	args := i.BuildArguments(parseManifest(t, legacyManifest), params)

	require.Equal(t, []string{"-cp", "/game/versions/1.20.1/1.20.1.jar:/game/libraries/a.jar", "net.minecraft.client.main.Main"}, args[:3])
	require.Equal(t, []string{
		"--username", "Steve",
		"--version", "1.7.10",
		"--gameDir", "/game",
		"--assetsDir", "/game/assets",
		"--assetIndex", "1.7.10",
		"--uuid", auth.OfflineUUID("Steve").String(),
		"--accessToken", "null",
		"--userProperties", "{}",
		"--userType", "mojang",
	}, args[3:])
}

func TestBuildArguments_SamePlayerName(t *testing.T) {
	i := testInstance(platform.Linux)
	structured := i.BuildArguments(parseManifest(t, structuredManifest), testParams())
	legacy := i.BuildArguments(parseManifest(t, legacyManifest), testParams())

	valueAfter := func(args []string, flag string) string {
		for n, a := range args {
			if a == flag && n+1 < len(args) {
				return args[n+1]
			}
		}
		return ""
	}
	require.Equal(t, "Steve", valueAfter(structured, "--username"))
	require.Equal(t, valueAfter(structured, "--username"), valueAfter(legacy, "--username"))
}

func TestAppendResolved(t *testing.T) {
	replacer := strings.NewReplacer("${auth_player_name}", "Steve")
	tests := []struct {
		name      string
		templates []string
		want      []string
	}{
		{"known", []string{"--username", "${auth_player_name}"}, []string{"--username", "Steve"}},
		{"unknown value drops its flag", []string{"--username", "${auth_player_name}", "--xuid", "${auth_xuid}"}, []string{"--username", "Steve"}},
		{"unknown without flag", []string{"${quickPlayPath}"}, []string{}},
		{"embedded unknown", []string{"-Dlog=${path}/log.xml"}, []string{"-Dlog=/log.xml"}},
		{"unknown after a value keeps the value", []string{"Steve", "${clientid}"}, []string{"Steve"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, appendResolved([]string{}, replacer, tt.templates...))
		})
	}
}

func TestBuildArguments_LegacyUnknownVariable(t *testing.T) {
	i := testInstance(platform.Linux)
	man := parseManifest(t, `{
		"id": "1.5.2",
		"mainClass": "net.minecraft.client.Minecraft",
		"minecraftArguments": "${auth_player_name} ${auth_session} --tweakClass ${tweak_class} --gameDir ${game_directory}"
	}`)
	args := i.BuildArguments(man, testParams())
	require.Equal(t, []string{"Steve", "null", "--gameDir", "/game"}, args[3:])
}
