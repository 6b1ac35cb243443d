package instances

import (
	"log"
	"regexp"
	"strings"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/minecraft"
)

var (
	variableRegex = regexp.MustCompile(`\$\{[a-zA-Z0-9_]+\}`)
	// onlyVariable matches an argument that is nothing but one variable
	onlyVariable = regexp.MustCompile(`^\$\{[a-zA-Z0-9_]+\}$`)
)

// LaunchParams are the values that are filled into the launch manifest arguments
type LaunchParams struct {
	Auth minecraft.LaunchAuthData
	// Classpath entries, joined with the platform separator
	Classpath  []string
	NativesDir string
	// VersionType defaults to "release"
	VersionType     string
	LauncherName    string
	LauncherVersion string
	// GameAssets is the directory very old versions read assets from. Defaults to the assets dir
	GameAssets string
}

// v for variable
func v(s string) string {
	return "${" + s + "}"
}

// Placeholders returns the value of every known ${variable}
func (i *Instance) Placeholders(man *minecraft.LaunchManifest, params LaunchParams) map[string]string {
	versionType := params.VersionType
	if versionType == "" {
		versionType = "release"
	}
	gameAssets := params.GameAssets
	if gameAssets == "" {
		gameAssets = i.AssetsDir()
	}

	vars := map[string]string{
		// the minecraft version
		"version_name": man.ID,
		// minecraft game dir that contains saves, worlds & mods
		"game_directory": i.Directory,
		// asset dir contains some shared minecraft resources like sounds & some textures
		"assets_root": i.AssetsDir(),
		"game_assets": gameAssets,
		// asset index version tells the game which assets to load
		"assets_index_name":   man.AssetIndexID(),
		"version_type":        versionType,
		"launcher_name":       params.LauncherName,
		"launcher_version":    params.LauncherVersion,
		"classpath":           strings.Join(params.Classpath, i.Platform.PathSeparator),
		"classpath_separator": i.Platform.PathSeparator,
		"natives_directory":   params.NativesDir,
		"library_directory":   i.LibrariesDir(),
		"user_properties":     "{}",
	}

	if params.Auth != nil {
		vars["auth_player_name"] = params.Auth.GetPlayerName()
		vars["auth_uuid"] = params.Auth.GetUUID()
		vars["auth_access_token"] = params.Auth.GetAccessToken()
		vars["auth_session"] = params.Auth.GetAccessToken()
		vars["user_type"] = params.Auth.GetUserType()
	}
	return vars
}

// BuildArguments returns the manifest part of the launch command: the jvm
// arguments, the main class and the game arguments. Manifests that only have
// the legacy `minecraftArguments` string get an explicit classpath instead
func (i *Instance) BuildArguments(man *minecraft.LaunchManifest, params LaunchParams) []string {
	if man.MainClass == "" {
		log.Println("[WARN] launchManifest.MainClass is empty")
	}

	vars := i.Placeholders(man, params)
	replacerArgs := make([]string, 0, len(vars)*2)
	for k, val := range vars {
		replacerArgs = append(replacerArgs, v(k), val)
	}
	replacer := strings.NewReplacer(replacerArgs...)

	if man.UsesLegacyArguments() {
		log.Println("[INFO] launchManifest is using (the old style) minecraftArguments")
		args := []string{"-cp", vars["classpath"], man.MainClass}
		return appendResolved(args, replacer, strings.Fields(man.MinecraftArguments)...)
	}

	args := make([]string, 0, len(man.Arguments.JVM)+len(man.Arguments.Game)+1)
	for _, arg := range man.Arguments.JVM {
		if !arg.Literal && !arg.Rules.Allowed(i.Platform) {
			continue
		}
		args = appendResolved(args, replacer, arg.Value...)
	}

	args = append(args, man.MainClass)

	for _, arg := range man.Arguments.Game {
		// conditional game arguments (demo, custom resolution, quick play) are
		// added by the launcher itself
		if !arg.Literal || len(arg.Value) == 0 {
			continue
		}
		args = appendResolved(args, replacer, arg.Value[0])
	}
	return args
}

// appendResolved appends the templates with all ${var} replaced. A template
// that is only an unknown variable (like ${clientid}) is dropped together
// with the "--flag" before it. Unknown variables inside a template are removed
func appendResolved(args []string, replacer *strings.Replacer, templates ...string) []string {
	for _, template := range templates {
		replaced := replacer.Replace(template)
		if !variableRegex.MatchString(replaced) {
			args = append(args, replaced)
			continue
		}

		log.Println("[WARN] found unresolvable variable in launch args: " + replaced)
		if onlyVariable.MatchString(replaced) {
			if n := len(args); n > 0 && strings.HasPrefix(args[n-1], "--") {
				args = args[:n-1]
			}
			continue
		}
		args = append(args, variableRegex.ReplaceAllString(replaced, ""))
	}
	return args
}
