package minecraft

import (
	"path"
	"strings"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/platform"
)

// LibrariesURL is used for libraries that do not carry a download url
const LibrariesURL = "https://libraries.minecraft.net/"

// Libraries as a collection of minecraft libs
type Libraries []Library

// Required returns only the libraries whose rules allow them on p
func (l Libraries) Required(p platform.Platform) Libraries {
	required := make(Libraries, 0, len(l))
	for _, lib := range l {
		if lib.Rules.Allowed(p) {
			required = append(required, lib)
		}
	}
	return required
}

// Library is a minecraft library
type Library struct {
	// Name can be used to identify the library, but is not required otherwise.
	Name      string `json:"name"`
	Downloads struct {
		// Artifact is nil for libraries that only ship natives
		Artifact *Artifact `json:"artifact,omitempty"`
		// Classifiers is a list of additional artifacts.
		// It is used to download native libraries.
		// This field is no longer used after 1.19
		Classifiers map[string]Artifact `json:"classifiers,omitempty"`
	} `json:"downloads"`
	// URL is a maven repository base url. Only used by libraries without downloads
	URL string `json:"url,omitempty"`
	// Rules is a list of rules that determine whether this library should be included.
	// If no rules are specified, the library is included by default.
	Rules Rules `json:"rules,omitempty"`
	// Natives is a map of OS names to native classifier names.
	// This field is no longer used after 1.19
	Natives map[string]string `json:"natives,omitempty"`
}

// MainArtifact returns the jar that belongs on the classpath or nil.
// Libraries without a `downloads` block get an artifact derived from their maven name
func (l *Library) MainArtifact() *Artifact {
	if l.Downloads.Artifact != nil {
		a := *l.Downloads.Artifact
		if a.Path == "" {
			a.Path = l.mavenPath("")
		}
		return &a
	}
	// native-only library
	if len(l.Downloads.Classifiers) != 0 || len(l.Natives) != 0 {
		return nil
	}
	p := l.mavenPath("")
	if p == "" {
		return nil
	}
	base := l.URL
	if base == "" {
		base = LibrariesURL
	}
	return &Artifact{Path: p, URL: strings.TrimSuffix(base, "/") + "/" + p}
}

// NativeArtifact returns the native classifier artifact for p or nil.
// The `natives-<os>` classifier is preferred, the legacy `natives` map is
// used as a fallback (with `${arch}` expanded to 32 or 64)
func (l *Library) NativeArtifact(p platform.Platform) *Artifact {
	keys := []string{p.ClassifierKey}
	if legacy := l.nativeKey(p); legacy != "" && legacy != p.ClassifierKey {
		keys = append(keys, legacy)
	}
	for _, key := range keys {
		if a, ok := l.Downloads.Classifiers[key]; ok {
			if a.Path == "" {
				a.Path = l.mavenPath(key)
			}
			return &a
		}
	}
	return nil
}

func (l *Library) nativeKey(p platform.Platform) string {
	for osName, key := range l.Natives {
		if p.Matches(osName) {
			return strings.ReplaceAll(key, "${arch}", p.ArchBits())
		}
	}
	return ""
}

// mavenPath turns "group:name:version" into group/name/version/name-version[-classifier].jar
func (l *Library) mavenPath(classifier string) string {
	grouped := strings.Split(l.Name, ":")
	if len(grouped) < 3 {
		return ""
	}
	group := strings.ReplaceAll(grouped[0], ".", "/")
	name := grouped[1]
	version := grouped[2]
	file := name + "-" + version
	if classifier != "" {
		file += "-" + classifier
	} else if len(grouped) > 3 {
		file += "-" + grouped[3]
	}
	return path.Join(group, name, version, file+".jar")
}
