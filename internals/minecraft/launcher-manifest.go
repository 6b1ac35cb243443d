package minecraft

import (
	"encoding/json"
	"errors"
)

// ErrNoMainClass is returned by Validate when the manifest has no main class
var ErrNoMainClass = errors.New("launch manifest has no main class")

// LaunchManifest is a version.json manifest that is used to launch minecraft instances
type LaunchManifest struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	// MinecraftArguments are used before 1.13
	MinecraftArguments string `json:"minecraftArguments,omitempty"`
	// Arguments is the new (complicated) system
	Arguments struct {
		Game []Argument `json:"game"`
		JVM  []Argument `json:"jvm"`
	} `json:"arguments"`
	Downloads struct {
		Client Artifact `json:"client"`
	} `json:"downloads"`
	Libraries  Libraries `json:"libraries"`
	MainClass  string    `json:"mainClass"`
	Assets     string    `json:"assets"`
	AssetIndex struct {
		ID        string `json:"id"`
		Sha1      string `json:"sha1"`
		Size      int    `json:"size"`
		TotalSize int    `json:"totalSize"`
		URL       string `json:"url"`
	} `json:"assetIndex"`
	JavaVersion struct {
		Component    string `json:"component"`
		MajorVersion int    `json:"majorVersion"`
	} `json:"javaVersion"`
}

// UsesLegacyArguments returns true for manifests that only carry the single
// `minecraftArguments` string (versions before 1.13)
func (l *LaunchManifest) UsesLegacyArguments() bool {
	return len(l.Arguments.Game) == 0 && len(l.Arguments.JVM) == 0
}

// AssetIndexID returns the id of the asset index. Very old manifests only set `assets`
func (l *LaunchManifest) AssetIndexID() string {
	if l.AssetIndex.ID != "" {
		return l.AssetIndex.ID
	}
	if l.Assets != "" {
		return l.Assets
	}
	return "legacy"
}

// Validate checks the few fields a launch can not do without
func (l *LaunchManifest) Validate() error {
	if l.MainClass == "" {
		return ErrNoMainClass
	}
	return nil
}

// Argument is one entry of the `arguments.game` or `arguments.jvm` list.
// It is either a plain string or an object with rules and one or more values
type Argument struct {
	// Value is the actual argument
	Value stringSlice `json:"value"`
	Rules Rules       `json:"rules,omitempty"`
	// Literal is true if this argument was a plain string in the manifest
	Literal bool `json:"-"`
}

// UnmarshalJSON is needed because an argument can be a plain string
func (a *Argument) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*a = Argument{Value: stringSlice{value}, Literal: true}
		return nil
	}

	// alias prevents recursion
	type argument Argument
	var arg argument
	if err := json.Unmarshal(data, &arg); err != nil {
		return err
	}
	*a = Argument(arg)
	return nil
}

// MarshalJSON writes literal arguments back as plain strings
func (a Argument) MarshalJSON() ([]byte, error) {
	if a.Literal && len(a.Value) == 1 {
		return json.Marshal(a.Value[0])
	}
	type argument Argument
	return json.Marshal(argument(a))
}
