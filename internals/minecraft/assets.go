package minecraft

import "strings"

// ResourcesURL is the base url all asset objects are served from
const ResourcesURL = "https://resources.download.minecraft.net"

// AssetIndex is just a map containing AssetObjects
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
	// MapToResources is set by very old indexes (pre-1.6) that expect the
	// assets in the "resources" directory using their real names
	MapToResources bool `json:"map_to_resources,omitempty"`
	Virtual        bool `json:"virtual,omitempty"`
}

// AssetObject is one minecraft asset
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// UnixPath returns the path including the folder
// example: fe/fe32f3b8…
func (a *AssetObject) UnixPath() string {
	return a.Hash[:2] + "/" + a.Hash
}

// DownloadURL returns the download url for this asset. base defaults to ResourcesURL
func (a *AssetObject) DownloadURL(base string) string {
	if base == "" {
		base = ResourcesURL
	}
	return strings.TrimSuffix(base, "/") + "/" + a.UnixPath()
}

// Valid reports if the hash is long enough to be sharded
func (a *AssetObject) Valid() bool {
	return len(a.Hash) > 2
}
