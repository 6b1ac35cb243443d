// Package versions loads the list of released minecraft versions
package versions

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/exp/slices"
)

var (
	// TypeSnapshot is a snapshot release
	TypeSnapshot = "snapshot"
	// TypeRelease is a full "normal" release
	TypeRelease = "release"
	// TypeOldBeta is a "old_beta" release
	TypeOldBeta = "old_beta"
	// TypeOldAlpha is a "old_alpha" release
	TypeOldAlpha = "old_alpha"
)

// Release is a released minecraft version
type Release struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
}

// Manifest is the version list served by the "launchermeta" mojang api
type Manifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []Release `json:"versions"`
}

// Find returns the release with the given id
func (m *Manifest) Find(id string) (*Release, bool) {
	for i := range m.Versions {
		if m.Versions[i].ID == id {
			return &m.Versions[i], true
		}
	}
	return nil, false
}

// Filter returns the releases of the given types, keeping the manifest order (newest first)
func (m *Manifest) Filter(types ...string) []Release {
	filtered := make([]Release, 0, len(m.Versions))
	for _, r := range m.Versions {
		if slices.Contains(types, r.Type) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Types returns the release types to list. Snapshots win over betas
func Types(snapshots bool, beta bool) []string {
	switch {
	case snapshots:
		return []string{TypeSnapshot}
	case beta:
		return []string{TypeOldBeta, TypeOldAlpha}
	default:
		return []string{TypeRelease}
	}
}

var pre16 = semver.MustParse("1.6.0")

// IsPre16 returns true for versions that still read their sounds from the
// "resources" directory (everything before 1.6, including betas and alphas).
// Snapshot ids like "13w24a" are never considered old
func IsPre16(id string) bool {
	for _, prefix := range []string{"b1.", "a1.", "c0.", "rd-", "inf-"} {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	v, err := semver.NewVersion(id)
	if err != nil {
		return false
	}
	return v.LessThan(pre16)
}
