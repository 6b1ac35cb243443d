package minecraft

import "github.com/iamfatinilham/nuxcraft-pycher/internals/platform"

// Rule is a rule that can be applied to an argument or library.
// It can be used to determine if the argument or library should be applied to a specific OS.
type Rule struct {
	Action   string          `json:"action"`
	OS       OS              `json:"os"`
	Features map[string]bool `json:"features,omitempty"`
}

// OS defines the feature of an OS that can be used in a [Rule] to determine if it should be applied.
type OS struct {
	Name string `json:"name,omitempty"`
	// Version of the os (can be a regex string). It is not evaluated
	Version string `json:"version,omitempty"`
	// Arch of the system
	Arch string `json:"arch,omitempty"`
}

const (
	// ActionAllow marks a rule that includes an entry
	ActionAllow = "allow"
	// ActionDisallow marks a rule that excludes an entry
	ActionDisallow = "disallow"
)

// Rules is an ordered list of rules. The last matching rule decides.
type Rules []Rule

// Allowed returns true if the entry guarded by these rules applies to p.
// Rules that require features never match.
func (r Rules) Allowed(p platform.Platform) bool {
	return r.AllowedWith(p, nil)
}

// AllowedWith is like Allowed but feature guarded rules match
// when all of their features have the wanted value in features
func (r Rules) AllowedWith(p platform.Platform, features map[string]bool) bool {
	if len(r) == 0 {
		return true
	}

	allowed := false
	for _, rule := range r {
		if rule.matches(p, features) {
			allowed = rule.Action == ActionAllow
		}
	}
	return allowed
}

// matches returns true if the rule applies to p. A rule without an os
// constraint applies everywhere
func (r Rule) matches(p platform.Platform, features map[string]bool) bool {
	for name, want := range r.Features {
		if features[name] != want {
			return false
		}
	}

	if r.OS.Name != "" && !p.Matches(r.OS.Name) {
		return false
	}

	if r.OS.Arch != "" && r.OS.Arch != p.Arch {
		return false
	}

	return true
}
