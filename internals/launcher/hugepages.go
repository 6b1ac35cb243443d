package launcher

import (
	"strings"
)

// HugePages is the outcome of the huge/large pages detection
type HugePages int

const (
	// HugePagesUnavailable means the system does not support them (or we could not tell)
	HugePagesUnavailable HugePages = iota
	// HugePagesEnabled means the jvm flags were added
	HugePagesEnabled
	// HugePagesDisabled means the user disabled them
	HugePagesDisabled
)

var hugePagesFlags = []string{"-XX:+UseLargePages", "-XX:+AlwaysPreTouch"}

// thpPath is the linux transparent huge pages setting
const thpPath = "/sys/kernel/mm/transparent_hugepage/enabled"

// thpEnabled parses the content of thpPath. The active mode is in brackets
func thpEnabled(content string) bool {
	return strings.Contains(content, "[always]") || strings.Contains(content, "[madvise]")
}

func (l *Launcher) hugePages() HugePages {
	if l.Config.DisableHugePages {
		return HugePagesDisabled
	}
	if l.hugePagesSupported() {
		return HugePagesEnabled
	}
	return HugePagesUnavailable
}

func (l *Launcher) reportHugePages(status HugePages) {
	switch status {
	case HugePagesEnabled:
		l.Logger.Success(hugePagesName + " enabled")
	case HugePagesDisabled:
		l.Logger.Log(hugePagesName + " has been disabled by the user.")
	default:
		l.Logger.Log("NOTE: " + hugePagesName + " not detected or disabled.")
		l.Logger.Log("      For optimal performance, consider enabling them on your system (Optional).")
	}
}
