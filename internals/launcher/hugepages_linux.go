package launcher

import (
	"github.com/spf13/afero"
)

const hugePagesName = "Transparent Huge Pages (THP)"

func (l *Launcher) hugePagesSupported() bool {
	content, err := afero.ReadFile(l.fs(), thpPath)
	if err != nil {
		return false
	}
	return thpEnabled(string(content))
}
