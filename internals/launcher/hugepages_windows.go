package launcher

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const hugePagesName = "Large Pages"

// hugePagesSupported checks if the process token holds SeLockMemoryPrivilege.
// It is required for -XX:+UseLargePages and usually granted by GPO
func (l *Launcher) hugePagesSupported() bool {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		return false
	}
	defer token.Close()

	var luid windows.LUID
	name, err := windows.UTF16PtrFromString("SeLockMemoryPrivilege")
	if err != nil {
		return false
	}
	if err := windows.LookupPrivilegeValue(nil, name, &luid); err != nil {
		return false
	}

	var size uint32
	// first call only returns the needed size
	_ = windows.GetTokenInformation(token, windows.TokenPrivileges, nil, 0, &size)
	if size == 0 {
		return false
	}
	buf := make([]byte, size)
	if err := windows.GetTokenInformation(token, windows.TokenPrivileges, &buf[0], size, &size); err != nil {
		return false
	}

	privileges := (*windows.Tokenprivileges)(unsafe.Pointer(&buf[0]))
	for _, p := range privileges.AllPrivileges() {
		if p.Luid == luid {
			return true
		}
	}
	return false
}
