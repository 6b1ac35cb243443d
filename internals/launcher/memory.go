package launcher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pbnjay/memory"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	// FallbackMemoryMB is used when the memory setting can not be parsed
	FallbackMemoryMB = 2048
	// maxInitialHeapMB caps -Xms
	maxInitialHeapMB = 1024
)

// ParseMemory converts strings like "4G", "512m" or "3072" to megabytes.
// Invalid input returns FallbackMemoryMB
func ParseMemory(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))

	var (
		mb  float64
		err error
	)
	switch {
	case strings.HasSuffix(s, "G"):
		mb, err = strconv.ParseFloat(s[:len(s)-1], 64)
		mb *= 1024
	case strings.HasSuffix(s, "M"):
		mb, err = strconv.ParseFloat(s[:len(s)-1], 64)
	default:
		var n int
		n, err = strconv.Atoi(s)
		mb = float64(n)
	}
	if err != nil {
		return FallbackMemoryMB
	}
	return int(mb)
}

// HeapFlags returns -Xmx and -Xms for maxMB
func HeapFlags(maxMB int) []string {
	minMB := maxMB
	if minMB > maxInitialHeapMB {
		minMB = maxInitialHeapMB
	}
	return []string{fmt.Sprintf("-Xmx%dM", maxMB), fmt.Sprintf("-Xms%dM", minMB)}
}

// memoryWarnings returns hints if maxMB does not fit into the system memory
func memoryWarnings(maxMB int) []string {
	want := uint64(maxMB) * 1024 * 1024
	warnings := []string{}

	if maxMB <= 0 {
		return append(warnings, fmt.Sprintf("Max memory of %dM is not usable. Java will refuse to start", maxMB))
	}

	if total := memory.TotalMemory(); total != 0 && want > total {
		warnings = append(warnings, fmt.Sprintf(
			"Max memory (%s) is more than the total system memory (%s)",
			humanize.IBytes(want),
			humanize.IBytes(total),
		))
		return warnings
	}

	if vm, err := mem.VirtualMemory(); err == nil && want > vm.Available {
		warnings = append(warnings, fmt.Sprintf(
			"Max memory (%s) is more than the currently available memory (%s)",
			humanize.IBytes(want),
			humanize.IBytes(vm.Available),
		))
	}
	return warnings
}
