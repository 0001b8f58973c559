package ops

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostStats is a snapshot of the machine the bot runs on.
type HostStats struct {
	Platform          string    `json:"platform,omitempty"`
	Kernel            string    `json:"kernel,omitempty"`
	CPUs              int       `json:"cpus,omitempty"`
	MemoryTotalGB     float64   `json:"memory_total_gb,omitempty"`
	MemoryUsedPercent float64   `json:"memory_used_percent,omitempty"`
	BootTime          time.Time `json:"boot_time,omitempty"`
}

const gbToB uint64 = 1024 * 1024 * 1024

func bytesToGigabytes(b uint64) float64 {
	return float64(b) / float64(gbToB)
}

// snapshotHost collects what it can, a failing probe leaves its fields zero.
func snapshotHost() *HostStats {
	var hs HostStats
	if n, err := cpu.Counts(true); err == nil {
		hs.CPUs = n
	}
	if ms, err := mem.VirtualMemory(); err == nil {
		hs.MemoryTotalGB = bytesToGigabytes(ms.Total)
		hs.MemoryUsedPercent = ms.UsedPercent
	} else {
		logger.Debugf("memory stats: %v", err)
	}
	if bt, err := host.BootTime(); err == nil {
		hs.BootTime = time.Unix(int64(bt), 0).UTC()
	}
	if platform, _, version, err := host.PlatformInformation(); err == nil {
		hs.Platform = platform
		hs.Kernel = version
	}
	return &hs
}
