package metrics

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"go.uber.org/atomic"
)

var (
	cpuUsage atomic.Float64

	memUsageBytes atomic.Uint64
)

// CPUUsage returns the latest measured CPU usage of the host in percent.
func CPUUsage() float64 {
	return cpuUsage.Load()
}

// MemUsage returns the latest measured memory usage of allocated heap objects in bytes.
func MemUsage() uint64 {
	return memUsageBytes.Load()
}

func measureCPUUsage() {
	var p float64
	percent, err := cpu.Percent(CPUUsageMeasurementInterval, false)
	if err == nil && len(percent) > 0 {
		p = percent[0]
	}
	cpuUsage.Store(p)
}

func measureMemUsage() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	memUsageBytes.Store(m.Alloc)
}
