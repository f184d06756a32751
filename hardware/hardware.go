// Package hardware takes a one-time snapshot of local CPU, RAM and GPU
// capacity. Detection is best-effort: probes that fail, time out or are not
// installed degrade to a negative signal rather than an error, so Detect
// always returns a usable snapshot.
package hardware

import (
	"context"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/sammcj/llmfit/logging"
)

// UnknownCPU is reported when the CPU brand string cannot be determined.
const UnknownCPU = "Unknown CPU"

// SystemSnapshot is an immutable capture of system capacity, taken once at
// startup and shared read-only with every fit assessment.
//
// GPUMemoryGB is only meaningful when HasGPU is true. A nil value means a GPU
// was found but the size of its memory pool is unknown; a zero value means the
// GPU shares system memory and has no dedicated pool. When UnifiedMemory is
// true the value is the available system RAM measured at detection time, not
// an independent pool.
type SystemSnapshot struct {
	TotalRAMGB     float64
	AvailableRAMGB float64
	TotalCPUCores  int
	CPUName        string
	HasGPU         bool
	GPUMemoryGB    *float64
	UnifiedMemory  bool
}

// Detect queries the operating environment and returns a snapshot. It never
// fails: any signal that cannot be read is replaced with a documented default
// (zero RAM figures, UnknownCPU, no GPU).
func Detect(ctx context.Context) SystemSnapshot {
	return detect(ctx, defaultProbeEnv(), gpuProbes)
}

func detect(ctx context.Context, env probeEnv, probes []gpuProbe) SystemSnapshot {
	snapshot := SystemSnapshot{CPUName: UnknownCPU}

	if vmStat, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		logging.DebugLogger.Printf("Failed to read memory inventory: %v", err)
	} else {
		snapshot.TotalRAMGB = bytesToGB(vmStat.Total)
		snapshot.AvailableRAMGB = bytesToGB(vmStat.Available)
		if snapshot.AvailableRAMGB > snapshot.TotalRAMGB {
			snapshot.AvailableRAMGB = snapshot.TotalRAMGB
		}
	}

	if count, err := cpu.CountsWithContext(ctx, true); err != nil {
		logging.DebugLogger.Printf("Failed to count CPU cores: %v", err)
	} else {
		snapshot.TotalCPUCores = count
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 && infos[0].ModelName != "" {
		snapshot.CPUName = infos[0].ModelName
	}

	env.availableRAMGB = snapshot.AvailableRAMGB
	snapshot.HasGPU, snapshot.GPUMemoryGB, snapshot.UnifiedMemory = detectGPU(ctx, env, probes)

	logging.InfoLogger.Printf(
		"Detected system: cpu=%q cores=%d ram=%.1f/%.1fGB gpu=%v unified=%v",
		snapshot.CPUName, snapshot.TotalCPUCores,
		snapshot.AvailableRAMGB, snapshot.TotalRAMGB,
		snapshot.HasGPU, snapshot.UnifiedMemory,
	)

	return snapshot
}

func bytesToGB(b uint64) float64 {
	return float64(b) / (1024 * 1024 * 1024)
}
