package hardware

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sammcj/llmfit/logging"
)

// probeTimeout bounds each external probe command. A tool that hangs (broken
// driver, stuck management daemon) is treated the same as one that is missing.
const probeTimeout = 5 * time.Second

// intelVendorID is the PCI vendor ID Intel devices report under sysfs.
const intelVendorID = "0x8086"

// commandRunner executes an external command and returns its stdout. Probes
// call through this so tests can substitute canned output for real processes.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// probeEnv carries everything a probe is allowed to touch: a command runner,
// the DRM sysfs root and the available system RAM measured before the cascade
// ran (used as the shared-pool estimate on unified memory systems).
type probeEnv struct {
	run            commandRunner
	sysfsDRMPath   string
	availableRAMGB float64
}

func defaultProbeEnv() probeEnv {
	return probeEnv{
		run:          runCommand,
		sysfsDRMPath: "/sys/class/drm",
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Output()
}

// gpuSignal is a positive probe result. A nil memoryGB means the probe could
// confirm a GPU but not the size of its memory pool; a pointer to zero means
// the GPU shares system memory with no dedicated pool.
type gpuSignal struct {
	memoryGB *float64
	unified  bool
}

type gpuProbe struct {
	name string
	run  func(ctx context.Context, env probeEnv) *gpuSignal
}

// gpuProbes is the detection cascade, tried in order. The first probe that
// returns a signal wins and the rest are skipped.
var gpuProbes = []gpuProbe{
	{name: "nvidia-smi", run: probeNvidia},
	{name: "rocm-smi", run: probeROCm},
	{name: "intel-drm", run: probeIntel},
	{name: "apple-silicon", run: probeApple},
}

func detectGPU(ctx context.Context, env probeEnv, probes []gpuProbe) (hasGPU bool, memoryGB *float64, unified bool) {
	for _, probe := range probes {
		signal := probe.run(ctx, env)
		if signal == nil {
			logging.DebugLogger.Printf("GPU probe %s: no signal", probe.name)
			continue
		}
		logging.DebugLogger.Printf("GPU probe %s matched", probe.name)
		return true, signal.memoryGB, signal.unified
	}
	return false, nil, false
}

// probeNvidia asks nvidia-smi for the total memory of the first GPU. The
// value is reported in MiB.
func probeNvidia(ctx context.Context, env probeEnv) *gpuSignal {
	out, err := env.run(ctx, "nvidia-smi", "--query-gpu=memory.total", "--format=csv,noheader,nounits")
	if err != nil {
		return nil
	}

	line := strings.TrimSpace(string(out))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}

	vramMB, err := strconv.ParseFloat(line, 64)
	if err != nil {
		logging.DebugLogger.Printf("nvidia-smi output not parsable: %q", line)
		return nil
	}

	vramGB := vramMB / 1024.0
	return &gpuSignal{memoryGB: &vramGB}
}

// probeROCm treats a clean rocm-smi exit as proof of an AMD GPU. Memory
// reporting varies too much across ROCm versions to parse reliably, so the
// pool size is left unknown.
func probeROCm(ctx context.Context, env probeEnv) *gpuSignal {
	if _, err := env.run(ctx, "rocm-smi", "--showmeminfo", "vram"); err != nil {
		return nil
	}
	return &gpuSignal{memoryGB: nil}
}

// probeIntel walks the DRM sysfs tree for Intel devices. Discrete Arc cards
// expose their VRAM under device/mem_info_vram_total; integrated Arc-class
// GPUs have no dedicated pool and are identified by name via lspci instead.
func probeIntel(ctx context.Context, env probeEnv) *gpuSignal {
	if entries, err := os.ReadDir(env.sysfsDRMPath); err == nil {
		for _, entry := range entries {
			devicePath := filepath.Join(env.sysfsDRMPath, entry.Name(), "device")

			vendor, err := os.ReadFile(filepath.Join(devicePath, "vendor"))
			if err != nil || strings.TrimSpace(string(vendor)) != intelVendorID {
				continue
			}

			if raw, err := os.ReadFile(filepath.Join(devicePath, "mem_info_vram_total")); err == nil {
				if vramBytes, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64); err == nil && vramBytes > 0 {
					vramGB := bytesToGB(vramBytes)
					return &gpuSignal{memoryGB: &vramGB}
				}
			}

			// Intel device without a VRAM attribute: integrated Arc-class
			// GPUs share system memory, confirm by name
			if signal := intelArcFromLspci(ctx, env); signal != nil {
				return signal
			}
		}
	}

	// sysfs unavailable or no Intel card directories
	return intelArcFromLspci(ctx, env)
}

func intelArcFromLspci(ctx context.Context, env probeEnv) *gpuSignal {
	out, err := env.run(ctx, "lspci")
	if err != nil {
		return nil
	}
	for _, line := range strings.Split(string(out), "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "intel") && strings.Contains(lower, "arc") {
			shared := 0.0
			return &gpuSignal{memoryGB: &shared}
		}
	}
	return nil
}

// probeApple identifies Apple Silicon via system_profiler. The GPU draws from
// the same pool as the CPU, so the available system RAM measured before the
// cascade is reported as the shared pool estimate.
func probeApple(ctx context.Context, env probeEnv) *gpuSignal {
	out, err := env.run(ctx, "system_profiler", "SPDisplaysDataType")
	if err != nil {
		return nil
	}

	for _, line := range strings.Split(string(out), "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "apple m") || strings.Contains(lower, "apple gpu") {
			shared := env.availableRAMGB
			return &gpuSignal{memoryGB: &shared, unified: true}
		}
	}
	return nil
}
