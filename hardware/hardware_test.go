package hardware

import (
	"context"
	"testing"
)

func TestDetectInvariants(t *testing.T) {
	// Probes are faked out so detection only touches the OS for RAM and CPU
	// inventory, which is safe on any test host.
	env := probeEnv{run: fakeRunner(nil, nil), sysfsDRMPath: t.TempDir()}

	snapshot := detect(context.Background(), env, gpuProbes)

	if snapshot.AvailableRAMGB > snapshot.TotalRAMGB {
		t.Errorf("AvailableRAMGB %.2f > TotalRAMGB %.2f", snapshot.AvailableRAMGB, snapshot.TotalRAMGB)
	}
	if snapshot.UnifiedMemory && !snapshot.HasGPU {
		t.Error("UnifiedMemory set without HasGPU")
	}
	if snapshot.CPUName == "" {
		t.Error("CPUName is empty, want a brand string or the sentinel")
	}
	if snapshot.HasGPU {
		t.Error("HasGPU = true with every probe faked negative")
	}
}

func TestDetectUnifiedImpliesGPU(t *testing.T) {
	env := probeEnv{
		run: fakeRunner(map[string]string{
			"system_profiler": "      Chipset Model: Apple M4 Pro\n",
		}, nil),
		sysfsDRMPath: t.TempDir(),
	}

	snapshot := detect(context.Background(), env, gpuProbes)

	if !snapshot.HasGPU {
		t.Fatal("HasGPU = false, want true for Apple Silicon signal")
	}
	if !snapshot.UnifiedMemory {
		t.Fatal("UnifiedMemory = false, want true for Apple Silicon signal")
	}
	if snapshot.GPUMemoryGB == nil {
		t.Fatal("GPUMemoryGB = nil, want the shared pool estimate")
	}
	// The shared pool estimate is the available RAM measured at detection time
	if *snapshot.GPUMemoryGB != snapshot.AvailableRAMGB {
		t.Errorf("GPUMemoryGB = %.2f, want AvailableRAMGB %.2f", *snapshot.GPUMemoryGB, snapshot.AvailableRAMGB)
	}
}

func TestBytesToGB(t *testing.T) {
	if got := bytesToGB(17179869184); got != 16.0 {
		t.Errorf("bytesToGB(16GiB) = %v, want 16.0", got)
	}
	if got := bytesToGB(0); got != 0.0 {
		t.Errorf("bytesToGB(0) = %v, want 0.0", got)
	}
}
