package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sammcj/llmfit/catalog"
	"github.com/sammcj/llmfit/fit"
	"github.com/sammcj/llmfit/hardware"
)

func TestPrintSummary(t *testing.T) {
	snapshot := hardware.SystemSnapshot{
		TotalRAMGB:     32.0,
		AvailableRAMGB: 20.0,
		TotalCPUCores:  16,
		CPUName:        "Test CPU",
		HasGPU:         true,
		GPUMemoryGB:    gb(24.0),
	}
	models := []catalog.ModelSpec{
		{Name: "fits:8b", Provider: "Meta", ParameterCount: "8B", Quantization: "Q4_K_M",
			ContextLength: 131072, MinVRAMGB: gb(6.0), MinRAMGB: 8, RecommendedRAMGB: 16, UseCase: "chat"},
		{Name: "huge:70b", Provider: "Meta", ParameterCount: "70B", Quantization: "Q4_K_M",
			ContextLength: 131072, MinVRAMGB: gb(40.0), MinRAMGB: 48, RecommendedRAMGB: 64, UseCase: "reasoning"},
	}
	fits := fit.AssessAll(snapshot, models, fit.DefaultThresholds)

	var buf bytes.Buffer
	printSummary(&buf, snapshot, fits)
	out := buf.String()

	for _, want := range []string{
		"CPU: Test CPU (16 cores)",
		"Total RAM: 32.00 GB",
		"Available RAM: 20.00 GB",
		"GPU: 24.0 GB VRAM",
		"fits:8b",
		"huge:70b",
		"Perfect",
		"Too Tight",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSummaryNoGPU(t *testing.T) {
	snapshot := hardware.SystemSnapshot{
		TotalRAMGB: 16.0, AvailableRAMGB: 10.0, TotalCPUCores: 8, CPUName: hardware.UnknownCPU,
	}

	var buf bytes.Buffer
	printSummary(&buf, snapshot, nil)

	if !strings.Contains(buf.String(), "GPU: not detected") {
		t.Errorf("summary output missing no-GPU line:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), hardware.UnknownCPU) {
		t.Errorf("summary output missing CPU sentinel:\n%s", buf.String())
	}
}
