// helpers.go contains various helper functions used in the main application.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/sammcj/llmfit/fit"
	"github.com/sammcj/llmfit/hardware"
	"github.com/sammcj/llmfit/logging"
)

func truncate(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= 1 {
		return s[:maxLength]
	}
	return s[:maxLength-1] + "…"
}

func formatVRAM(minVRAMGB *float64) string {
	if minVRAMGB == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f GB", *minVRAMGB)
}

func formatContext(tokens int) string {
	if tokens >= 1000 {
		return fmt.Sprintf("%dk", tokens/1000)
	}
	return fmt.Sprintf("%d", tokens)
}

// gpuSummary phrases the GPU line the same way in the TUI system bar and the
// non-interactive summary.
func gpuSummary(specs hardware.SystemSnapshot) string {
	if !specs.HasGPU {
		return "GPU: not detected"
	}
	if specs.UnifiedMemory {
		shared := 0.0
		if specs.GPUMemoryGB != nil {
			shared = *specs.GPUMemoryGB
		}
		return fmt.Sprintf("GPU: unified memory (%.1f GB shared)", shared)
	}
	switch {
	case specs.GPUMemoryGB == nil:
		return "GPU: detected (VRAM unknown)"
	case *specs.GPUMemoryGB > 0:
		return fmt.Sprintf("GPU: %.1f GB VRAM", *specs.GPUMemoryGB)
	default:
		return "GPU: detected (shared system memory)"
	}
}

// sortFits orders assessments for display. The default "fit" order puts the
// best grades first and breaks ties on utilisation.
func sortFits(fits []fit.Assessment, order string) {
	switch order {
	case "name":
		sort.SliceStable(fits, func(i, j int) bool {
			return strings.ToLower(fits[i].Model.Name) < strings.ToLower(fits[j].Model.Name)
		})
	case "ram":
		sort.SliceStable(fits, func(i, j int) bool {
			return fits[i].Model.MinRAMGB < fits[j].Model.MinRAMGB
		})
	default: // "fit"
		sort.SliceStable(fits, func(i, j int) bool {
			if fits[i].FitLevel != fits[j].FitLevel {
				return fits[i].FitLevel < fits[j].FitLevel
			}
			return fits[i].UtilizationPct < fits[j].UtilizationPct
		})
	}
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		logging.DebugLogger.Printf("Failed to get terminal size: %v", err)
		return 120
	}
	return width
}
