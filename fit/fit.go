// Package fit scores a model descriptor against a hardware snapshot. Every
// assessment is a pure function of its inputs: no I/O, no mutation, so the
// whole catalog can be assessed concurrently against one shared snapshot.
package fit

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sammcj/llmfit/catalog"
	"github.com/sammcj/llmfit/hardware"
)

// RunMode is the execution strategy a model would use on the scored system.
type RunMode int

const (
	// RunModeGPU means the model fits entirely in dedicated GPU memory.
	RunModeGPU RunMode = iota
	// RunModeCPUOffload means a GPU exists but cannot be confirmed to hold
	// the whole model, so system RAM bears the offloaded weight.
	RunModeCPUOffload
	// RunModeCPUOnly means the model runs without any GPU involvement.
	RunModeCPUOnly
)

func (m RunMode) String() string {
	switch m {
	case RunModeGPU:
		return "GPU"
	case RunModeCPUOffload:
		return "Offload"
	case RunModeCPUOnly:
		return "CPU"
	default:
		return "Unknown"
	}
}

// FitLevel grades how comfortably a model's requirement sits within the pool
// it would actually use.
type FitLevel int

const (
	FitPerfect FitLevel = iota
	FitGood
	FitMarginal
	FitTooTight
)

func (l FitLevel) String() string {
	switch l {
	case FitPerfect:
		return "Perfect"
	case FitGood:
		return "Good"
	case FitMarginal:
		return "Marginal"
	case FitTooTight:
		return "Too Tight"
	default:
		return "Unknown"
	}
}

// Runnable reports whether the grade means the model is worth attempting.
func (l FitLevel) Runnable() bool {
	return l != FitTooTight
}

// Thresholds are the utilisation percentage boundaries between grades. They
// are tunable policy, not physical limits.
type Thresholds struct {
	PerfectPct  float64
	GoodPct     float64
	MarginalPct float64
}

var DefaultThresholds = Thresholds{PerfectPct: 50, GoodPct: 75, MarginalPct: 95}

// maxUtilizationPct caps the reported utilisation so near-zero pools don't
// produce absurd percentages.
const maxUtilizationPct = 999.0

// Assessment is the verdict for one model on one snapshot. It embeds the
// model so the presentation layer can render a row from the assessment alone.
type Assessment struct {
	Model             catalog.ModelSpec
	RunMode           RunMode
	FitLevel          FitLevel
	MemoryRequiredGB  float64
	MemoryAvailableGB float64
	UtilizationPct    float64
	Notes             []string
}

// Assess computes the fit of a single model against a snapshot. Deterministic
// for fixed inputs and safe to call concurrently.
func Assess(specs hardware.SystemSnapshot, model catalog.ModelSpec, thresholds Thresholds) Assessment {
	mode := selectRunMode(specs, model)

	var required, available float64
	switch mode {
	case RunModeGPU:
		required = *model.MinVRAMGB
		available = *specs.GPUMemoryGB
	default:
		// Offloaded or CPU-only weights land in system RAM
		required = model.MinRAMGB
		available = specs.AvailableRAMGB
	}

	utilization, level := grade(required, available, thresholds)

	return Assessment{
		Model:             model,
		RunMode:           mode,
		FitLevel:          level,
		MemoryRequiredGB:  required,
		MemoryAvailableGB: available,
		UtilizationPct:    utilization,
		Notes:             buildNotes(specs, model, mode, utilization),
	}
}

// AssessAll scores every model against the same snapshot. Assessments are
// independent, so they fan out across a bounded set of workers; results keep
// the input ordering.
func AssessAll(specs hardware.SystemSnapshot, models []catalog.ModelSpec, thresholds Thresholds) []Assessment {
	results := make([]Assessment, len(models))

	workers := runtime.NumCPU()
	if workers > len(models) {
		workers = len(models)
	}
	if workers < 1 {
		workers = 1
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = Assess(specs, models[i], thresholds)
			}
		}()
	}
	for i := range models {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results
}

func selectRunMode(specs hardware.SystemSnapshot, model catalog.ModelSpec) RunMode {
	if model.MinVRAMGB == nil {
		// The model has no GPU requirement at all
		return RunModeCPUOnly
	}
	if !specs.HasGPU {
		return RunModeCPUOnly
	}
	if specs.GPUMemoryGB == nil || *specs.GPUMemoryGB <= 0 {
		// GPU present but its capacity cannot be confirmed for this model
		return RunModeCPUOffload
	}
	if *specs.GPUMemoryGB >= *model.MinVRAMGB {
		return RunModeGPU
	}
	return RunModeCPUOffload
}

func grade(required, available float64, thresholds Thresholds) (float64, FitLevel) {
	if available <= 0 {
		return maxUtilizationPct, FitTooTight
	}

	utilization := required / available * 100
	if utilization < 0 {
		utilization = 0
	}
	if utilization > maxUtilizationPct {
		utilization = maxUtilizationPct
	}

	switch {
	case utilization <= thresholds.PerfectPct:
		return utilization, FitPerfect
	case utilization <= thresholds.GoodPct:
		return utilization, FitGood
	case utilization <= thresholds.MarginalPct:
		return utilization, FitMarginal
	default:
		return utilization, FitTooTight
	}
}

func buildNotes(specs hardware.SystemSnapshot, model catalog.ModelSpec, mode RunMode, utilization float64) []string {
	var notes []string

	switch mode {
	case RunModeGPU:
		if specs.UnifiedMemory {
			notes = append(notes, "Unified memory: the GPU pool is shared with the OS and other applications.")
		}
	case RunModeCPUOffload:
		if specs.GPUMemoryGB == nil || *specs.GPUMemoryGB <= 0 {
			notes = append(notes, "GPU detected but its memory capacity could not be confirmed; actual performance may vary.")
		} else if model.MinVRAMGB != nil {
			notes = append(notes, fmt.Sprintf(
				"Needs %.1f GB VRAM but only %.1f GB is available; some layers will be offloaded to system RAM.",
				*model.MinVRAMGB, *specs.GPUMemoryGB))
		}
	case RunModeCPUOnly:
		if model.MinVRAMGB != nil && !specs.HasGPU {
			notes = append(notes, "No GPU detected; the model will run entirely on the CPU.")
		}
	}

	if utilization > 90 {
		notes = append(notes, "Memory headroom is tight; close other applications before loading this model.")
	}

	if model.RecommendedRAMGB > specs.AvailableRAMGB {
		notes = append(notes, fmt.Sprintf(
			"Recommended RAM is %.1f GB, only %.1f GB is currently available.",
			model.RecommendedRAMGB, specs.AvailableRAMGB))
	}

	return notes
}
