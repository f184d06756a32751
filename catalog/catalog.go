// Package catalog holds the model descriptors llmfit scores against the
// detected hardware. A curated catalog ships embedded in the binary; users can
// merge their own JSON catalog over it.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/sammcj/llmfit/logging"
)

//go:embed models.json
var embeddedCatalog []byte

// ModelSpec describes one runnable model variant. MinVRAMGB is nil for models
// published without a GPU requirement, meaning they are usable CPU-only.
type ModelSpec struct {
	Name             string   `json:"name"`
	Provider         string   `json:"provider"`
	ParameterCount   string   `json:"parameter_count"`
	Quantization     string   `json:"quantization"`
	ContextLength    int      `json:"context_length"`
	MinVRAMGB        *float64 `json:"min_vram_gb,omitempty"`
	MinRAMGB         float64  `json:"min_ram_gb"`
	RecommendedRAMGB float64  `json:"recommended_ram_gb"`
	UseCase          string   `json:"use_case"`
}

// Load returns the embedded catalog.
func Load() []ModelSpec {
	models, err := parse(embeddedCatalog)
	if err != nil {
		// The embedded catalog is validated by tests, this is unreachable in
		// a released binary
		logging.ErrorLogger.Printf("Embedded catalog is invalid: %v", err)
		return nil
	}
	return models
}

// LoadFile parses a user catalog file. Entries must carry at least a name and
// a positive minimum RAM figure.
func LoadFile(path string) ([]ModelSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	models, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return models, nil
}

// Merge overlays extra models onto base. An extra entry with the same name
// replaces the base entry, otherwise it is appended.
func Merge(base, extra []ModelSpec) []ModelSpec {
	merged := make([]ModelSpec, len(base))
	copy(merged, base)

	index := make(map[string]int, len(merged))
	for i, model := range merged {
		index[model.Name] = i
	}

	for _, model := range extra {
		if i, ok := index[model.Name]; ok {
			merged[i] = model
		} else {
			index[model.Name] = len(merged)
			merged = append(merged, model)
		}
	}
	return merged
}

// Providers returns the unique provider names in the catalog, sorted.
func Providers(models []ModelSpec) []string {
	seen := make(map[string]bool)
	var providers []string
	for _, model := range models {
		if model.Provider == "" || seen[model.Provider] {
			continue
		}
		seen[model.Provider] = true
		providers = append(providers, model.Provider)
	}
	sort.Strings(providers)
	return providers
}

func parse(data []byte) ([]ModelSpec, error) {
	var models []ModelSpec
	if err := json.Unmarshal(data, &models); err != nil {
		return nil, err
	}
	for i, model := range models {
		if model.Name == "" {
			return nil, fmt.Errorf("model at index %d has no name", i)
		}
		if model.MinRAMGB <= 0 {
			return nil, fmt.Errorf("model %s has no minimum RAM requirement", model.Name)
		}
	}
	return models, nil
}
