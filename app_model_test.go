package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sammcj/llmfit/catalog"
	"github.com/sammcj/llmfit/config"
	"github.com/sammcj/llmfit/fit"
	"github.com/sammcj/llmfit/hardware"
)

func testAppModel(t *testing.T) *AppModel {
	t.Helper()

	snapshot := hardware.SystemSnapshot{
		TotalRAMGB:     32.0,
		AvailableRAMGB: 20.0,
		TotalCPUCores:  16,
		CPUName:        "Test CPU",
		HasGPU:         true,
		GPUMemoryGB:    gb(24.0),
	}
	models := []catalog.ModelSpec{
		{Name: "small:3b", Provider: "Meta", ParameterCount: "3B", Quantization: "Q4_K_M",
			ContextLength: 8192, MinRAMGB: 4, RecommendedRAMGB: 8, UseCase: "chat"},
		{Name: "coder:14b", Provider: "Alibaba", ParameterCount: "14B", Quantization: "Q4_K_M",
			ContextLength: 32768, MinVRAMGB: gb(10.0), MinRAMGB: 12, RecommendedRAMGB: 24, UseCase: "code"},
		{Name: "huge:70b", Provider: "Meta", ParameterCount: "70B", Quantization: "Q4_K_M",
			ContextLength: 131072, MinVRAMGB: gb(40.0), MinRAMGB: 48, RecommendedRAMGB: 64, UseCase: "reasoning"},
	}

	cfg := &config.Config{SortOrder: "fit"}
	fits := fit.AssessAll(snapshot, models, fit.DefaultThresholds)
	sortFits(fits, cfg.SortOrder)
	return NewAppModel(snapshot, fits, fit.DefaultThresholds, cfg)
}

func TestNewAppModelShowsAllModels(t *testing.T) {
	m := testAppModel(t)

	if len(m.filtered) != 3 {
		t.Errorf("filtered = %d rows, want 3", len(m.filtered))
	}
	if len(m.table.Rows()) != 3 {
		t.Errorf("table has %d rows, want 3", len(m.table.Rows()))
	}

	want := []string{"Alibaba", "Meta"}
	if len(m.providers) != len(want) || m.providers[0] != want[0] || m.providers[1] != want[1] {
		t.Errorf("providers = %v, want %v", m.providers, want)
	}
}

func TestProviderToggleFilters(t *testing.T) {
	m := testAppModel(t)

	// Providers are sorted, so "1" toggles Alibaba off
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	m = updated.(*AppModel)

	if len(m.filtered) != 2 {
		t.Fatalf("filtered = %d rows after toggling Alibaba off, want 2", len(m.filtered))
	}
	for _, idx := range m.filtered {
		if m.allFits[idx].Model.Provider == "Alibaba" {
			t.Errorf("Alibaba model %s still visible after provider toggle", m.allFits[idx].Model.Name)
		}
	}

	// Toggle back on
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	m = updated.(*AppModel)
	if len(m.filtered) != 3 {
		t.Errorf("filtered = %d rows after re-enabling Alibaba, want 3", len(m.filtered))
	}
}

func TestFitFilterCycle(t *testing.T) {
	m := testAppModel(t)

	// huge:70b does not fit 24 GB VRAM or 20 GB RAM, the others are runnable
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = updated.(*AppModel)

	if m.fitFilter != FilterRunnable {
		t.Fatalf("fitFilter = %v, want FilterRunnable", m.fitFilter)
	}
	for _, idx := range m.filtered {
		if !m.allFits[idx].FitLevel.Runnable() {
			t.Errorf("non-runnable model %s visible under Runnable filter", m.allFits[idx].Model.Name)
		}
	}

	// Cycling through the remaining bands wraps back to All
	for i := 0; i < 4; i++ {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
		m = updated.(*AppModel)
	}
	if m.fitFilter != FilterAll {
		t.Errorf("fitFilter after full cycle = %v, want FilterAll", m.fitFilter)
	}
	if len(m.filtered) != 3 {
		t.Errorf("filtered = %d rows under All, want 3", len(m.filtered))
	}
}

func TestSearchFiltersRows(t *testing.T) {
	m := testAppModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(*AppModel)
	if !m.searching {
		t.Fatal("searching = false after pressing /")
	}

	for _, r := range "coder" {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(*AppModel)
	}

	if len(m.filtered) != 1 {
		t.Fatalf("filtered = %d rows for query 'coder', want 1", len(m.filtered))
	}
	if m.allFits[m.filtered[0]].Model.Name != "coder:14b" {
		t.Errorf("visible model = %s, want coder:14b", m.allFits[m.filtered[0]].Model.Name)
	}

	// Esc leaves search mode but keeps the query applied
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*AppModel)
	if m.searching {
		t.Error("searching = true after esc")
	}
	if len(m.filtered) != 1 {
		t.Errorf("filtered = %d rows after leaving search mode, want 1", len(m.filtered))
	}

	// Search also matches use-case text
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(*AppModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	m = updated.(*AppModel)
	for _, r := range "reasoning" {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(*AppModel)
	}
	if len(m.filtered) != 1 || m.allFits[m.filtered[0]].Model.Name != "huge:70b" {
		t.Errorf("query 'reasoning' matched %d rows, want just huge:70b", len(m.filtered))
	}
}

func TestInstalledModelsMarker(t *testing.T) {
	m := testAppModel(t)

	updated, _ := m.Update(installedModelsMsg{installed: map[string]bool{"coder:14b": true}})
	m = updated.(*AppModel)

	found := false
	for _, row := range m.table.Rows() {
		if strings.Contains(row[1], "coder:14b") && strings.Contains(row[1], "✓") {
			found = true
		}
		if strings.Contains(row[1], "small:3b") && strings.Contains(row[1], "✓") {
			t.Error("small:3b marked installed without being in the installed set")
		}
	}
	if !found {
		t.Error("coder:14b not marked installed")
	}
}

func TestCatalogReloadReassesses(t *testing.T) {
	m := testAppModel(t)

	reloaded := []catalog.ModelSpec{
		{Name: "fresh:7b", Provider: "Mistral", ParameterCount: "7B", Quantization: "Q4_K_M",
			ContextLength: 32768, MinVRAMGB: gb(5.0), MinRAMGB: 8, RecommendedRAMGB: 16, UseCase: "chat"},
	}
	updated, _ := m.Update(catalogReloadedMsg{models: reloaded})
	m = updated.(*AppModel)

	if len(m.allFits) != 1 {
		t.Fatalf("allFits = %d after reload, want 1", len(m.allFits))
	}
	if m.allFits[0].Model.Name != "fresh:7b" {
		t.Errorf("reloaded model = %s, want fresh:7b", m.allFits[0].Model.Name)
	}
	if m.allFits[0].RunMode != fit.RunModeGPU {
		t.Errorf("reloaded model RunMode = %v, want GPU (5 GB fits 24 GB VRAM)", m.allFits[0].RunMode)
	}
}

func TestDetailViewShowsNotes(t *testing.T) {
	m := testAppModel(t)
	m.width, m.height = 120, 40

	// Select huge:70b via search, then open the detail view
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(*AppModel)
	for _, r := range "huge" {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(*AppModel)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*AppModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*AppModel)

	if !m.showDetail {
		t.Fatal("showDetail = false after enter")
	}

	view := m.detailView()
	if !strings.Contains(view, "huge:70b") {
		t.Errorf("detail view does not name the model:\n%s", view)
	}
	if !strings.Contains(view, "offloaded to system RAM") {
		t.Errorf("detail view missing the offload note:\n%s", view)
	}
}
