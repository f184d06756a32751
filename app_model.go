// app_model.go contains the AppModel struct which drives the interactive
// model browser: a fit table over the catalog, a per-model detail view,
// free-text search and provider/fit filters.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sammcj/llmfit/catalog"
	"github.com/sammcj/llmfit/config"
	"github.com/sammcj/llmfit/fit"
	"github.com/sammcj/llmfit/hardware"
	"github.com/sammcj/llmfit/logging"
)

// FitFilter restricts the table to a band of fit grades.
type FitFilter int

const (
	FilterAll FitFilter = iota
	FilterRunnable
	FilterPerfect
	FilterGood
	FilterMarginal
)

func (f FitFilter) Label() string {
	switch f {
	case FilterRunnable:
		return "Runnable"
	case FilterPerfect:
		return "Perfect"
	case FilterGood:
		return "Good"
	case FilterMarginal:
		return "Marginal"
	default:
		return "All"
	}
}

func (f FitFilter) next() FitFilter {
	if f == FilterMarginal {
		return FilterAll
	}
	return f + 1
}

func (f FitFilter) matches(level fit.FitLevel) bool {
	switch f {
	case FilterRunnable:
		return level.Runnable()
	case FilterPerfect:
		return level == fit.FitPerfect
	case FilterGood:
		return level == fit.FitGood
	case FilterMarginal:
		return level == fit.FitMarginal
	default:
		return true
	}
}

type installedModelsMsg struct {
	installed map[string]bool
}

type catalogReloadedMsg struct {
	models []catalog.ModelSpec
}

type AppModel struct {
	width             int
	height            int
	specs             hardware.SystemSnapshot
	cfg               *config.Config
	thresholds        fit.Thresholds
	allFits           []fit.Assessment
	filtered          []int // indices into allFits, in display order
	providers         []string
	selectedProviders []bool
	fitFilter         FitFilter
	searching         bool
	searchInput       textinput.Model
	table             table.Model
	showDetail        bool
	installed         map[string]bool
	keys              *KeyMap
	message           string
}

func NewAppModel(specs hardware.SystemSnapshot, fits []fit.Assessment, thresholds fit.Thresholds, cfg *config.Config) *AppModel {
	models := make([]catalog.ModelSpec, len(fits))
	for i, f := range fits {
		models[i] = f.Model
	}
	providers := catalog.Providers(models)

	selected := make([]bool, len(providers))
	for i := range selected {
		selected[i] = true
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "Press / to search..."
	searchInput.CharLimit = 64

	t := table.New(
		table.WithColumns(tableColumns(getTerminalWidth())),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.Bold(true).Foreground(sectionStyle.GetForeground())
	tableStyles.Selected = tableStyles.Selected.Bold(true).Background(selectedBg)
	t.SetStyles(tableStyles)

	m := &AppModel{
		specs:             specs,
		cfg:               cfg,
		thresholds:        thresholds,
		allFits:           fits,
		providers:         providers,
		selectedProviders: selected,
		fitFilter:         FilterAll,
		searchInput:       searchInput,
		table:             t,
		installed:         map[string]bool{},
		keys:              NewKeyMap(),
	}
	m.applyFilters()
	return m
}

func (m *AppModel) Init() tea.Cmd {
	return nil
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetColumns(tableColumns(m.width))
		m.table.SetWidth(m.width)
		// System bar, search bar and status line take up the rest
		tableHeight := m.height - 8
		if tableHeight < 4 {
			tableHeight = 4
		}
		m.table.SetHeight(tableHeight)
		return m, nil

	case installedModelsMsg:
		m.installed = msg.installed
		m.refreshRows()
		return m, nil

	case catalogReloadedMsg:
		logging.InfoLogger.Printf("Catalog reloaded with %d models", len(msg.models))
		m.allFits = fit.AssessAll(m.specs, msg.models, m.thresholds)
		sortFits(m.allFits, m.cfg.SortOrder)
		m.message = fmt.Sprintf("Catalog reloaded (%d models)", len(msg.models))
		m.applyFilters()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *AppModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), msg.String() == "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.ClearSearch):
		m.searchInput.SetValue("")
		m.applyFilters()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applyFilters()
	return m, cmd
}

func (m *AppModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.showDetail = false
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.FitFilter):
		m.fitFilter = m.fitFilter.next()
		m.applyFilters()
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		if len(m.filtered) > 0 {
			m.showDetail = !m.showDetail
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.showDetail = false
		return m, nil
	}

	// Digits toggle provider filters
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		idx := int(s[0] - '1')
		if idx < len(m.selectedProviders) {
			m.selectedProviders[idx] = !m.selectedProviders[idx]
			m.applyFilters()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// applyFilters recomputes the visible row set from the search query and the
// provider and fit filters, then rebuilds the table rows.
func (m *AppModel) applyFilters() {
	query := strings.ToLower(strings.TrimSpace(m.searchInput.Value()))

	providerAllowed := make(map[string]bool, len(m.providers))
	for i, provider := range m.providers {
		providerAllowed[provider] = m.selectedProviders[i]
	}

	m.filtered = m.filtered[:0]
	for i, f := range m.allFits {
		if !m.fitFilter.matches(f.FitLevel) {
			continue
		}
		if allowed, known := providerAllowed[f.Model.Provider]; known && !allowed {
			continue
		}
		if query != "" && !matchesQuery(f.Model, query) {
			continue
		}
		m.filtered = append(m.filtered, i)
	}

	m.refreshRows()
}

func matchesQuery(model catalog.ModelSpec, query string) bool {
	return strings.Contains(strings.ToLower(model.Name), query) ||
		strings.Contains(strings.ToLower(model.Provider), query) ||
		strings.Contains(strings.ToLower(model.UseCase), query)
}

func (m *AppModel) refreshRows() {
	rows := make([]table.Row, len(m.filtered))
	for rowIdx, fitIdx := range m.filtered {
		f := m.allFits[fitIdx]

		name := f.Model.Name
		if m.installed[f.Model.Name] {
			name += " ✓"
		}

		rows[rowIdx] = table.Row{
			fitStyle(f.FitLevel).Render(fitIndicator),
			name,
			f.Model.Provider,
			f.Model.ParameterCount,
			formatVRAM(f.Model.MinVRAMGB),
			fmt.Sprintf("%.1f GB", f.Model.MinRAMGB),
			runModeStyle(f.RunMode).Render(f.RunMode.String()),
			fmt.Sprintf("%.0f%%", f.UtilizationPct),
			formatContext(f.Model.ContextLength),
			fitStyle(f.FitLevel).Render(f.FitLevel.String()),
			f.Model.UseCase,
		}
	}
	m.table.SetRows(rows)
	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *AppModel) selectedFit() *fit.Assessment {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		return nil
	}
	return &m.allFits[m.filtered[cursor]]
}

func tableColumns(totalWidth int) []table.Column {
	// Fixed columns first, the name and use-case columns share the remainder
	fixed := 2 + 12 + 8 + 9 + 9 + 8 + 6 + 6 + 10
	flex := totalWidth - fixed - 12
	nameWidth := flex / 2
	useCaseWidth := flex - nameWidth
	if nameWidth < 18 {
		nameWidth = 18
	}
	if useCaseWidth < 14 {
		useCaseWidth = 14
	}

	return []table.Column{
		{Title: "", Width: 2},
		{Title: "Model", Width: nameWidth},
		{Title: "Provider", Width: 12},
		{Title: "Params", Width: 8},
		{Title: "VRAM", Width: 9},
		{Title: "RAM", Width: 9},
		{Title: "Mode", Width: 8},
		{Title: "Mem %", Width: 6},
		{Title: "Ctx", Width: 6},
		{Title: "Fit", Width: 10},
		{Title: "Use Case", Width: useCaseWidth},
	}
}

func (m *AppModel) View() string {
	var b strings.Builder

	b.WriteString(m.systemBarView())
	b.WriteString("\n")
	b.WriteString(m.filterBarView())
	b.WriteString("\n")

	if m.showDetail {
		b.WriteString(m.detailView())
	} else {
		b.WriteString(m.table.View())
	}

	b.WriteString("\n")
	b.WriteString(m.statusBarView())

	return b.String()
}

func (m *AppModel) systemBarView() string {
	cpu := fmt.Sprintf("%s (%d cores)", m.specs.CPUName, m.specs.TotalCPUCores)
	ram := fmt.Sprintf("%.1f GB avail / %.1f GB total", m.specs.AvailableRAMGB, m.specs.TotalRAMGB)

	bar := titleStyle.Render(" llmfit ") +
		labelStyle.Render(" CPU: ") + valueStyle.Render(cpu) +
		labelStyle.Render("  │  RAM: ") + ramStyle.Render(ram) +
		labelStyle.Render("  │  ") + gpuStyle.Render(gpuSummary(m.specs))

	return bar
}

func (m *AppModel) filterBarView() string {
	var search string
	if m.searching {
		search = searchStyle.Render("Search: ") + m.searchInput.View()
	} else if m.searchInput.Value() != "" {
		search = labelStyle.Render("Search: ") + valueStyle.Render(m.searchInput.Value())
	} else {
		search = labelStyle.Render("Press / to search...")
	}

	var providerSpans []string
	for i, provider := range m.providers {
		label := fmt.Sprintf("[%d:%s]", i+1, provider)
		if m.selectedProviders[i] {
			providerSpans = append(providerSpans, titleStyle.Render(label))
		} else {
			providerSpans = append(providerSpans, labelStyle.Render(label))
		}
	}

	fitLabel := labelStyle.Render("Fit [f]: ") + searchStyle.Render(m.fitFilter.Label())

	return search + "   " + strings.Join(providerSpans, " ") + "   " + fitLabel
}

func (m *AppModel) detailView() string {
	f := m.selectedFit()
	if f == nil {
		return labelStyle.Render("No model selected")
	}

	style := fitStyle(f.FitLevel)
	var lines []string

	addField := func(label, value string) {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("  %-13s", label))+valueStyle.Render(value))
	}

	lines = append(lines, "")
	addField("Model:", f.Model.Name)
	addField("Provider:", f.Model.Provider)
	addField("Parameters:", f.Model.ParameterCount)
	addField("Quantization:", f.Model.Quantization)
	addField("Context:", fmt.Sprintf("%d tokens", f.Model.ContextLength))
	addField("Use Case:", f.Model.UseCase)
	if m.installed[f.Model.Name] {
		addField("Installed:", "yes (Ollama)")
	}

	lines = append(lines, "", sectionStyle.Render("  ── System Fit ──"), "")
	lines = append(lines, labelStyle.Render("  Fit Level:   ")+style.Bold(true).Render(fitIndicator+" "+f.FitLevel.String()))
	lines = append(lines, labelStyle.Render("  Run Mode:    ")+runModeStyle(f.RunMode).Bold(true).Render(f.RunMode.String()))

	lines = append(lines, "", sectionStyle.Render("  ── Memory ──"), "")
	if f.Model.MinVRAMGB != nil {
		lines = append(lines, labelStyle.Render("  Min VRAM:    ")+
			valueStyle.Render(fmt.Sprintf("%.1f GB", *f.Model.MinVRAMGB))+
			labelStyle.Render("  ("+gpuSummary(m.specs)+")"))
	}
	lines = append(lines, labelStyle.Render("  Min RAM:     ")+
		valueStyle.Render(fmt.Sprintf("%.1f GB", f.Model.MinRAMGB))+
		labelStyle.Render(fmt.Sprintf("  (system: %.1f GB avail)", m.specs.AvailableRAMGB)))
	lines = append(lines, labelStyle.Render("  Rec RAM:     ")+
		valueStyle.Render(fmt.Sprintf("%.1f GB", f.Model.RecommendedRAMGB)))
	lines = append(lines, labelStyle.Render("  Mem Usage:   ")+
		style.Render(fmt.Sprintf("%.1f%%", f.UtilizationPct))+
		labelStyle.Render(fmt.Sprintf("  (%.1f / %.1f GB)", f.MemoryRequiredGB, f.MemoryAvailableGB)))

	if len(f.Notes) > 0 {
		lines = append(lines, "", sectionStyle.Render("  ── Notes ──"), "")
		for _, note := range f.Notes {
			lines = append(lines, valueStyle.Render("  "+note))
		}
	}

	return strings.Join(lines, "\n")
}

func (m *AppModel) statusBarView() string {
	if m.searching {
		return statusStyle.Render(" SEARCH ") + labelStyle.Render("  Type to search  Esc/Enter:done  Ctrl-U:clear")
	}

	detailKey := "Enter:detail"
	if m.showDetail {
		detailKey = "Enter:table"
	}
	counts := fmt.Sprintf("  %d/%d models", len(m.filtered), len(m.allFits))

	status := statusStyle.Render(" NORMAL ") +
		labelStyle.Render(fmt.Sprintf("  ↑↓/jk:navigate  %s  /:search  f:fit filter  1-%d:providers  q:quit%s",
			detailKey, len(m.providers), counts))

	if m.message != "" {
		status += labelStyle.Render("  │  ") + valueStyle.Render(m.message)
	}
	return status
}
