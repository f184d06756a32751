// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ollama/ollama/api"

	"github.com/sammcj/llmfit/catalog"
	"github.com/sammcj/llmfit/config"
	"github.com/sammcj/llmfit/fit"
	"github.com/sammcj/llmfit/hardware"
	"github.com/sammcj/llmfit/logging"
)

var (
	Version string // Version will be set during the build process
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	err = logging.Init(cfg.LogLevel, cfg.LogFilePath)
	if err != nil {
		fmt.Println("Error initializing logging:", err)
		os.Exit(1)
	}

	listFlag := flag.Bool("l", false, "Print the system summary and fit table and exit")
	catalogFlag := flag.String("f", "", "Extra model catalog (JSON) merged over the built-in one")
	noOllamaFlag := flag.Bool("no-ollama", false, "Skip checking a local Ollama server for installed models")
	versionFlag := flag.Bool("v", false, "Print the version and exit")

	flag.Parse()

	if *versionFlag {
		fmt.Println(Version)
		os.Exit(0)
	}

	ctx := context.Background()
	specs := hardware.Detect(ctx)

	models := catalog.Load()
	userCatalogPath := cfg.CatalogPath
	if *catalogFlag != "" {
		userCatalogPath = *catalogFlag
	}
	if userCatalogPath != "" {
		extra, err := catalog.LoadFile(userCatalogPath)
		if err != nil {
			message := fmt.Sprintf("Error loading catalog %s: %v", userCatalogPath, err)
			logging.ErrorLogger.Println(message)
			fmt.Println(message)
			os.Exit(1)
		}
		models = catalog.Merge(models, extra)
	}

	thresholds := fit.Thresholds{
		PerfectPct:  cfg.Thresholds.PerfectPct,
		GoodPct:     cfg.Thresholds.GoodPct,
		MarginalPct: cfg.Thresholds.MarginalPct,
	}

	fits := fit.AssessAll(specs, models, thresholds)
	sortFits(fits, cfg.SortOrder)

	applyTheme(config.LoadTheme(cfg.Theme))

	if *listFlag {
		printSummary(os.Stdout, specs, fits)
		return
	}

	app := NewAppModel(specs, fits, thresholds, &cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if !*noOllamaFlag {
		go checkInstalledModels(ctx, cfg.OllamaAPIURL, p)
	}
	if userCatalogPath != "" {
		go watchCatalog(userCatalogPath, p)
	}

	if _, err := p.Run(); err != nil {
		logging.ErrorLogger.Printf("Error running program: %v", err)
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}

// checkInstalledModels asks a local Ollama server which models are already
// pulled so the table can mark them. Any failure is silent: an absent or
// unreachable server just means no markers.
func checkInstalledModels(ctx context.Context, apiURL string, p *tea.Program) {
	parsed, err := url.Parse(apiURL)
	if err != nil {
		logging.DebugLogger.Printf("Invalid Ollama API URL %q: %v", apiURL, err)
		return
	}

	client := api.NewClient(parsed, &http.Client{})
	resp, err := client.List(ctx)
	if err != nil {
		logging.DebugLogger.Printf("Ollama not reachable at %s: %v", apiURL, err)
		return
	}

	installed := make(map[string]bool, len(resp.Models))
	for _, model := range resp.Models {
		installed[model.Name] = true
	}
	logging.InfoLogger.Printf("Found %d installed Ollama models", len(installed))

	p.Send(installedModelsMsg{installed: installed})
}
