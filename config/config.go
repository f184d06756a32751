package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sammcj/llmfit/logging"
)

// FitThresholds are the utilisation percentage boundaries between fit grades.
// They are presentation policy rather than hardware facts, so they live in the
// config file where users can tune them.
type FitThresholds struct {
	PerfectPct  float64 `json:"perfect_pct"`
	GoodPct     float64 `json:"good_pct"`
	MarginalPct float64 `json:"marginal_pct"`
}

type Config struct {
	LogLevel     string        `json:"log_level"`
	LogFilePath  string        `json:"log_file_path"`
	CatalogPath  string        `json:"catalog_path"` // Optional extra model catalog (JSON), merged over the built-in one
	OllamaAPIURL string        `json:"ollama_api_url"`
	SortOrder    string        `json:"sort_order"`
	Theme        string        `json:"theme"` // Named theme under ~/.config/llmfit/themes, empty means the built-in default
	Thresholds   FitThresholds `json:"fit_thresholds"`
}

var defaultConfig = Config{
	LogLevel:     "warn",
	LogFilePath:  os.Getenv("HOME") + "/.config/llmfit/llmfit.log",
	CatalogPath:  "",
	OllamaAPIURL: "http://localhost:11434",
	SortOrder:    "fit",
	Theme:        DarkNeonTheme.Name,
	Thresholds:   FitThresholds{PerfectPct: 50, GoodPct: 75, MarginalPct: 95},
}

func LoadConfig() (Config, error) {
	configPath := getConfigPath()

	file, err := os.Open(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logging.DebugLogger.Println("Config file does not exist, creating with default values")

			if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
				return Config{}, fmt.Errorf("failed to create config directory: %w", err)
			}

			if err := SaveConfig(defaultConfig); err != nil {
				return Config{}, fmt.Errorf("failed to save default config: %w", err)
			}

			return defaultConfig, nil
		}
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Older config files may predate the thresholds block
	if config.Thresholds == (FitThresholds{}) {
		config.Thresholds = defaultConfig.Thresholds
	}
	if config.OllamaAPIURL == "" {
		config.OllamaAPIURL = defaultConfig.OllamaAPIURL
	}

	return config, nil
}

func SaveConfig(config Config) error {
	configPath := getConfigPath()
	logging.DebugLogger.Printf("Saving config to: %s\n", configPath)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

func getConfigPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "llmfit", "config.json")
}
