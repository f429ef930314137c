// Package config loads kvit-replace's yaml configuration file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for kvit-replace.
type Config struct {
	Workspace struct {
		Root string `yaml:"root"`
	} `yaml:"workspace"`

	Search struct {
		Binary       string `yaml:"binary"`        // regex engine binary (default "rg")
		ContextLines int    `yaml:"context_lines"` // lines of context on each side of a match (default 3)
	} `yaml:"search"`

	AstGrep struct {
		Enabled bool   `yaml:"enabled"`
		Binary  string `yaml:"binary"` // default "ast-grep"
	} `yaml:"astgrep"`

	UI struct {
		LargeFolderThreshold int `yaml:"large_folder_threshold"` // file count above which input is debounced (default 1000)
		DebounceMS           int `yaml:"debounce_ms"`            // read and defaulted (300); the search debouncer uses the fixed thunk.DebounceWindow and does not consult it
	} `yaml:"ui"`

	// Keybindings maps a chord string (e.g. "ctrl+n") to an action or
	// thunk trigger name (e.g. "LoopOverTabs", "ProcessReplace").
	Keybindings map[string]string `yaml:"keybindings"`
}

// Load reads and parses a yaml config file, filling in defaults for
// anything left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a Config with every field at its default, for
// callers that run without a config file on disk.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Workspace.Root == "" {
		cfg.Workspace.Root = "."
	}
	if absRoot, err := filepath.Abs(cfg.Workspace.Root); err == nil {
		cfg.Workspace.Root = absRoot
	}

	if cfg.Search.Binary == "" {
		cfg.Search.Binary = "rg"
	}
	if cfg.Search.ContextLines == 0 {
		cfg.Search.ContextLines = 3
	}

	if cfg.AstGrep.Binary == "" {
		cfg.AstGrep.Binary = "ast-grep"
	}

	if cfg.UI.LargeFolderThreshold == 0 {
		cfg.UI.LargeFolderThreshold = 1000
	}
	if cfg.UI.DebounceMS == 0 {
		cfg.UI.DebounceMS = 300
	}

	if cfg.Keybindings == nil {
		cfg.Keybindings = defaultKeybindings()
	}
}

func defaultKeybindings() map[string]string {
	return map[string]string{
		"ctrl+n":    "LoopOverTabs",
		"ctrl+p":    "BackLoopOverTabs",
		"tab":       "LoopOverTabs",
		"shift+tab": "BackLoopOverTabs",
		"enter":     "ProcessReplace",
		"ctrl+r":    "ProcessReplace",
		"?":         "ShowHelp",
		"ctrl+c":    "Quit",
		"esc":       "Quit",
	}
}
