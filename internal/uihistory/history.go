// Package uihistory persists the search/replace input history that the
// TUI loads at startup and saves when a search or replace is submitted.
// The TUI does not offer up/down recall of these entries.
package uihistory

import (
	"os"
	"strings"
)

// MaxEntries caps how many entries Save keeps, oldest first discarded.
const MaxEntries = 1000

// Load reads history from path, one entry per null-byte-delimited
// record so multi-line entries survive round-tripping. A missing file
// is not an error: it is treated as empty history.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	entries := strings.Split(string(data), "\x00")
	var history []string
	for _, entry := range entries {
		if strings.TrimSpace(entry) != "" {
			history = append(history, entry)
		}
	}
	return history, nil
}

// Save writes history to path, truncating to the most recent
// MaxEntries entries.
func Save(path string, history []string) error {
	if len(history) > MaxEntries {
		history = history[len(history)-MaxEntries:]
	}
	return os.WriteFile(path, []byte(strings.Join(history, "\x00")), 0644)
}
