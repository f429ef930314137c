// Command kvit-replace is a terminal search/replace tool: it spawns a
// regex (and optionally syntactic) search backend over a project root
// and lets the user review and apply replacements interactively.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kvit-s/kvit-replace/internal/config"
	"github.com/kvit-s/kvit-replace/internal/replace/env"
	"github.com/kvit-s/kvit-replace/internal/replacelog"
	"github.com/kvit-s/kvit-replace/internal/tui"
	"github.com/kvit-s/kvit-replace/internal/workspace"
)

var (
	version    = "dev"
	commitHash = "dev"
)

func main() {
	projectRoot := flag.String("project-root", ".", "root directory to search and replace within")
	configPath := flag.String("config", "", "path to config file (optional)")
	logPath := flag.String("log", "kvit-replace.log", "path to log file (empty disables logging)")
	showVersion := flag.Bool("version", false, "show version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s-%s\n", version, commitHash)
		return
	}

	root, err := filepath.Abs(*projectRoot)
	if err != nil {
		log.Fatalf("resolve project root: %v", err)
	}

	var cfg *config.Config
	if *configPath == "" {
		cfg = config.Default()
	} else {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	cfg.Workspace.Root = root

	logger, err := replacelog.New(*logPath, false)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Close()

	if preflightErr := env.Preflight(cfg.Search.Binary, cfg.AstGrep.Binary, cfg.AstGrep.Enabled); preflightErr != nil {
		logger.Error("dependency preflight failed", preflightErr)
		log.Fatal(preflightErr.Error())
	}

	lock, err := workspace.AcquireLock(root)
	if err != nil {
		log.Fatalf("acquire workspace lock: %v", err)
	}
	defer lock.Release()

	isLargeFolder, err := env.IsLargeFolder(context.Background(), cfg.Search.Binary, root, cfg.UI.LargeFolderThreshold)
	if err != nil {
		logger.Error("large folder probe failed", err)
	}

	historyDir, err := os.UserHomeDir()
	if err != nil {
		historyDir = os.TempDir()
	}
	historyPath := filepath.Join(historyDir, ".kvit-replace-history")

	m := tui.New(tui.Options{
		Config:        cfg,
		ProjectRoot:   root,
		HistoryPath:   historyPath,
		IsLargeFolder: isLargeFolder,
	})

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("tui exited with error: %v", err)
	}
}
