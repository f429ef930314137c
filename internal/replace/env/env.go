// Package env implements the engine's external interfaces: VCS
// detection, large-folder probing, and dependency preflight.
package env

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kvit-s/kvit-replace/internal/replace/errs"
)

// LargeFolderThreshold is the file count above which a project root is
// treated as a large folder for debouncing purposes.
const LargeFolderThreshold = 1000

// IsVCSRepository reports whether root is a repository: a directory
// containing a .git subdirectory at itself or at some ancestor.
func IsVCSRepository(root string) bool {
	dir, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	for {
		gitPath := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitPath); err == nil && info.IsDir() {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// IsLargeFolder runs the regex engine's file-counting probe and reports
// whether root contains more than threshold candidate files.
func IsLargeFolder(ctx context.Context, binary, root string, threshold int) (bool, error) {
	count, err := CountFiles(ctx, binary, root)
	if err != nil {
		return false, err
	}
	return count > threshold, nil
}

// CountFiles invokes the regex engine with --files --count-matches
// --max-count 1 and counts the newline-delimited file list it prints.
func CountFiles(ctx context.Context, binary, root string) (int, error) {
	cmd := exec.CommandContext(ctx, binary, "--files", "--count-matches", "--max-count", "1", root)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return 0, errs.Wrap(errs.SubprocessFailure, err)
		}
	}
	text := strings.TrimRight(out.String(), "\n")
	if text == "" {
		return 0, nil
	}
	return strings.Count(text, "\n") + 1, nil
}

// Preflight verifies that the required external binaries are present.
// astgrepRequired should be true only when the AstGrep search/replace
// kind is enabled in config. Returns a fatal MissingDependency error
// naming the absent binary.
func Preflight(regexBinary, astgrepBinary string, astgrepRequired bool) *errs.ReplaceError {
	if _, err := exec.LookPath(regexBinary); err != nil {
		return errs.Newf(errs.MissingDependency, "required search binary %q not found on PATH", regexBinary)
	}
	if astgrepRequired {
		if _, err := exec.LookPath(astgrepBinary); err != nil {
			return errs.Newf(errs.MissingDependency, "astgrep search is enabled but binary %q not found on PATH", astgrepBinary)
		}
	}
	return nil
}
