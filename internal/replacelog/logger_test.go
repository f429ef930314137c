package replacelog

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestNewNop(t *testing.T) {
	l, err := New("", false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.SearchExecuted("rg", 3, time.Millisecond, nil)
	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewWritesFile(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "replace.log")

	l, err := New(logPath, false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.SearchExecuted("rg", 5, 10*time.Millisecond, nil)
	l.ReplaceExecuted("all", 2, 20*time.Millisecond, nil)
	l.ReplaceExecuted("all", 0, 5*time.Millisecond, errors.New("boom"))
	l.Error("something failed", errors.New("boom"))

	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
