package apply

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kvit-s/kvit-replace/internal/replace/model"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func readTempFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return string(data)
}

func TestReplaceFileSimple(t *testing.T) {
	path := writeTempFile(t, "hello world\nhello again\n")
	fr := model.FileResult{Path: path, Matches: []model.Match{
		{LineNumber: 1}, {LineNumber: 2},
	}}

	result, err := ReplaceFile(fr, model.SearchText{Text: "hello", Kind: model.Simple}, model.ReplaceText{Text: "goodbye", Kind: model.ReplaceSimple}, Options{})
	if err != nil {
		t.Fatalf("ReplaceFile() error = %v", err)
	}
	if len(result.FilesChanged) != 1 {
		t.Fatalf("expected 1 file changed, got %d", len(result.FilesChanged))
	}

	got := readTempFile(t, path)
	want := "goodbye world\ngoodbye again\n"
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestReplaceFilePreserveCase(t *testing.T) {
	path := writeTempFile(t, "Hello HELLO hello\n")
	fr := model.FileResult{Path: path, Matches: []model.Match{{LineNumber: 1}}}

	_, err := ReplaceFile(fr, model.SearchText{Text: "hello", Kind: model.Simple}, model.ReplaceText{Text: "goodbye", Kind: model.PreserveCase}, Options{})
	if err != nil {
		t.Fatalf("ReplaceFile() error = %v", err)
	}

	got := readTempFile(t, path)
	want := "Goodbye GOODBYE goodbye\n"
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestReplaceFileDeleteLine(t *testing.T) {
	path := writeTempFile(t, "one\ntwo\nthree\nfour\nfive\n")
	fr := model.FileResult{Path: path, Matches: []model.Match{
		{LineNumber: 2}, {LineNumber: 3}, {LineNumber: 4},
	}}

	_, err := ReplaceFile(fr, model.SearchText{Text: "x", Kind: model.Simple}, model.ReplaceText{Kind: model.DeleteLine}, Options{})
	if err != nil {
		t.Fatalf("ReplaceFile() error = %v", err)
	}

	got := readTempFile(t, path)
	want := "one\nfive\n"
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestReplaceLineRestrictsToOneLine(t *testing.T) {
	path := writeTempFile(t, "hello\nhello\n")
	fr := model.FileResult{Path: path, Matches: []model.Match{
		{LineNumber: 1}, {LineNumber: 2},
	}}

	_, err := ReplaceLine(fr, 1, model.SearchText{Text: "hello", Kind: model.Simple}, model.ReplaceText{Text: "bye", Kind: model.ReplaceSimple}, Options{})
	if err != nil {
		t.Fatalf("ReplaceLine() error = %v", err)
	}

	got := readTempFile(t, path)
	want := "hello\nbye\n"
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestReplaceLineDeleteLine(t *testing.T) {
	path := writeTempFile(t, "one\ntwo\nthree\n")
	fr := model.FileResult{Path: path, Matches: []model.Match{{LineNumber: 2}}}

	_, err := ReplaceLine(fr, 0, model.SearchText{Text: "x", Kind: model.Simple}, model.ReplaceText{Kind: model.DeleteLine}, Options{})
	if err != nil {
		t.Fatalf("ReplaceLine() error = %v", err)
	}

	got := readTempFile(t, path)
	want := "one\nthree\n"
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestReplaceLineInvalidIndex(t *testing.T) {
	path := writeTempFile(t, "hello\n")
	fr := model.FileResult{Path: path, Matches: []model.Match{{LineNumber: 1}}}

	_, err := ReplaceLine(fr, 5, model.SearchText{Text: "hello", Kind: model.Simple}, model.ReplaceText{Text: "bye", Kind: model.ReplaceSimple}, Options{})
	if err == nil {
		t.Fatal("expected error for out-of-range match index, got nil")
	}
}

func TestReplaceAllNoChangeReturnsNoFiles(t *testing.T) {
	path := writeTempFile(t, "nothing to see\n")
	list := model.SearchList{List: []model.FileResult{{Path: path, Matches: []model.Match{{LineNumber: 1}}}}}

	result, err := ReplaceAll(list, model.SearchText{Text: "zzz", Kind: model.Simple}, model.ReplaceText{Text: "yyy", Kind: model.ReplaceSimple}, Options{})
	if err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}
	if len(result.FilesChanged) != 0 {
		t.Errorf("expected no files changed, got %d", len(result.FilesChanged))
	}
}

func TestPreserveCaseHelper(t *testing.T) {
	cases := []struct{ matched, replacement, want string }{
		{"HELLO", "goodbye", "GOODBYE"},
		{"Hello", "goodbye", "Goodbye"},
		{"hello", "GOODBYE", "goodbye"},
	}
	for _, c := range cases {
		got := preserveCase(c.matched, c.replacement)
		if got != c.want {
			t.Errorf("preserveCase(%q, %q) = %q, want %q", c.matched, c.replacement, got, c.want)
		}
	}
}
