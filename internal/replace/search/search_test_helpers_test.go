package search

import (
	"testing"

	"github.com/kvit-s/kvit-replace/internal/replace/model"
)

func modelSearchText(text string, kind model.SearchKind) model.SearchText {
	return model.SearchText{Text: text, Kind: kind}
}

func assertArgsEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q (full: got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}
