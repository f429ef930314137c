package store

import (
	"testing"

	"github.com/kvit-s/kvit-replace/internal/replace/model"
)

func TestSetSearchTextUpdatesText(t *testing.T) {
	state := New("/tmp/proj")
	state = Reduce(state, SetSearchTextAction{Text: "hello"})
	if state.SearchText.Text != "hello" {
		t.Errorf("SearchText.Text = %q, want %q", state.SearchText.Text, "hello")
	}
}

func TestModalExclusionBlocksTextMutation(t *testing.T) {
	state := New("/tmp/proj")
	state.Dialog = model.ConfirmEmptyReplaceDialog{Show: true}

	state = Reduce(state, SetSearchTextAction{Text: "hello"})
	if state.SearchText.Text != "" {
		t.Errorf("expected SetSearchText to be a no-op while dialog visible, got %q", state.SearchText.Text)
	}

	state = Reduce(state, SetActiveTabAction{Tab: model.TabReplace})
	if state.ActiveTab != model.TabSearch {
		t.Errorf("expected SetActiveTab to be a no-op while dialog visible, got %v", state.ActiveTab)
	}
}

func TestModalExclusionLiftsOnDismiss(t *testing.T) {
	state := New("/tmp/proj")
	state.Dialog = model.ConfirmEmptyReplaceDialog{Show: true}
	state = Reduce(state, SetDialogAction{Dialog: nil})
	state = Reduce(state, SetSearchTextAction{Text: "hello"})
	if state.SearchText.Text != "hello" {
		t.Errorf("SearchText.Text = %q, want %q after dialog dismissed", state.SearchText.Text, "hello")
	}
}

func TestSetActiveTabUpdatesFocusedScreen(t *testing.T) {
	state := New("/tmp/proj")
	state = Reduce(state, SetActiveTabAction{Tab: model.TabReplace})
	if state.FocusedScreen != model.FocusReplaceInput {
		t.Errorf("FocusedScreen = %v, want %v", state.FocusedScreen, model.FocusReplaceInput)
	}
	if state.PreviousFocusedScreen != model.FocusSearchInput {
		t.Errorf("PreviousFocusedScreen = %v, want %v", state.PreviousFocusedScreen, model.FocusSearchInput)
	}
}

func TestLoopOverTabsRotates(t *testing.T) {
	state := New("/tmp/proj")
	state = Reduce(state, LoopOverTabsAction{})
	if state.ActiveTab != model.TabReplace {
		t.Errorf("ActiveTab = %v, want %v", state.ActiveTab, model.TabReplace)
	}
	state = Reduce(state, LoopOverTabsAction{})
	if state.ActiveTab != model.TabSearchResult {
		t.Errorf("ActiveTab = %v, want %v", state.ActiveTab, model.TabSearchResult)
	}
	state = Reduce(state, LoopOverTabsAction{})
	if state.ActiveTab != model.TabSearch {
		t.Errorf("ActiveTab = %v, want %v", state.ActiveTab, model.TabSearch)
	}
}

func TestLoopOverTabsSkipsPreview(t *testing.T) {
	state := New("/tmp/proj")
	state.ActiveTab = model.TabPreview
	state = Reduce(state, LoopOverTabsAction{})
	if state.ActiveTab != model.TabPreview {
		t.Errorf("expected Preview tab to be sticky, got %v", state.ActiveTab)
	}
}

func TestRemoveFileFromListRebindsSelection(t *testing.T) {
	state := New("/tmp/proj")
	state.SearchResult.List = []model.FileResult{
		{Path: "a.txt"}, {Path: "b.txt"}, {Path: "c.txt"},
	}
	state = Reduce(state, RemoveFileFromListAction{Index: 1})

	if len(state.SearchResult.List) != 2 {
		t.Fatalf("expected 2 remaining files, got %d", len(state.SearchResult.List))
	}
	if state.SearchResult.List[0].Path != "a.txt" || state.SearchResult.List[1].Path != "c.txt" {
		t.Errorf("unexpected remaining files: %v", state.SearchResult.List)
	}
	fr, ok := state.SelectedFileResult()
	if !ok || fr.Path != "c.txt" {
		t.Errorf("SelectedFileResult = %+v, ok=%v, want c.txt", fr, ok)
	}
}

func TestRemoveFileFromListLastIndexClamps(t *testing.T) {
	state := New("/tmp/proj")
	state.SearchResult.List = []model.FileResult{{Path: "a.txt"}, {Path: "b.txt"}}
	state = Reduce(state, RemoveFileFromListAction{Index: 1})
	fr, ok := state.SelectedFileResult()
	if !ok || fr.Path != "a.txt" {
		t.Errorf("SelectedFileResult = %+v, ok=%v, want a.txt", fr, ok)
	}
}

func TestRemoveFileFromListEmptiesSelection(t *testing.T) {
	state := New("/tmp/proj")
	state.SearchResult.List = []model.FileResult{{Path: "a.txt"}}
	state = Reduce(state, RemoveFileFromListAction{Index: 0})
	if len(state.SearchResult.List) != 0 {
		t.Fatalf("expected empty list, got %d", len(state.SearchResult.List))
	}
	if state.Selection.SelectedFile != nil {
		t.Errorf("expected nil selection on empty list, got %+v", state.Selection)
	}
	if _, ok := state.SelectedFileResult(); ok {
		t.Error("expected SelectedFileResult ok=false on empty list")
	}
}

func TestRemoveLineFromFileDecrementsMatches(t *testing.T) {
	state := New("/tmp/proj")
	state.SearchResult.List = []model.FileResult{
		{Path: "a.txt", Matches: []model.Match{
			{LineNumber: 1, SubMatches: []model.SubMatch{{Start: 0, End: 1}}},
			{LineNumber: 2, SubMatches: []model.SubMatch{{Start: 0, End: 1}}},
		}, TotalMatches: 2},
	}
	state = Reduce(state, RemoveLineFromFileAction{FileIndex: 0, LineIndex: 0})

	if len(state.SearchResult.List) != 1 {
		t.Fatalf("expected file to survive with remaining match, got %d files", len(state.SearchResult.List))
	}
	fr := state.SearchResult.List[0]
	if len(fr.Matches) != 1 || fr.TotalMatches != 1 {
		t.Errorf("expected 1 remaining match, got %d matches / %d total", len(fr.Matches), fr.TotalMatches)
	}
}

func TestRemoveLineFromFileRemovesEmptiedFile(t *testing.T) {
	state := New("/tmp/proj")
	state.SearchResult.List = []model.FileResult{
		{Path: "a.txt", Matches: []model.Match{
			{LineNumber: 1, SubMatches: []model.SubMatch{{Start: 0, End: 1}}},
		}, TotalMatches: 1},
		{Path: "b.txt", Matches: []model.Match{
			{LineNumber: 1, SubMatches: []model.SubMatch{{Start: 0, End: 1}}},
		}, TotalMatches: 1},
	}
	state = Reduce(state, RemoveLineFromFileAction{FileIndex: 0, LineIndex: 0})

	if len(state.SearchResult.List) != 1 {
		t.Fatalf("expected emptied file to be removed, got %d files", len(state.SearchResult.List))
	}
	if state.SearchResult.List[0].Path != "b.txt" {
		t.Errorf("remaining file = %q, want %q", state.SearchResult.List[0].Path, "b.txt")
	}
	fr, ok := state.SelectedFileResult()
	if !ok || fr.Path != "b.txt" {
		t.Errorf("SelectedFileResult = %+v, ok=%v, want b.txt", fr, ok)
	}
}

func TestSetSearchListSelectsFirstFile(t *testing.T) {
	state := New("/tmp/proj")
	state = Reduce(state, SetSearchListAction{List: model.SearchList{
		List: []model.FileResult{{Path: "a.txt"}, {Path: "b.txt"}},
	}})

	i, ok := state.SelectedIndex()
	if !ok || i != 0 {
		t.Errorf("SelectedIndex() = %d, %v, want 0, true", i, ok)
	}
}

func TestSetSearchListEmptyClearsSelection(t *testing.T) {
	state := New("/tmp/proj")
	idx := uint32(0)
	state.Selection = model.Selection{SelectedFile: &idx}
	state = Reduce(state, SetSearchListAction{List: model.SearchList{}})

	if _, ok := state.SelectedIndex(); ok {
		t.Error("expected SelectedIndex ok=false after an empty search list")
	}
}

func TestSetSelectedResultAction(t *testing.T) {
	state := New("/tmp/proj")
	state.SearchResult.List = []model.FileResult{{Path: "a.txt"}, {Path: "b.txt"}}
	idx := uint32(1)
	state = Reduce(state, SetSelectedResultAction{Selection: model.Selection{SelectedFile: &idx}})

	i, ok := state.SelectedIndex()
	if !ok || i != 1 {
		t.Errorf("SelectedIndex() = %d, %v, want 1, true", i, ok)
	}
	fr, ok := state.SelectedFileResult()
	if !ok || fr.Path != "b.txt" {
		t.Errorf("SelectedFileResult = %+v, ok=%v, want b.txt", fr, ok)
	}
}

func TestSetIsLargeFolder(t *testing.T) {
	state := New("/tmp/proj")
	state = Reduce(state, SetIsLargeFolderAction{IsLargeFolder: true})
	if !state.IsLargeFolder {
		t.Error("expected IsLargeFolder to be true")
	}
}

func TestResetStateKeepsProjectRoot(t *testing.T) {
	state := New("/tmp/proj")
	state.SearchText.Text = "hello"
	state.GlobalLoading = true
	state = Reduce(state, ResetStateAction{})

	if state.ProjectRoot != "/tmp/proj" {
		t.Errorf("ProjectRoot = %q, want preserved", state.ProjectRoot)
	}
	if state.SearchText.Text != "" || state.GlobalLoading {
		t.Errorf("expected ResetState to clear everything but ProjectRoot, got %+v", state)
	}
}
