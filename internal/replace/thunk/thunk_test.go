package thunk

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kvit-s/kvit-replace/internal/replace/apply"
	"github.com/kvit-s/kvit-replace/internal/replace/bus"
	"github.com/kvit-s/kvit-replace/internal/replace/model"
	"github.com/kvit-s/kvit-replace/internal/replace/store"
)

func drainDomain(b *bus.Bus, st *store.Store) {
	for {
		msg, ok := b.PopDomain()
		if !ok {
			return
		}
		if action, ok := msg.(store.Action); ok {
			st.Dispatch(action)
		}
	}
}

func TestProcessSearchEmptyTextIsNoop(t *testing.T) {
	st := store.NewStore(t.TempDir())
	b := bus.New()

	thunk := ProcessSearch(st, SearchOptions{RegexBinary: "rg", ContextLines: 3})
	if err := thunk(context.Background(), b); err != nil {
		t.Fatalf("ProcessSearch() error = %v", err)
	}
	if b.DomainLen() != 0 {
		t.Errorf("expected no domain messages for empty search text, got %d", b.DomainLen())
	}
}

func TestProcessReplaceEmptyReplaceOpensDialog(t *testing.T) {
	root := t.TempDir()
	st := store.NewStore(root)
	st.Dispatch(store.SetSearchTextAction{Text: "hello"})
	b := bus.New()

	thunk := ProcessReplace(st, false, apply.Options{})
	if err := thunk(context.Background(), b); err != nil {
		t.Fatalf("ProcessReplace() error = %v", err)
	}

	drainDomain(b, st)
	state := st.Select()
	if state.Dialog == nil {
		t.Fatal("expected a confirmation dialog to be set")
	}
	if _, ok := state.Dialog.(model.ConfirmEmptyReplaceDialog); !ok {
		t.Errorf("expected ConfirmEmptyReplaceDialog, got %T", state.Dialog)
	}
}

func TestProcessReplaceForceSkipsDialog(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	if err := os.WriteFile(path, []byte("hello world\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	st := store.NewStore(root)
	st.Dispatch(store.SetSearchTextAction{Text: "hello"})
	st.Dispatch(store.SetSearchListAction{List: model.SearchList{List: []model.FileResult{
		{Path: path, Matches: []model.Match{{LineNumber: 1}}},
	}}})
	b := bus.New()

	thunk := ProcessReplace(st, true, apply.Options{})
	if err := thunk(context.Background(), b); err != nil {
		t.Fatalf("ProcessReplace() error = %v", err)
	}

	drainDomain(b, st)
	state := st.Select()
	if state.Dialog != nil {
		t.Errorf("expected force=true to skip dialogs, got %T", state.Dialog)
	}
	if state.SearchText.Text != "" {
		t.Errorf("expected ResetState to clear search text, got %q", state.SearchText.Text)
	}
}

func TestRemoveFileFromListThunkDispatches(t *testing.T) {
	st := store.NewStore(t.TempDir())
	st.Dispatch(store.SetSearchListAction{List: model.SearchList{List: []model.FileResult{
		{Path: "a.txt"}, {Path: "b.txt"},
	}}})
	b := bus.New()

	thunk := RemoveFileFromList(0)
	if err := thunk(context.Background(), b); err != nil {
		t.Fatalf("RemoveFileFromList() error = %v", err)
	}
	drainDomain(b, st)

	state := st.Select()
	if len(state.SearchResult.List) != 1 || state.SearchResult.List[0].Path != "b.txt" {
		t.Errorf("unexpected list after removal: %v", state.SearchResult.List)
	}
}

func TestDebouncerCoalescesRapidCalls(t *testing.T) {
	var d Debouncer
	fired := make(chan struct{}, 10)

	for i := 0; i < 5; i++ {
		d.Schedule(true, func() { fired <- struct{}{} })
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("expected debounced call to fire eventually")
	}

	select {
	case <-fired:
		t.Fatal("expected only one firing from coalesced calls")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerSkipsWindowForSmallFolder(t *testing.T) {
	var d Debouncer
	fired := make(chan struct{}, 1)
	d.Schedule(false, func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected immediate firing for a small folder")
	}
}
