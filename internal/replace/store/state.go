// Package store implements the pure state reducer for kvit-replace: one
// State value, mutated only by Reduce(state, action).
package store

import "github.com/kvit-s/kvit-replace/internal/replace/model"

// NotificationKind classifies an ephemeral status-line notification.
type NotificationKind int

const (
	NotificationInfo NotificationKind = iota
	NotificationWarning
	NotificationError
)

// Notification is the ephemeral status-line record shown to the user.
type Notification struct {
	Message string
	Show    bool
	TTLMS   uint64
	Kind    NotificationKind
}

// State is the entire application state. It is a value type: Reduce
// takes one by value and returns a new one, never mutating a shared
// instance across goroutines.
type State struct {
	SearchResult          model.SearchList
	Selection             model.Selection
	SearchText            model.SearchText
	ReplaceText           model.ReplaceText
	ActiveTab             model.Tab
	Mode                  model.Mode
	GlobalLoading         bool
	Notification          Notification
	Dialog                model.Dialog
	ProjectRoot           string
	FocusedScreen         model.FocusedScreen
	PreviousFocusedScreen model.FocusedScreen
	IsLargeFolder         bool
}

// New returns the zero-value state rooted at projectRoot, matching the
// original's State::new(project_root).
func New(projectRoot string) State {
	return State{ProjectRoot: projectRoot}
}

// SelectedIndex returns the selected file's index into SearchResult.List,
// matching invariant 2 of spec.md §8: nil iff the list is empty.
func (s State) SelectedIndex() (int, bool) {
	if s.Selection.SelectedFile == nil {
		return 0, false
	}
	return int(*s.Selection.SelectedFile), true
}

// SelectedFileResult resolves the current selection against the live
// result list, returning ok=false if nothing is selected or the index
// has fallen out of range.
func (s State) SelectedFileResult() (model.FileResult, bool) {
	i, ok := s.SelectedIndex()
	if !ok || i < 0 || i >= len(s.SearchResult.List) {
		return model.FileResult{}, false
	}
	return s.SearchResult.List[i], true
}
