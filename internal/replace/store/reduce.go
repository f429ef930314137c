package store

import "github.com/kvit-s/kvit-replace/internal/replace/model"

// Reduce is the pure reducer: given a state and an action, returns the
// next state. It never mutates its input.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case SetSearchListAction:
		state.SearchResult = a.List
		state.Selection = rebindSelection(a.List.List, 0)
		return state

	case SetSelectedResultAction:
		state.Selection = a.Selection
		return state

	case SetSearchTextAction:
		if dialogVisible(state) {
			return state
		}
		state.SearchText.Text = a.Text
		return state

	case SetReplaceTextAction:
		if dialogVisible(state) {
			return state
		}
		state.ReplaceText.Text = a.Text
		return state

	case SetSearchTextKindAction:
		if dialogVisible(state) {
			return state
		}
		state.SearchText.Kind = a.Kind
		return state

	case SetReplaceTextKindAction:
		if dialogVisible(state) {
			return state
		}
		state.ReplaceText.Kind = a.Kind
		return state

	case SetActiveTabAction:
		if dialogVisible(state) {
			return state
		}
		return setActiveTab(state, a.Tab)

	case LoopOverTabsAction:
		if dialogVisible(state) {
			return state
		}
		return setActiveTab(state, nextTab(state.ActiveTab))

	case BackLoopOverTabsAction:
		if dialogVisible(state) {
			return state
		}
		return setActiveTab(state, prevTab(state.ActiveTab))

	case SetDialogAction:
		state.Dialog = a.Dialog
		if a.Dialog != nil {
			state.PreviousFocusedScreen = state.FocusedScreen
			state.FocusedScreen = focusForDialog(a.Dialog)
		}
		return state

	case SetFocusedScreenAction:
		state.PreviousFocusedScreen = state.FocusedScreen
		state.FocusedScreen = a.Screen
		return state

	case RemoveFileFromListAction:
		return removeFileFromList(state, a.Index)

	case RemoveLineFromFileAction:
		return removeLineFromFile(state, a.FileIndex, a.LineIndex)

	case ResetStateAction:
		return New(state.ProjectRoot)

	case SetNotificationAction:
		state.Notification = a.Notification
		return state

	case SetGlobalLoadingAction:
		state.GlobalLoading = a.Loading
		return state

	case ChangeModeAction:
		state.Mode = a.Mode
		return state

	case SetIsLargeFolderAction:
		state.IsLargeFolder = a.IsLargeFolder
		return state

	default:
		return state
	}
}

func dialogVisible(state State) bool {
	return state.Dialog != nil && state.Dialog.Visible()
}

// focusForTab is the tab -> focused_screen table from spec.md §4.D.
func focusForTab(tab model.Tab) model.FocusedScreen {
	switch tab {
	case model.TabSearch:
		return model.FocusSearchInput
	case model.TabReplace:
		return model.FocusReplaceInput
	case model.TabSearchResult:
		return model.FocusSearchResultList
	case model.TabPreview:
		return model.FocusPreview
	default:
		return model.FocusSearchInput
	}
}

func focusForDialog(d model.Dialog) model.FocusedScreen {
	switch d.(type) {
	case model.ConfirmEmptyReplaceDialog:
		return model.FocusConfirmEmptyReplaceDialog
	case model.ConfirmNonVcsDirectoryDialog:
		return model.FocusConfirmNonVcsDialog
	case model.HelpDialog:
		return model.FocusHelpDialog
	default:
		return model.FocusHelpDialog
	}
}

func setActiveTab(state State, tab model.Tab) State {
	state.PreviousFocusedScreen = state.FocusedScreen
	state.ActiveTab = tab
	state.FocusedScreen = focusForTab(tab)
	return state
}

// nextTab/prevTab rotate through {Search, Replace, SearchResult};
// Preview is sticky and never entered or left by rotation.
func nextTab(t model.Tab) model.Tab {
	switch t {
	case model.TabSearch:
		return model.TabReplace
	case model.TabReplace:
		return model.TabSearchResult
	case model.TabSearchResult:
		return model.TabSearch
	default:
		return t
	}
}

func prevTab(t model.Tab) model.Tab {
	switch t {
	case model.TabSearch:
		return model.TabSearchResult
	case model.TabReplace:
		return model.TabSearch
	case model.TabSearchResult:
		return model.TabReplace
	default:
		return t
	}
}

func removeFileFromList(state State, index int) State {
	list := state.SearchResult.List
	if index < 0 || index >= len(list) {
		return state
	}
	updated := make([]model.FileResult, 0, len(list)-1)
	updated = append(updated, list[:index]...)
	updated = append(updated, list[index+1:]...)
	state.SearchResult.List = updated
	state.Selection = rebindSelection(updated, index)
	return state
}

// removeLineFromFile removes one match from one file; if that empties
// the file's matches, the file itself is removed too (a redesign
// relative to the original, which left empty file entries in the list).
func removeLineFromFile(state State, fileIndex, lineIndex int) State {
	list := state.SearchResult.List
	if fileIndex < 0 || fileIndex >= len(list) {
		return state
	}
	fr := list[fileIndex]
	if lineIndex < 0 || lineIndex >= len(fr.Matches) {
		return state
	}

	matches := make([]model.Match, 0, len(fr.Matches)-1)
	matches = append(matches, fr.Matches[:lineIndex]...)
	matches = append(matches, fr.Matches[lineIndex+1:]...)
	fr.Matches = matches
	model.RecomputeTotalMatches(&fr)

	updated := make([]model.FileResult, len(list))
	copy(updated, list)

	var selectedIndex int
	if len(fr.Matches) == 0 {
		updated = append(updated[:fileIndex], updated[fileIndex+1:]...)
		selectedIndex = fileIndex
	} else {
		updated[fileIndex] = fr
		selectedIndex = fileIndex
	}

	state.SearchResult.List = updated
	state.Selection = rebindSelection(updated, selectedIndex)
	return state
}

// rebindSelection selects the item at index, clamped to the last
// available item, or the empty selection if the list is now empty.
func rebindSelection(list []model.FileResult, index int) model.Selection {
	if len(list) == 0 {
		return model.Selection{}
	}
	if index >= len(list) {
		index = len(list) - 1
	}
	if index < 0 {
		index = 0
	}
	selected := uint32(index)
	return model.Selection{SelectedFile: &selected}
}
