package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kvit-s/kvit-replace/internal/replace/model"
	"github.com/kvit-s/kvit-replace/internal/replace/store"
	"github.com/kvit-s/kvit-replace/internal/replace/thunk"
	"github.com/kvit-s/kvit-replace/internal/uihistory"
)

// handleKey routes a key chord through the configured keybindings
// (config.Keybindings, defaulted in internal/config) to a named action,
// falling back to routing the keystroke into whichever text field or
// panel has focus. A visible modal dialog takes priority over both, per
// spec.md §4.D's modal-exclusion invariant.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.st.Select()

	if state.Dialog != nil && state.Dialog.Visible() {
		return m.handleDialogKey(msg, state)
	}

	chord := msg.String()
	// enter and esc go to the focused panel first where it gives them a
	// meaning: enter submits the search, opens the preview or replaces one
	// match, and esc leaves the preview.
	panelKey := (chord == "enter" && state.FocusedScreen != model.FocusReplaceInput) ||
		(chord == "esc" && state.FocusedScreen == model.FocusPreview)
	if action, ok := m.cfg.Keybindings[chord]; ok && !panelKey {
		if cmd, handled := m.runNamedAction(action, state); handled {
			return m, cmd
		}
	}

	switch state.FocusedScreen {
	case model.FocusSearchInput:
		return m.updateSearchInput(msg)
	case model.FocusReplaceInput:
		return m.updateReplaceInput(msg)
	case model.FocusSearchResultList:
		return m.handleResultListKey(msg, state)
	case model.FocusPreview:
		return m.handlePreviewKey(msg, state)
	default:
		return m, nil
	}
}

// runNamedAction executes one of the keybinding target names from
// spec.md's default chord table. Returns handled=false for names it does
// not know, so the keystroke falls through to the focused field or panel.
func (m *Model) runNamedAction(action string, state store.State) (tea.Cmd, bool) {
	switch action {
	case "LoopOverTabs":
		m.st.Dispatch(store.LoopOverTabsAction{})
		return nil, true
	case "BackLoopOverTabs":
		m.st.Dispatch(store.BackLoopOverTabsAction{})
		return nil, true
	case "ProcessReplace":
		m.saveReplaceHistory(state.ReplaceText.Text)
		t := thunk.ProcessReplace(m.st, false, m.applyOpts)
		m.dispatchThunk(t)
		return nil, true
	case "ShowHelp":
		m.st.Dispatch(store.SetDialogAction{Dialog: model.HelpDialog{Show: true}})
		return nil, true
	case "Quit":
		m.quitting = true
		return tea.Quit, true
	default:
		return nil, false
	}
}

// handleDialogKey answers a visible confirm/help dialog: "y"/enter
// confirms, "n"/esc cancels, and any key dismisses a HelpDialog (it has
// no confirm/cancel branch).
func (m Model) handleDialogKey(msg tea.KeyMsg, state store.State) (tea.Model, tea.Cmd) {
	if _, ok := state.Dialog.(model.HelpDialog); ok {
		m.dismissDialog(state)
		return m, nil
	}

	switch msg.String() {
	case "y", "enter":
		return m.confirmDialog(state)
	case "n", "esc":
		m.dismissDialog(state)
		return m, nil
	default:
		return m, nil
	}
}

// confirmDialog re-dispatches ProcessReplace(force=true) when the
// dialog's confirm action is DialogActionConfirmReplace, matching
// spec.md §4.C's "confirm re-dispatches the thunk with force=true".
func (m Model) confirmDialog(state store.State) (tea.Model, tea.Cmd) {
	var onConfirm *model.DialogAction
	switch d := state.Dialog.(type) {
	case model.ConfirmEmptyReplaceDialog:
		onConfirm = d.OnConfirm
	case model.ConfirmNonVcsDirectoryDialog:
		onConfirm = d.OnConfirm
	}

	m.dismissDialog(state)

	if onConfirm != nil && *onConfirm == model.DialogActionConfirmReplace {
		t := thunk.ProcessReplace(m.st, true, m.applyOpts)
		m.dispatchThunk(t)
	}
	return m, nil
}

// dismissDialog clears the dialog and restores the focus that was
// active before it opened.
func (m Model) dismissDialog(state store.State) {
	m.st.Dispatch(store.SetDialogAction{Dialog: nil})
	m.st.Dispatch(store.SetFocusedScreenAction{Screen: state.PreviousFocusedScreen})
}

// handleResultListKey navigates the file list: up/down moves the
// selection, enter moves focus into the preview, 'r' replaces every
// match in the selected file, 'x' drops it from the list without
// writing.
func (m Model) handleResultListKey(msg tea.KeyMsg, state store.State) (tea.Model, tea.Cmd) {
	list := state.SearchResult.List
	if len(list) == 0 {
		return m, nil
	}
	index, ok := state.SelectedIndex()
	if !ok {
		index = 0
	}

	switch msg.String() {
	case "up", "k":
		m.selectFile(clampIndex(index-1, len(list)))
	case "down", "j":
		m.selectFile(clampIndex(index+1, len(list)))
	case "enter":
		m.previewCursor = 0
		m.st.Dispatch(store.SetActiveTabAction{Tab: model.TabPreview})
	case "r":
		m.dispatchThunk(thunk.ProcessSingleFileReplace(m.st, index, m.applyOpts))
	case "x":
		m.dispatchThunk(thunk.RemoveFileFromList(index))
	}
	return m, nil
}

// handlePreviewKey navigates matches within the selected file: up/down
// moves the line cursor, enter replaces just that match, 'x' drops it
// from the result list without writing, esc returns to the result list.
func (m Model) handlePreviewKey(msg tea.KeyMsg, state store.State) (tea.Model, tea.Cmd) {
	fr, ok := state.SelectedFileResult()
	if !ok || len(fr.Matches) == 0 {
		if msg.String() == "esc" {
			m.st.Dispatch(store.SetActiveTabAction{Tab: model.TabSearchResult})
		}
		return m, nil
	}

	fileIndex, _ := state.SelectedIndex()

	switch msg.String() {
	case "up", "k":
		m.previewCursor = clampIndex(m.previewCursor-1, len(fr.Matches))
	case "down", "j":
		m.previewCursor = clampIndex(m.previewCursor+1, len(fr.Matches))
	case "enter":
		m.dispatchThunk(thunk.ProcessLineReplace(m.st, fileIndex, m.previewCursor, m.applyOpts))
	case "x":
		m.dispatchThunk(thunk.RemoveLineFromFile(fileIndex, m.previewCursor))
	case "esc":
		m.st.Dispatch(store.SetActiveTabAction{Tab: model.TabSearchResult})
	}
	return m, nil
}

func (m *Model) selectFile(index int) {
	i := uint32(index)
	m.st.Dispatch(store.SetSelectedResultAction{Selection: model.Selection{SelectedFile: &i}})
	m.previewCursor = 0
}

func clampIndex(i, length int) int {
	if length == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}

func (m Model) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		text := m.searchInput.Value()
		m.st.Dispatch(store.SetSearchTextAction{Text: text})
		m.saveSearchHistory(text)

		m.debouncer.Cancel()
		m.dispatchThunk(thunk.ProcessSearch(m.st, m.searchOpts))
		return m, nil
	}

	var cmd tea.Cmd
	prev := m.searchInput.Value()
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.st.Dispatch(store.SetSearchTextAction{Text: m.searchInput.Value()})
	if m.searchInput.Value() != prev {
		state := m.st.Select()
		t := thunk.ProcessSearch(m.st, m.searchOpts)
		thunk.ScheduleSearch(m.debouncer, state.IsLargeFolder, context.Background(), m.store, t)
	}
	return m, cmd
}

func (m Model) updateReplaceInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.replaceInput, cmd = m.replaceInput.Update(msg)
	m.st.Dispatch(store.SetReplaceTextAction{Text: m.replaceInput.Value()})
	return m, cmd
}

func (m *Model) saveSearchHistory(entry string) {
	if entry == "" {
		return
	}
	m.searchHistory = append(m.searchHistory, entry)
	_ = uihistory.Save(m.historyPath+".search", m.searchHistory)
}

func (m *Model) saveReplaceHistory(entry string) {
	if entry == "" {
		return
	}
	m.replaceHistory = append(m.replaceHistory, entry)
	_ = uihistory.Save(m.historyPath+".replace", m.replaceHistory)
}
