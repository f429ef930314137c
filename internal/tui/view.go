package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kvit-s/kvit-replace/internal/replace/model"
	"github.com/kvit-s/kvit-replace/internal/replace/store"
)

var (
	tabActiveStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tabInactiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("136"))
	dialogStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	selectedRowStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedMatchStyle = lipgloss.NewStyle().Reverse(true)
	submatchStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
)

// View renders the current store snapshot, following the teacher's
// startup-banner colour palette (internal/tui/ui.go's 38;5;136 ANSI
// lines, here expressed as lipgloss styles).
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.st.Select()

	var b strings.Builder
	b.WriteString(renderTabs(state.ActiveTab))
	b.WriteString("\n\n")

	switch state.ActiveTab {
	case model.TabSearch:
		b.WriteString("Search: " + m.searchInput.View())
	case model.TabReplace:
		b.WriteString("Replace: " + m.replaceInput.View())
	case model.TabSearchResult:
		b.WriteString(renderResultList(state))
	case model.TabPreview:
		b.WriteString(renderPreview(state, m.previewCursor))
	}

	b.WriteString("\n\n")
	b.WriteString(renderNotification(state))

	if state.Dialog != nil && state.Dialog.Visible() {
		b.WriteString("\n\n")
		b.WriteString(dialogStyle.Render(state.Dialog.Message()))
	}

	return b.String()
}

func renderTabs(active model.Tab) string {
	names := []struct {
		tab   model.Tab
		label string
	}{
		{model.TabSearch, "Search"},
		{model.TabReplace, "Replace"},
		{model.TabSearchResult, "Results"},
		{model.TabPreview, "Preview"},
	}

	var parts []string
	for _, n := range names {
		if n.tab == active {
			parts = append(parts, tabActiveStyle.Render(n.label))
		} else {
			parts = append(parts, tabInactiveStyle.Render(n.label))
		}
	}
	return strings.Join(parts, "  ")
}

// renderResultList shows one row per FileResult, highlighting the
// current selection (§3's Selection.selected_file).
func renderResultList(state store.State) string {
	if len(state.SearchResult.List) == 0 {
		return "No matches."
	}

	selected, _ := state.SelectedIndex()

	var b strings.Builder
	for i, fr := range state.SearchResult.List {
		line := fmt.Sprintf("%s (%d matches)", fr.Path, fr.TotalMatches)
		if i == selected {
			line = selectedRowStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderPreview shows the full context/match/context block for every
// match in the selected file, highlighting the line under the preview
// cursor.
func renderPreview(state store.State, cursor int) string {
	fr, ok := state.SelectedFileResult()
	if !ok {
		return "No file selected."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d matches)\n\n", fr.Path, fr.TotalMatches)
	for i, match := range fr.Matches {
		for _, line := range match.ContextBefore {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		matchLine := fmt.Sprintf("%4d %s", match.LineNumber, match.Lines)
		if i == cursor {
			matchLine = selectedMatchStyle.Render(matchLine)
		} else {
			matchLine = submatchStyle.Render(matchLine)
		}
		b.WriteString(matchLine)
		b.WriteString("\n")
		for _, line := range match.ContextAfter {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderNotification(state store.State) string {
	if !state.Notification.Show {
		return ""
	}
	if state.Notification.Kind == store.NotificationError {
		return errorStyle.Render(state.Notification.Message)
	}
	return infoStyle.Render(state.Notification.Message)
}
