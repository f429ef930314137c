// Package tui implements the full-screen search/replace interface,
// wired to internal/replace/store for state and internal/replace/bus
// for the domain action queue. Generalized from the teacher's
// per-prompt readline loop (internal/tui/ui.go, internal/ui/input.go)
// into a persistent bubbletea full-screen Model, since this tool has
// several simultaneously-visible panes instead of one linear prompt.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kvit-s/kvit-replace/internal/config"
	"github.com/kvit-s/kvit-replace/internal/replace/apply"
	"github.com/kvit-s/kvit-replace/internal/replace/bus"
	"github.com/kvit-s/kvit-replace/internal/replace/model"
	"github.com/kvit-s/kvit-replace/internal/replace/store"
	"github.com/kvit-s/kvit-replace/internal/replace/thunk"
	"github.com/kvit-s/kvit-replace/internal/uihistory"
)

// Model is the bubbletea program driving the whole application.
type Model struct {
	cfg *config.Config

	store *bus.Bus
	st    *store.Store

	searchInput  textarea.Model
	replaceInput textarea.Model
	preview      viewport.Model

	searchHistory  []string
	replaceHistory []string
	historyPath    string

	debouncer  *thunk.Debouncer
	searchOpts thunk.SearchOptions
	applyOpts  apply.Options

	// previewCursor indexes the selected file's Matches slice; it is UI
	// state outside the store, matching spec.md §3's "separate line
	// cursor inside the preview component".
	previewCursor int

	width, height int
	quitting      bool
}

// Options configures a new Model.
type Options struct {
	Config        *config.Config
	ProjectRoot   string
	HistoryPath   string
	IsLargeFolder bool
}

// New constructs the TUI model, loading input history the way the
// teacher's internal/tui.New loads its REPL history.
func New(opts Options) Model {
	searchHistory, _ := uihistory.Load(opts.HistoryPath + ".search")
	replaceHistory, _ := uihistory.Load(opts.HistoryPath + ".replace")

	st := store.NewStore(opts.ProjectRoot)
	st.Dispatch(store.SetActiveTabAction{Tab: model.TabSearch})
	if opts.IsLargeFolder {
		st.Dispatch(store.SetIsLargeFolderAction{IsLargeFolder: true})
	}

	return Model{
		cfg:            opts.Config,
		store:          bus.New(),
		st:             st,
		searchInput:    newTextarea("Search"),
		replaceInput:   newTextarea("Replace"),
		preview:        viewport.New(80, 20),
		searchHistory:  searchHistory,
		replaceHistory: replaceHistory,
		historyPath:    opts.HistoryPath,
		debouncer:      &thunk.Debouncer{},
		searchOpts: thunk.SearchOptions{
			RegexBinary:  opts.Config.Search.Binary,
			ContextLines: opts.Config.Search.ContextLines,
			AstBinary:    opts.Config.AstGrep.Binary,
		},
		applyOpts: apply.Options{AstBinary: opts.Config.AstGrep.Binary},
	}
}

func newTextarea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.SetWidth(60)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()
	return ta
}

// Init starts the cursor blink and the domain-queue drain tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, bus.Tick())
}

// Update routes bubbletea messages: window resize, key input dispatched
// through the configured keybindings, and the synthetic domain tick
// that drains actions thunks pushed onto the bus.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.searchInput.SetWidth(msg.Width - 10)
		m.replaceInput.SetWidth(msg.Width - 10)
		m.preview.Width = msg.Width
		m.preview.Height = msg.Height / 2
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		if bus.IsDomainTick(msg) {
			m.drainBus()
			return m, bus.Tick()
		}
		return m, nil
	}
}

// drainBus applies every pending domain action to the store and
// discards UI hints (ResetHint etc.) that the view doesn't separately
// track — the view always renders from the current store snapshot.
func (m *Model) drainBus() {
	for {
		msg, ok := m.store.PopDomain()
		if !ok {
			break
		}
		if action, ok := msg.(store.Action); ok {
			m.st.Dispatch(action)
		}
	}
	for {
		if _, ok := m.store.PopUI(); !ok {
			break
		}
	}
}

// dispatchThunk runs a thunk in its own goroutine so subprocess/file I/O
// never blocks the Update loop; results arrive via the domain queue on
// the next tick.
func (m *Model) dispatchThunk(t thunk.Thunk) {
	go func() {
		_ = t(context.Background(), m.store)
	}()
}
