package bus

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// domainTickMsg is the synthetic message that re-enters bubbletea's
// Update loop to drain the domain queue; tea.Msg values themselves ARE
// UI-channel messages, so only the domain channel needs this pump.
type domainTickMsg struct{}

// pollInterval is how often the domain queue is polled for pending
// actions between bubbletea's own UI events.
const pollInterval = 10 * time.Millisecond

// Tick returns a tea.Cmd that re-enters Update with a domainTickMsg
// after pollInterval, driving the domain-queue drain loop.
func Tick() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return domainTickMsg{}
	})
}

// IsDomainTick reports whether msg is the synthetic domain-drain tick.
func IsDomainTick(msg tea.Msg) bool {
	_, ok := msg.(domainTickMsg)
	return ok
}
