package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type timerMsg struct{ id uint64 }

// teaScheduler runs controller timers on the bubbletea event loop. After
// queues a tea.Tick command; the callback runs when its timerMsg comes
// back through Update, unless it was cancelled in the meantime.
type teaScheduler struct {
	next    uint64
	pending map[uint64]func()
	cmds    []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[uint64]func())}
}

func (s *teaScheduler) After(d time.Duration, fn func()) func() {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg { return timerMsg{id} }))
	return func() { delete(s.pending, id) }
}

// fire runs the timer if it is still pending.
func (s *teaScheduler) fire(id uint64) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

// drain hands the queued tick commands to bubbletea.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmd := tea.Batch(s.cmds...)
	s.cmds = nil
	return cmd
}
