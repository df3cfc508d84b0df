package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"seqview/internal/bus"
)

// taskMsg carries a due board callback onto the program loop.
type taskMsg struct{ fn func() }

// busMsg is a bus event observed by the model.
type busMsg struct{ e bus.Event }

// taskQueue hands timer callbacks to Update so boards only run on the program
// goroutine.
type taskQueue chan func()

func (q taskQueue) post(fn func()) { q <- fn }

func (q taskQueue) wait() tea.Cmd {
	return func() tea.Msg {
		fn, ok := <-q
		if !ok {
			return nil
		}
		return taskMsg{fn: fn}
	}
}

func waitEvent(ch <-chan bus.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return busMsg{e: e}
	}
}
