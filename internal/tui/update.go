package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LUX-YU/cmake-node-editor/internal/worker"
)

// Update handles Bubbletea messages and advances the run state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case LogMsg:
		text := msg.Text
		if msg.Index != worker.GlobalIndex {
			if row := m.rowAt(msg.Index); row != nil {
				text = fmt.Sprintf("[%s] %s", row.Title, msg.Text)
			}
		}
		m.appendLog(text)
		return m, nil
	case NodeResultMsg:
		row := m.rowAt(msg.Index)
		if row == nil {
			return m, nil
		}
		if row.Status == StatusPending || row.Status == StatusRunning {
			m.completed++
		}
		if msg.OK {
			row.Status = StatusSuccess
		} else {
			row.Status = StatusFailed
		}
		for i := range m.rows {
			if m.rows[i].Status == StatusPending {
				if msg.OK {
					m.rows[i].Status = StatusRunning
				}
				break
			}
		}
		return m, nil
	case BuildFinishedMsg:
		m.finished = true
		m.succeeded = msg.OK
		if !msg.OK {
			m.markRemainingSkipped()
		}
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if !m.cancelled && m.onCancel != nil {
				m.onCancel()
			}
			m.cancelled = true
			m.finished = true
			m.markRemainingSkipped()
			return m, tea.Quit
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}
