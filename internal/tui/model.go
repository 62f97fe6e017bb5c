// Package tui renders live build progress in the terminal: one line per
// node group plus a tail of recent worker log output.
package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LUX-YU/cmake-node-editor/internal/compile"
)

// Node statuses tracked by the model.
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// logTailSize bounds how many recent log lines the view keeps.
const logTailSize = 12

// LogMsg carries one worker log line.
type LogMsg struct {
	Index int
	Text  string
}

// NodeResultMsg reports one node group's verdict.
type NodeResultMsg struct {
	Index int
	OK    bool
}

// BuildFinishedMsg reports the whole-plan outcome.
type BuildFinishedMsg struct {
	OK bool
}

// CancelRequestedMsg is emitted back to the driver when the user hits
// ctrl+c; the driver owns the coordinator and performs the actual cancel.
type CancelRequestedMsg struct{}

type nodeRow struct {
	Index  int
	Title  string
	Status string
}

// Model is the Bubbletea state for one build run.
type Model struct {
	title     string
	rows      []nodeRow
	logs      []string
	spin      spinner.Model
	bar       progress.Model
	total     int
	completed int
	finished  bool
	succeeded bool
	cancelled bool
	onCancel  func()
}

// NewModel builds a model for the plan. onCancel, if non-nil, runs once
// when the user requests cancellation.
func NewModel(title string, plan *compile.Plan, onCancel func()) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	m := Model{
		title:    title,
		spin:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		bar:      bar,
		onCancel: onCancel,
	}
	if plan != nil {
		for _, group := range plan.Groups {
			m.rows = append(m.rows, nodeRow{Index: group.Index, Title: group.Title, Status: StatusPending})
			m.total++
		}
	}
	if len(m.rows) > 0 {
		m.rows[0].Status = StatusRunning
	}
	return m
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// TotalNodes returns the number of node groups tracked.
func (m Model) TotalNodes() int { return m.total }

// CompletedNodes returns how many node groups have finished.
func (m Model) CompletedNodes() int { return m.completed }

// IsFinished reports whether the run reached a terminal outcome.
func (m Model) IsFinished() bool { return m.finished }

// Succeeded reports whether the whole plan passed.
func (m Model) Succeeded() bool { return m.finished && m.succeeded }

func (m *Model) rowAt(index int) *nodeRow {
	for i := range m.rows {
		if m.rows[i].Index == index {
			return &m.rows[i]
		}
	}
	return nil
}

func (m *Model) appendLog(text string) {
	m.logs = append(m.logs, text)
	if len(m.logs) > logTailSize {
		m.logs = m.logs[len(m.logs)-logTailSize:]
	}
}

func (m *Model) markRemainingSkipped() {
	for i := range m.rows {
		if m.rows[i].Status == StatusPending || m.rows[i].Status == StatusRunning {
			m.rows[i].Status = StatusSkipped
		}
	}
}
