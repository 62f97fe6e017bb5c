package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current run state.
func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render(fmt.Sprintf("cmake-node-editor • %s", m.title)))

	sections = append(sections, sectionStyle.Render("Progress"), m.renderProgress())

	if len(m.rows) > 0 {
		sections = append(sections, sectionStyle.Render("Nodes"), m.renderRows())
	}

	if len(m.logs) > 0 {
		sections = append(sections, sectionStyle.Render("Output"), logStyle.Render(strings.Join(m.logs, "\n")))
	}

	if summary := m.summary(); summary != "" {
		sections = append(sections, summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderProgress draws the completion bar with a node-count label. Failed
// nodes stay in the count; the label calls them out separately.
func (m Model) renderProgress() string {
	ratio := 0.0
	if m.total > 0 {
		ratio = math.Min(1.0, float64(m.completed)/float64(m.total))
	}

	label := progressLabelStyle.Render(fmt.Sprintf("%d/%d nodes", m.completed, m.total))
	if failed := m.failedNodes(); failed > 0 {
		label = lipgloss.JoinHorizontal(lipgloss.Left, label, failureStyle.Render(fmt.Sprintf(" (%d failed)", failed)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", m.bar.ViewAs(ratio))
}

func (m Model) failedNodes() int {
	failed := 0
	for _, row := range m.rows {
		if row.Status == StatusFailed {
			failed++
		}
	}
	return failed
}

func (m Model) renderRows() string {
	lines := make([]string, 0, len(m.rows))
	for _, row := range m.rows {
		lines = append(lines, fmt.Sprintf(" %s %s", m.statusIcon(row.Status), row.Title))
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusIcon(status string) string {
	switch status {
	case StatusSuccess:
		return successStyle.Render("✓")
	case StatusRunning:
		return runningStyle.Render(m.spin.View())
	case StatusFailed:
		return failureStyle.Render("✗")
	case StatusSkipped:
		return skippedStyle.Render("⊘")
	default:
		return pendingStyle.Render("…")
	}
}

func (m Model) summary() string {
	switch {
	case m.cancelled:
		return failureStyle.Render("Build cancelled.")
	case m.finished && m.succeeded:
		return successStyle.Render(fmt.Sprintf("All %d nodes built successfully.", m.total))
	case m.finished:
		return failureStyle.Render("Build failed. See output above.")
	default:
		return ""
	}
}
