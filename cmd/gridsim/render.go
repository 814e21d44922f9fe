package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdrpinto/gridsim"
	"github.com/pdrpinto/gridsim/grid"
)

var (
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	barrierStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Background(lipgloss.Color("236"))
	taskStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	agentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// renderGrid draws the snapshot as two characters per cell: the agent,
// committed path, tasks (by id), barriers, and empty floor.
func renderGrid(snap gridsim.Snapshot) string {
	onPath := make(map[grid.Position]struct{}, len(snap.Path))
	for _, p := range snap.Path {
		onPath[p] = struct{}{}
	}

	var b strings.Builder
	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Columns; col++ {
			p := grid.Position{Col: col, Row: row}
			switch {
			case p == snap.Agent:
				b.WriteString(agentStyle.Render("@ "))
			case hasBarrier(snap, p):
				b.WriteString(barrierStyle.Render("  "))
			case hasTask(snap, p):
				b.WriteString(taskStyle.Render(taskGlyph(snap.Tasks[p])))
			default:
				if _, ok := onPath[p]; ok {
					b.WriteString(pathStyle.Render("· "))
				} else {
					b.WriteString(emptyStyle.Render(". "))
				}
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func hasBarrier(snap gridsim.Snapshot, p grid.Position) bool {
	_, ok := snap.Barriers[p]
	return ok
}

func hasTask(snap gridsim.Snapshot, p grid.Position) bool {
	_, ok := snap.Tasks[p]
	return ok
}

// taskGlyph keeps cells two characters wide; ids above 9 show as "+".
func taskGlyph(id grid.TaskID) string {
	if id > 9 {
		return "+ "
	}
	return fmt.Sprintf("%d ", int(id))
}

func renderSummary(snap gridsim.Snapshot, algorithm gridsim.Algorithm) string {
	completed := make([]string, len(snap.Completed))
	for i, id := range snap.Completed {
		completed[i] = fmt.Sprintf("%d", int(id))
	}
	state := snap.State.String()
	if snap.Stalled {
		state = "Done (stalled)"
	}
	lines := []string{
		fmt.Sprintf("Algorithm:       %s", algorithm),
		fmt.Sprintf("State:           %s", state),
		fmt.Sprintf("Position:        %s", snap.Agent),
		fmt.Sprintf("Cumulative cost: %d", snap.Cost),
		fmt.Sprintf("Tasks completed: %d [%s]", len(snap.Completed), strings.Join(completed, " ")),
		fmt.Sprintf("Tasks open:      %d", len(snap.Tasks)),
	}
	return summaryStyle.Render(strings.Join(lines, "\n"))
}
