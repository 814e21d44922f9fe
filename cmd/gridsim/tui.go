package main

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdrpinto/gridsim"
)

// tickMsg fires one simulation step. The cadence is fixed at program start,
// standing in for the frame-timer loop of a graphical driver.
type tickMsg time.Time

type watchModel struct {
	ctx   context.Context
	sim   *gridsim.Simulation
	delay time.Duration
	err   error
}

func runWatch(ctx context.Context, out io.Writer, sim *gridsim.Simulation, delay time.Duration) error {
	m := watchModel{ctx: ctx, sim: sim, delay: delay}
	final, err := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(watchModel); ok && fm.err != nil {
		return fm.err
	}
	if sim.Stalled() {
		return fmt.Errorf("run stalled with %d unreachable task(s)", sim.Grid().TaskCount())
	}
	return nil
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		if m.sim.Done() {
			return m, tea.Quit
		}
		if err := m.sim.Step(m.ctx); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m watchModel) View() string {
	snap := m.sim.Snapshot()
	view := renderGrid(snap) + "\n" + renderSummary(snap, m.sim.Algorithm()) + "\n"
	if snap.Done {
		return view + "finished — press q to quit\n"
	}
	return view + "stepping… press q to quit\n"
}
