package gridsim

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdrpinto/gridsim/grid"
	"github.com/pdrpinto/gridsim/internal/ctxlog"
)

// State is the agent's position in its Idle -> Searching -> Moving -> Idle
// loop, with Done terminal.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateMoving
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSearching:
		return "Searching"
	case StateMoving:
		return "Moving"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Agent walks the grid consuming tasks. It owns its position, remaining
// path, and cost counters; the grid owns the task set, which the agent
// mutates only through RemoveTaskAt on arrival.
type Agent struct {
	env       *grid.Grid
	algorithm Algorithm

	position  grid.Position
	path      []grid.Position
	cost      int
	completed []grid.TaskID
	state     State
	stalled   bool
}

// NewAgent places an agent at start on env. The caller guarantees start is
// in bounds and not a barrier.
func NewAgent(env *grid.Grid, algorithm Algorithm, start grid.Position) *Agent {
	return &Agent{
		env:       env,
		algorithm: algorithm,
		position:  start,
		state:     StateIdle,
	}
}

// Step advances the state machine by exactly one unit of work: one
// transition out of Idle, one search-and-commit, or one movement step. It
// is safe to call at any cadence, including after Done (a no-op).
func (a *Agent) Step(ctx context.Context) error {
	switch a.state {
	case StateDone:
		return nil

	case StateIdle:
		if a.env.TaskCount() == 0 {
			a.finish(ctx, false)
			return nil
		}
		a.state = StateSearching
		return nil

	case StateSearching:
		sel, err := selectNearestTask(ctx, a.env, a.algorithm, a.position)
		switch {
		case errors.Is(err, ErrNoTasksRemain):
			a.finish(ctx, false)
			return nil
		case errors.Is(err, ErrNoReachableTask):
			a.finish(ctx, true)
			return nil
		case err != nil:
			return err
		}
		if len(sel.path) == 0 {
			// The nearest task sits on the agent's own cell. Consume it
			// here, otherwise an empty path would loop Idle/Searching
			// forever without progress.
			a.collectTask(ctx)
			a.state = StateIdle
			return nil
		}
		a.path = sel.path
		a.state = StateMoving
		return nil

	case StateMoving:
		next := a.path[0]
		a.path = a.path[1:]
		a.position = next
		a.cost++
		a.collectTask(ctx)
		if len(a.path) == 0 {
			a.state = StateIdle
		}
		return nil

	default:
		return fmt.Errorf("agent in unknown state %v", a.state)
	}
}

func (a *Agent) collectTask(ctx context.Context) {
	id, ok := a.env.RemoveTaskAt(a.position)
	if !ok {
		return
	}
	a.completed = append(a.completed, id)
	ctxlog.FromContext(ctx).Debug("task completed",
		"task_id", int(id),
		"at", a.position.String(),
		"cost", a.cost,
	)
}

func (a *Agent) finish(ctx context.Context, stalled bool) {
	a.state = StateDone
	a.stalled = stalled
	ctxlog.FromContext(ctx).Debug("agent done",
		"stalled", stalled,
		"completed", len(a.completed),
		"cost", a.cost,
	)
}

// Position returns the agent's current cell.
func (a *Agent) Position() grid.Position { return a.position }

// Cost returns the cumulative movement cost, one unit per step taken.
func (a *Agent) Cost() int { return a.cost }

// State returns the current state machine state.
func (a *Agent) State() State { return a.state }

// Done reports whether the agent reached the terminal state.
func (a *Agent) Done() bool { return a.state == StateDone }

// Stalled reports whether the agent stopped because remaining tasks were
// unreachable, as opposed to finishing them all.
func (a *Agent) Stalled() bool { return a.stalled }

// Path returns a copy of the remaining steps toward the committed task.
func (a *Agent) Path() []grid.Position {
	out := make([]grid.Position, len(a.path))
	copy(out, a.path)
	return out
}

// CompletedTasks returns the consumed task ids in completion order.
func (a *Agent) CompletedTasks() []grid.TaskID {
	out := make([]grid.TaskID, len(a.completed))
	copy(out, a.completed)
	return out
}

// CompletedCount returns how many tasks the agent has consumed.
func (a *Agent) CompletedCount() int { return len(a.completed) }
