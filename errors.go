package gridsim

import "errors"

var (
	// ErrNoTasksRemain reports that selection was asked for a task on a
	// grid with none left. The run is complete, not stalled.
	ErrNoTasksRemain = errors.New("no tasks remain")

	// ErrNoReachableTask reports that tasks remain but every one of them
	// is walled off from the agent. The caller decides whether that ends
	// the run; it is not a crash.
	ErrNoReachableTask = errors.New("no reachable task")

	// ErrRunInProgress rejects algorithm switches after stepping has
	// begun. The algorithm is fixed for the duration of a run.
	ErrRunInProgress = errors.New("run already in progress")
)
