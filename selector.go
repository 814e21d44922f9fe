package gridsim

import (
	"context"

	"github.com/pdrpinto/gridsim/grid"
	"github.com/pdrpinto/gridsim/internal/ctxlog"
)

// selection is the outcome of one nearest-task query: the chosen task cell
// and the path leading to it (agent's own cell excluded).
type selection struct {
	taskPos grid.Position
	path    []grid.Position
}

// selectNearestTask searches from the agent's position to every open task
// and keeps the shortest successful path. Unreachable tasks are skipped,
// not errors: they are simply never selected while reachable tasks exist.
//
// Ties on path length go to the task placed earliest, because grid.Tasks
// enumerates in placement order and only a strictly shorter path replaces
// the current best. That makes repeated runs with the same seed reproduce
// the same tour.
func selectNearestTask(ctx context.Context, g *grid.Grid, algorithm Algorithm, from grid.Position) (selection, error) {
	tasks := g.Tasks()
	if len(tasks) == 0 {
		return selection{}, ErrNoTasksRemain
	}

	logger := ctxlog.FromContext(ctx)
	var best *selection
	for _, pos := range tasks {
		result, err := findPath(ctx, g, algorithm, from, pos)
		if err != nil {
			return selection{}, err
		}
		if !result.Found {
			logger.Debug("task unreachable, skipping", "task", pos.String(), "from", from.String())
			continue
		}
		if best == nil || len(result.Path) < len(best.path) {
			best = &selection{taskPos: pos, path: result.Path}
		}
	}
	if best == nil {
		return selection{}, ErrNoReachableTask
	}
	logger.Debug("nearest task selected",
		"task", best.taskPos.String(),
		"from", from.String(),
		"length", len(best.path),
		"algorithm", algorithm.String(),
	)
	return *best, nil
}
