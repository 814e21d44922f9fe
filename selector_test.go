package gridsim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridsim/grid"
)

func newTestGrid(t *testing.T, columns, rows int) *grid.Grid {
	t.Helper()
	g, err := grid.New(columns, rows)
	require.NoError(t, err)
	return g
}

func TestSelectNearestTaskPicksShortest(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	require.NoError(t, g.PlaceTask(grid.Position{Col: 9, Row: 9}, 1))
	require.NoError(t, g.PlaceTask(grid.Position{Col: 2, Row: 0}, 2))
	require.NoError(t, g.PlaceTask(grid.Position{Col: 5, Row: 5}, 3))

	for _, algorithm := range []Algorithm{AlgorithmAStar, AlgorithmIDAStar} {
		sel, err := selectNearestTask(context.Background(), g, algorithm, grid.Position{Col: 0, Row: 0})
		require.NoError(t, err, algorithm)
		assert.Equal(t, grid.Position{Col: 2, Row: 0}, sel.taskPos, algorithm)
		assert.Len(t, sel.path, 2, algorithm)
	}
}

func TestSelectNearestTaskTieBreaksByPlacementOrder(t *testing.T) {
	g := newTestGrid(t, 10, 10)
	// Both tasks are 4 steps from the agent; the first placed must win.
	require.NoError(t, g.PlaceTask(grid.Position{Col: 4, Row: 0}, 1))
	require.NoError(t, g.PlaceTask(grid.Position{Col: 0, Row: 4}, 2))

	sel, err := selectNearestTask(context.Background(), g, AlgorithmAStar, grid.Position{Col: 0, Row: 0})
	require.NoError(t, err)
	assert.Equal(t, grid.Position{Col: 4, Row: 0}, sel.taskPos)
}

func TestSelectNearestTaskSkipsUnreachable(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	// Task 1 is closer but boxed into the corner; task 2 is farther but
	// reachable, so it must win without the selection failing.
	require.NoError(t, g.PlaceTask(grid.Position{Col: 4, Row: 0}, 1))
	require.NoError(t, g.PlaceBarrier(grid.Position{Col: 3, Row: 0}))
	require.NoError(t, g.PlaceBarrier(grid.Position{Col: 4, Row: 1}))
	require.NoError(t, g.PlaceTask(grid.Position{Col: 0, Row: 4}, 2))

	for _, algorithm := range []Algorithm{AlgorithmAStar, AlgorithmIDAStar} {
		sel, err := selectNearestTask(context.Background(), g, algorithm, grid.Position{Col: 0, Row: 0})
		require.NoError(t, err, algorithm)
		assert.Equal(t, grid.Position{Col: 0, Row: 4}, sel.taskPos, algorithm)
		assert.Len(t, sel.path, 4, algorithm)
	}
}

func TestSelectNearestTaskErrors(t *testing.T) {
	empty := newTestGrid(t, 3, 3)
	_, err := selectNearestTask(context.Background(), empty, AlgorithmAStar, grid.Position{Col: 0, Row: 0})
	assert.ErrorIs(t, err, ErrNoTasksRemain)

	walled := newTestGrid(t, 3, 3)
	require.NoError(t, walled.PlaceTask(grid.Position{Col: 2, Row: 2}, 1))
	// Full vertical wall isolates the task column from the agent.
	require.NoError(t, walled.PlaceBarrier(grid.Position{Col: 1, Row: 0}))
	require.NoError(t, walled.PlaceBarrier(grid.Position{Col: 1, Row: 1}))
	require.NoError(t, walled.PlaceBarrier(grid.Position{Col: 1, Row: 2}))
	_, err = selectNearestTask(context.Background(), walled, AlgorithmIDAStar, grid.Position{Col: 0, Row: 0})
	assert.ErrorIs(t, err, ErrNoReachableTask)
}

func TestFindPathRejectsBadGoals(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	require.NoError(t, g.PlaceBarrier(grid.Position{Col: 2, Row: 2}))
	start := grid.Position{Col: 0, Row: 0}

	result, err := findPath(context.Background(), g, AlgorithmAStar, start, grid.Position{Col: 5, Row: 5})
	require.NoError(t, err)
	assert.False(t, result.Found, "out-of-bounds goal")

	result, err = findPath(context.Background(), g, AlgorithmIDAStar, start, grid.Position{Col: 2, Row: 2})
	require.NoError(t, err)
	assert.False(t, result.Found, "barrier goal")
}

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]Algorithm{
		"astar":   AlgorithmAStar,
		"A*":      AlgorithmAStar,
		"a-star":  AlgorithmAStar,
		"idastar": AlgorithmIDAStar,
		"IDA*":    AlgorithmIDAStar,
	}
	for in, want := range cases {
		got, err := ParseAlgorithm(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAlgorithm("dijkstra")
	assert.Error(t, err)
}
