package gridsim

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdrpinto/gridsim/grid"
	"github.com/pdrpinto/gridsim/search"
)

// Algorithm selects which shortest-path search drives task selection.
type Algorithm int

const (
	// AlgorithmAStar is priority-queue best-first search.
	AlgorithmAStar Algorithm = iota
	// AlgorithmIDAStar is iterative-deepening depth-first search.
	AlgorithmIDAStar
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmAStar:
		return "A*"
	case AlgorithmIDAStar:
		return "IDA*"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm accepts the spellings used on the command line and in
// scenario files: "astar", "a*", "idastar", "ida*" (case-insensitive).
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "astar", "a*", "a-star":
		return AlgorithmAStar, nil
	case "idastar", "ida*", "ida-star":
		return AlgorithmIDAStar, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (want astar or idastar)", s)
	}
}

// gridGraph adapts *grid.Grid to search.Graph.
type gridGraph struct {
	g *grid.Grid
}

func (gg gridGraph) Neighbors(p grid.Position) []grid.Position {
	return gg.g.Neighbors(p)
}

func manhattan(a, b grid.Position) int {
	return a.ManhattanDistance(b)
}

// findPath runs the chosen algorithm between two grid cells. A goal that is
// out of bounds or a barrier fails immediately without invoking the search;
// task positions are non-barrier by construction, so hitting that case
// means the caller asked for something the map cannot hold.
func findPath(ctx context.Context, g *grid.Grid, algorithm Algorithm, start, goal grid.Position) (search.Result[grid.Position], error) {
	if !g.InBounds(goal) || g.IsBarrier(goal) {
		return search.Result[grid.Position]{}, nil
	}
	graph := gridGraph{g: g}
	switch algorithm {
	case AlgorithmIDAStar:
		return search.IDAStar[grid.Position](ctx, graph, start, goal, manhattan)
	default:
		return search.AStar[grid.Position](ctx, graph, start, goal, manhattan)
	}
}
