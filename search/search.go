// Package search implements shortest-path search over an abstract graph
// with unit edge cost.
//
// It exposes two interchangeable entry points:
//
//   - AStar: priority-queue best-first search.
//   - IDAStar: iterative-deepening depth-first search with a cost bound.
//
// Both are generic over the node type and, given an admissible consistent
// heuristic, return paths of identical length on every solvable instance;
// only the tie-broken route may differ.
package search

import "context"

// Graph is generic over node type N.
// N must be comparable so it can be used in maps.
type Graph[N comparable] interface {
	// Neighbors returns the nodes reachable from node in one unit-cost
	// step. The order must be deterministic: both algorithms depend on it
	// for reproducible tie-breaking.
	Neighbors(node N) []N
}

// Heuristic estimates the remaining cost from a node to the goal. It must
// never overestimate, and must be consistent, for the optimality guarantees
// of both algorithms to hold.
type Heuristic[N comparable] func(from, to N) int

// Result contains the outcome of a search.
//
// Path excludes the start node and includes the goal; a non-nil empty path
// means start == goal and no movement is needed. Found reports whether a
// path exists at all — there are no partial results.
type Result[N comparable] struct {
	Path     []N
	Cost     int
	Expanded int
	Found    bool
}

// GraphFunc adapts a plain function to the Graph interface.
type GraphFunc[N comparable] func(node N) []N

func (f GraphFunc[N]) Neighbors(node N) []N { return f(node) }

// trivialResult handles the start == goal case shared by both algorithms:
// a zero-length success without touching any search machinery.
func trivialResult[N comparable](start, goal N) (Result[N], bool) {
	if start == goal {
		return Result[N]{Path: []N{}, Found: true}, true
	}
	return Result[N]{}, false
}

// reconstructPath walks the back-pointers from goal to start and returns
// the forward path, start excluded.
func reconstructPath[N comparable](cameFrom map[N]N, goal, start N) []N {
	path := []N{goal}
	current := goal
	for current != start {
		previous, ok := cameFrom[current]
		if !ok {
			break
		}
		if previous != start {
			path = append(path, previous)
		}
		current = previous
	}
	// reverse into forward order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func cancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
