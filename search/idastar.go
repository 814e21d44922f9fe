package search

import (
	"context"
	"math"
)

// noPrune marks an iteration during which no branch exceeded the bound.
// When a bounded pass ends at noPrune the reachable component has been
// exhausted and the goal is provably unreachable.
const noPrune = math.MaxInt

// IDAStar runs iterative-deepening depth-first search from start to goal.
//
// The cost bound starts at heuristic(start, goal). Each pass prunes any
// branch whose f = g + h exceeds the bound and treats a node already on the
// current path as a dead end, which prevents cycles without memoizing
// across sibling branches. After a failed pass the bound becomes the
// minimum pruned f, so the bound strictly grows until either the goal is
// found or a pass prunes nothing, which proves unreachability.
//
// The traversal keeps its own frame stack rather than recursing, so deep
// grids cannot exhaust the call stack.
func IDAStar[N comparable](ctx context.Context, graph Graph[N], start, goal N, heuristic Heuristic[N]) (Result[N], error) {
	if r, done := trivialResult[N](start, goal); done {
		return r, nil
	}

	bound := heuristic(start, goal)
	expanded := 0
	for {
		path, minPruned, visited, err := boundedDFS(ctx, graph, start, goal, heuristic, bound)
		expanded += visited
		if err != nil {
			return Result[N]{}, err
		}
		if path != nil {
			return Result[N]{
				Path:     path,
				Cost:     len(path),
				Expanded: expanded,
				Found:    true,
			}, nil
		}
		if minPruned == noPrune {
			return Result[N]{Expanded: expanded}, nil
		}
		bound = minPruned
	}
}

// dfsFrame is one explicit-stack record: a node on the current path and a
// cursor into its neighbor list.
type dfsFrame[N comparable] struct {
	node      N
	neighbors []N
	next      int
}

// boundedDFS performs one depth-first pass limited by bound. It returns the
// forward path (start excluded) when the goal is reached, otherwise nil and
// the minimum f value among pruned branches.
func boundedDFS[N comparable](ctx context.Context, graph Graph[N], start, goal N, heuristic Heuristic[N], bound int) ([]N, int, int, error) {
	stack := []dfsFrame[N]{{node: start, neighbors: graph.Neighbors(start)}}
	onPath := map[N]struct{}{start: {}}
	minPruned := noPrune
	visited := 1

	for len(stack) > 0 {
		if err := cancelled(ctx); err != nil {
			return nil, 0, visited, err
		}
		top := &stack[len(stack)-1]
		if top.next >= len(top.neighbors) {
			delete(onPath, top.node)
			stack = stack[:len(stack)-1]
			continue
		}
		child := top.neighbors[top.next]
		top.next++

		if _, on := onPath[child]; on {
			continue
		}
		g := len(stack) // depth of child equals its cost from start
		f := g + heuristic(child, goal)
		if f > bound {
			if f < minPruned {
				minPruned = f
			}
			continue
		}
		if child == goal {
			path := make([]N, 0, len(stack))
			for _, frame := range stack[1:] {
				path = append(path, frame.node)
			}
			path = append(path, child)
			return path, minPruned, visited, nil
		}
		stack = append(stack, dfsFrame[N]{node: child, neighbors: graph.Neighbors(child)})
		onPath[child] = struct{}{}
		visited++
	}
	return nil, minPruned, visited, nil
}
