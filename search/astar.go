package search

import (
	"container/heap"
	"context"
)

// AStar runs best-first search from start to goal.
//
// The open set is a binary min-heap keyed by f = g + h, FIFO among equal
// keys. Because the heuristic is consistent, a node popped from the open
// set already holds its optimal g; later pops of the same node are stale
// and skipped. An unreachable goal yields Found == false with a nil error —
// the only error returned is context cancellation.
func AStar[N comparable](ctx context.Context, graph Graph[N], start, goal N, heuristic Heuristic[N]) (Result[N], error) {
	if r, done := trivialResult[N](start, goal); done {
		return r, nil
	}

	openSet := make(priorityQueue[N], 0)
	heap.Init(&openSet)

	var seq uint64
	startItem := &queueItem[N]{
		Node:   start,
		GScore: 0,
		FCost:  heuristic(start, goal),
		seq:    seq,
	}
	heap.Push(&openSet, startItem)

	cameFrom := make(map[N]N)
	gScore := map[N]int{start: 0}
	closedSet := make(map[N]struct{})
	openSetMap := map[N]*queueItem[N]{start: startItem}

	expanded := 0
	for openSet.Len() > 0 {
		if err := cancelled(ctx); err != nil {
			return Result[N]{}, err
		}

		currentItem := heap.Pop(&openSet).(*queueItem[N])
		current := currentItem.Node
		delete(openSetMap, current)

		// Skip if already closed
		if _, closed := closedSet[current]; closed {
			continue
		}
		closedSet[current] = struct{}{}
		expanded++

		if current == goal {
			return Result[N]{
				Path:     reconstructPath(cameFrom, current, start),
				Cost:     currentItem.GScore,
				Expanded: expanded,
				Found:    true,
			}, nil
		}

		for _, neighbor := range graph.Neighbors(current) {
			if _, closed := closedSet[neighbor]; closed {
				continue
			}
			tentativeG := currentItem.GScore + 1
			if known, seen := gScore[neighbor]; seen && tentativeG >= known {
				continue
			}
			gScore[neighbor] = tentativeG
			cameFrom[neighbor] = current
			f := tentativeG + heuristic(neighbor, goal)
			if item, inOpen := openSetMap[neighbor]; !inOpen {
				seq++
				item = &queueItem[N]{
					Node:   neighbor,
					GScore: tentativeG,
					FCost:  f,
					seq:    seq,
				}
				heap.Push(&openSet, item)
				openSetMap[neighbor] = item
			} else if f < item.FCost {
				item.GScore = tentativeG
				item.FCost = f
				heap.Fix(&openSet, item.indexInQueue)
			}
		}
	}

	return Result[N]{Expanded: expanded}, nil
}
