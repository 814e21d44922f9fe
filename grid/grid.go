// Package grid holds the static map a simulation runs on: a bounded
// columns x rows extent, a set of impassable barrier cells, and the
// locations of open tasks.
//
// A Grid is immutable after construction except for RemoveTaskAt, which is
// the single mutator and models an agent consuming a task. Task enumeration
// through Tasks is insertion-ordered so that callers comparing paths across
// many tasks get a deterministic tie-break.
package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration marks setup-time failures: the requested grid
// cannot be built as described and the caller must reconfigure.
var ErrInvalidConfiguration = errors.New("invalid grid configuration")

// TaskID identifies a task placed on the grid.
type TaskID int

// Position is a cell on the grid, 0-based from the top-left corner.
// It is a value type and is used directly as a map key.
type Position struct {
	Col int
	Row int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// ManhattanDistance returns the L1 distance to other. With unit move cost
// and 4-connected movement it never overestimates the real path length,
// which makes it an admissible and consistent search heuristic.
func (p Position) ManhattanDistance(other Position) int {
	return abs(p.Col-other.Col) + abs(p.Row-other.Row)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Grid is the authoritative map state.
type Grid struct {
	columns  int
	rows     int
	barriers map[Position]struct{}
	tasks    map[Position]TaskID
	// taskOrder preserves placement order; it is the documented task
	// enumeration order used for selection tie-breaks.
	taskOrder []Position
}

// New returns an empty grid with the given extent.
func New(columns, rows int) (*Grid, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: extent %dx%d must be positive", ErrInvalidConfiguration, columns, rows)
	}
	return &Grid{
		columns:  columns,
		rows:     rows,
		barriers: make(map[Position]struct{}),
		tasks:    make(map[Position]TaskID),
	}, nil
}

// Columns returns the horizontal extent.
func (g *Grid) Columns() int { return g.columns }

// Rows returns the vertical extent.
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Col >= 0 && p.Col < g.columns && p.Row >= 0 && p.Row < g.rows
}

// IsBarrier reports whether p is an impassable cell.
func (g *Grid) IsBarrier(p Position) bool {
	_, ok := g.barriers[p]
	return ok
}

// Neighbors returns the walkable 4-connected cells adjacent to p, always
// enumerated up, down, left, right. Both search algorithms rely on this
// fixed order for comparable results.
func (g *Grid) Neighbors(p Position) []Position {
	dirs := [4]Position{
		{Col: 0, Row: -1},
		{Col: 0, Row: 1},
		{Col: -1, Row: 0},
		{Col: 1, Row: 0},
	}
	out := make([]Position, 0, 4)
	for _, d := range dirs {
		n := Position{Col: p.Col + d.Col, Row: p.Row + d.Row}
		if g.InBounds(n) && !g.IsBarrier(n) {
			out = append(out, n)
		}
	}
	return out
}

// PlaceBarrier marks p impassable. Barriers may not overlap tasks.
func (g *Grid) PlaceBarrier(p Position) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: barrier %v out of bounds", ErrInvalidConfiguration, p)
	}
	if _, ok := g.tasks[p]; ok {
		return fmt.Errorf("%w: barrier %v overlaps a task", ErrInvalidConfiguration, p)
	}
	g.barriers[p] = struct{}{}
	return nil
}

// PlaceTask puts a task at p. At most one task per cell, and never on a
// barrier.
func (g *Grid) PlaceTask(p Position, id TaskID) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: task %d at %v out of bounds", ErrInvalidConfiguration, id, p)
	}
	if g.IsBarrier(p) {
		return fmt.Errorf("%w: task %d at %v overlaps a barrier", ErrInvalidConfiguration, id, p)
	}
	if _, ok := g.tasks[p]; ok {
		return fmt.Errorf("%w: cell %v already holds a task", ErrInvalidConfiguration, p)
	}
	g.tasks[p] = id
	g.taskOrder = append(g.taskOrder, p)
	return nil
}

// TaskAt returns the task at p, if any.
func (g *Grid) TaskAt(p Position) (TaskID, bool) {
	id, ok := g.tasks[p]
	return id, ok
}

// Tasks returns the positions of all open tasks in placement order.
// The returned slice is a copy.
func (g *Grid) Tasks() []Position {
	out := make([]Position, len(g.taskOrder))
	copy(out, g.taskOrder)
	return out
}

// TaskCount returns the number of open tasks.
func (g *Grid) TaskCount() int { return len(g.tasks) }

// Barriers returns every barrier cell. The returned map is a copy; mutating
// it has no effect on the grid.
func (g *Grid) Barriers() map[Position]struct{} {
	out := make(map[Position]struct{}, len(g.barriers))
	for p := range g.barriers {
		out[p] = struct{}{}
	}
	return out
}

// RemoveTaskAt pops and returns the task at p. It is the grid's only
// mutator after construction. Removing from a cell with no task is a no-op
// reporting false.
func (g *Grid) RemoveTaskAt(p Position) (TaskID, bool) {
	id, ok := g.tasks[p]
	if !ok {
		return 0, false
	}
	delete(g.tasks, p)
	for i, q := range g.taskOrder {
		if q == p {
			g.taskOrder = append(g.taskOrder[:i], g.taskOrder[i+1:]...)
			break
		}
	}
	return id, true
}
