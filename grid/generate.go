package grid

import (
	"fmt"
	"math/rand"
)

// GenerateUniqueLocations draws count distinct random positions on g, none
// of which appear in exclude. It fails with ErrInvalidConfiguration up front
// when count exceeds the free cells, so the sampling loop always terminates.
func (g *Grid) GenerateUniqueLocations(rng *rand.Rand, count int, exclude map[Position]struct{}) ([]Position, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative location count %d", ErrInvalidConfiguration, count)
	}
	free := g.columns * g.rows
	for p := range exclude {
		if g.InBounds(p) {
			free--
		}
	}
	if count > free {
		return nil, fmt.Errorf("%w: %d locations requested but only %d free cells", ErrInvalidConfiguration, count, free)
	}
	taken := make(map[Position]struct{}, count)
	out := make([]Position, 0, count)
	for len(out) < count {
		p := Position{Col: rng.Intn(g.columns), Row: rng.Intn(g.rows)}
		if _, skip := exclude[p]; skip {
			continue
		}
		if _, dup := taken[p]; dup {
			continue
		}
		taken[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

// NewRandom builds a grid with taskCount tasks (ids 1..taskCount in draw
// order, so enumeration order is ascending id) and barrierCount barriers,
// all drawn uniformly at random from rng. Tasks are placed first; barriers
// exclude task cells. Neither may land on start, where the agent begins.
func NewRandom(columns, rows, taskCount, barrierCount int, start Position, rng *rand.Rand) (*Grid, error) {
	g, err := New(columns, rows)
	if err != nil {
		return nil, err
	}
	if !g.InBounds(start) {
		return nil, fmt.Errorf("%w: start %v out of bounds", ErrInvalidConfiguration, start)
	}
	if taskCount+barrierCount > columns*rows-1 {
		return nil, fmt.Errorf("%w: %d tasks + %d barriers exceed the %d cells available",
			ErrInvalidConfiguration, taskCount, barrierCount, columns*rows-1)
	}

	exclude := map[Position]struct{}{start: {}}
	taskCells, err := g.GenerateUniqueLocations(rng, taskCount, exclude)
	if err != nil {
		return nil, err
	}
	for i, p := range taskCells {
		if err := g.PlaceTask(p, TaskID(i+1)); err != nil {
			return nil, err
		}
		exclude[p] = struct{}{}
	}
	barrierCells, err := g.GenerateUniqueLocations(rng, barrierCount, exclude)
	if err != nil {
		return nil, err
	}
	for _, p := range barrierCells {
		if err := g.PlaceBarrier(p); err != nil {
			return nil, err
		}
	}
	return g, nil
}
