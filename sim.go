package gridsim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pdrpinto/gridsim/grid"
)

// Config seeds a fresh run: grid extent, how many tasks and barriers to
// scatter, and where the agent starts.
type Config struct {
	Columns      int
	Rows         int
	TaskCount    int
	BarrierCount int
	Seed         int64
	Start        grid.Position
	Algorithm    Algorithm
}

// Simulation ties one grid and one agent together and is the surface an
// external driver (CLI, UI loop, test harness) consumes. The driver
// controls pacing by calling Step at whatever cadence it chooses; the
// simulation has no timers of its own.
type Simulation struct {
	env       *grid.Grid
	agent     *Agent
	algorithm Algorithm
	started   bool
}

// New builds a randomly generated simulation from cfg. Generation fails
// with grid.ErrInvalidConfiguration when tasks plus barriers cannot fit.
func New(cfg Config) (*Simulation, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	env, err := grid.NewRandom(cfg.Columns, cfg.Rows, cfg.TaskCount, cfg.BarrierCount, cfg.Start, rng)
	if err != nil {
		return nil, err
	}
	return &Simulation{
		env:       env,
		agent:     NewAgent(env, cfg.Algorithm, cfg.Start),
		algorithm: cfg.Algorithm,
	}, nil
}

// NewFromGrid wraps an explicitly constructed grid, as produced by scenario
// files or tests. The start cell must be walkable.
func NewFromGrid(env *grid.Grid, algorithm Algorithm, start grid.Position) (*Simulation, error) {
	if !env.InBounds(start) {
		return nil, fmt.Errorf("%w: start %v out of bounds", grid.ErrInvalidConfiguration, start)
	}
	if env.IsBarrier(start) {
		return nil, fmt.Errorf("%w: start %v is a barrier", grid.ErrInvalidConfiguration, start)
	}
	return &Simulation{
		env:       env,
		agent:     NewAgent(env, algorithm, start),
		algorithm: algorithm,
	}, nil
}

// SelectAlgorithm switches the search algorithm. It must be called before
// the first Step; the algorithm is fixed for the duration of a run.
func (s *Simulation) SelectAlgorithm(a Algorithm) error {
	if s.started {
		return ErrRunInProgress
	}
	s.algorithm = a
	s.agent.algorithm = a
	return nil
}

// Algorithm returns the algorithm driving this run.
func (s *Simulation) Algorithm() Algorithm { return s.algorithm }

// Step advances the agent by one unit of work.
func (s *Simulation) Step(ctx context.Context) error {
	s.started = true
	return s.agent.Step(ctx)
}

// Done reports whether the run reached a terminal state.
func (s *Simulation) Done() bool { return s.agent.Done() }

// Stalled reports whether the run ended with unreachable tasks left over.
func (s *Simulation) Stalled() bool { return s.agent.Stalled() }

// Grid exposes the map for adjacency queries and rendering.
func (s *Simulation) Grid() *grid.Grid { return s.env }

// Agent exposes the agent's accessors.
func (s *Simulation) Agent() *Agent { return s.agent }

// Snapshot is a point-in-time copy of everything a renderer needs. Mutating
// it has no effect on the run.
type Snapshot struct {
	Columns   int
	Rows      int
	Barriers  map[grid.Position]struct{}
	Tasks     map[grid.Position]grid.TaskID
	Agent     grid.Position
	Path      []grid.Position
	Cost      int
	Completed []grid.TaskID
	State     State
	Done      bool
	Stalled   bool
}

// Snapshot captures the current state of the run.
func (s *Simulation) Snapshot() Snapshot {
	tasks := make(map[grid.Position]grid.TaskID, s.env.TaskCount())
	for _, p := range s.env.Tasks() {
		if id, ok := s.env.TaskAt(p); ok {
			tasks[p] = id
		}
	}
	return Snapshot{
		Columns:   s.env.Columns(),
		Rows:      s.env.Rows(),
		Barriers:  s.env.Barriers(),
		Tasks:     tasks,
		Agent:     s.agent.Position(),
		Path:      s.agent.Path(),
		Cost:      s.agent.Cost(),
		Completed: s.agent.CompletedTasks(),
		State:     s.agent.State(),
		Done:      s.agent.Done(),
		Stalled:   s.agent.Stalled(),
	}
}
