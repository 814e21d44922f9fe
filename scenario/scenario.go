// Package scenario loads simulation setups from HCL files.
//
// A scenario names the grid extent and either counts of randomly scattered
// tasks and barriers or explicit placements:
//
//	grid {
//	  columns  = 20
//	  rows     = 15
//	  tasks    = 5
//	  barriers = 15
//	  seed     = 42
//	}
//
//	algorithm = "astar"
//
//	task {
//	  id = 1
//	  at = [4, 4]
//	}
//	barrier { at = [columns - 1, 0] }
//
// Placement expressions may reference the grid extent through the columns
// and rows variables. Explicit blocks replace random generation for their
// kind; giving both a count and explicit blocks for the same kind is a
// configuration error.
package scenario

import (
	"fmt"
	"math/rand"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/pdrpinto/gridsim"
	"github.com/pdrpinto/gridsim/grid"
)

// PlacedTask is an explicitly positioned task.
type PlacedTask struct {
	ID grid.TaskID
	At grid.Position
}

// Scenario is a decoded, validated run setup.
type Scenario struct {
	Columns      int
	Rows         int
	TaskCount    int
	BarrierCount int
	Seed         int64
	Start        grid.Position
	Algorithm    gridsim.Algorithm

	Tasks    []PlacedTask
	Barriers []grid.Position
}

type fileSchema struct {
	Grid      *gridBlock     `hcl:"grid,block"`
	Algorithm *string        `hcl:"algorithm,optional"`
	Tasks     []taskBlock    `hcl:"task,block"`
	Barriers  []barrierBlock `hcl:"barrier,block"`
}

type gridBlock struct {
	Columns  int    `hcl:"columns"`
	Rows     int    `hcl:"rows"`
	Tasks    *int   `hcl:"tasks,optional"`
	Barriers *int   `hcl:"barriers,optional"`
	Seed     *int64 `hcl:"seed,optional"`
	Start    []int  `hcl:"start,optional"`
}

type taskBlock struct {
	ID int   `hcl:"id"`
	At []int `hcl:"at"`
}

type barrierBlock struct {
	At []int `hcl:"at"`
}

// Load reads and decodes a scenario file from disk.
func Load(path string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario file %s: %s", path, diags.Error())
	}
	return decode(file, path)
}

// Parse decodes a scenario from an in-memory buffer. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario %s: %s", filename, diags.Error())
	}
	return decode(file, filename)
}

func decode(file *hcl.File, name string) (*Scenario, error) {
	// First pass pulls out the grid block alone: its attributes must be
	// literals because they define the variables the second pass exposes.
	var head struct {
		Grid   *gridBlock `hcl:"grid,block"`
		Remain hcl.Body   `hcl:",remain"`
	}
	if diags := gohcl.DecodeBody(file.Body, nil, &head); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scenario %s: %s", name, diags.Error())
	}
	if head.Grid == nil {
		return nil, fmt.Errorf("%w: scenario %s has no grid block", grid.ErrInvalidConfiguration, name)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"columns": cty.NumberIntVal(int64(head.Grid.Columns)),
			"rows":    cty.NumberIntVal(int64(head.Grid.Rows)),
		},
	}
	var decoded fileSchema
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &decoded); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scenario %s: %s", name, diags.Error())
	}
	return build(&decoded, name)
}

func build(decoded *fileSchema, name string) (*Scenario, error) {
	gb := decoded.Grid
	s := &Scenario{
		Columns: gb.Columns,
		Rows:    gb.Rows,
	}
	if gb.Seed != nil {
		s.Seed = *gb.Seed
	}
	if len(gb.Start) > 0 {
		p, err := position(gb.Start, "start")
		if err != nil {
			return nil, err
		}
		s.Start = p
	}
	if decoded.Algorithm != nil {
		a, err := gridsim.ParseAlgorithm(*decoded.Algorithm)
		if err != nil {
			return nil, fmt.Errorf("%w: scenario %s: %v", grid.ErrInvalidConfiguration, name, err)
		}
		s.Algorithm = a
	}

	if gb.Tasks != nil && len(decoded.Tasks) > 0 {
		return nil, fmt.Errorf("%w: scenario %s sets both a task count and explicit task blocks", grid.ErrInvalidConfiguration, name)
	}
	if gb.Barriers != nil && len(decoded.Barriers) > 0 {
		return nil, fmt.Errorf("%w: scenario %s sets both a barrier count and explicit barrier blocks", grid.ErrInvalidConfiguration, name)
	}
	if gb.Tasks != nil {
		s.TaskCount = *gb.Tasks
	}
	if gb.Barriers != nil {
		s.BarrierCount = *gb.Barriers
	}

	for _, t := range decoded.Tasks {
		p, err := position(t.At, fmt.Sprintf("task %d", t.ID))
		if err != nil {
			return nil, err
		}
		s.Tasks = append(s.Tasks, PlacedTask{ID: grid.TaskID(t.ID), At: p})
	}
	for _, b := range decoded.Barriers {
		p, err := position(b.At, "barrier")
		if err != nil {
			return nil, err
		}
		s.Barriers = append(s.Barriers, p)
	}
	return s, nil
}

func position(at []int, what string) (grid.Position, error) {
	if len(at) != 2 {
		return grid.Position{}, fmt.Errorf("%w: %s position must be [col, row], got %v", grid.ErrInvalidConfiguration, what, at)
	}
	return grid.Position{Col: at[0], Row: at[1]}, nil
}

// Build turns the scenario into a ready-to-step simulation. Explicit
// placements go down first; random placements for the other kind are then
// drawn around them with the scenario seed.
func (s *Scenario) Build() (*gridsim.Simulation, error) {
	if len(s.Tasks) == 0 && len(s.Barriers) == 0 {
		return gridsim.New(gridsim.Config{
			Columns:      s.Columns,
			Rows:         s.Rows,
			TaskCount:    s.TaskCount,
			BarrierCount: s.BarrierCount,
			Seed:         s.Seed,
			Start:        s.Start,
			Algorithm:    s.Algorithm,
		})
	}

	g, err := grid.New(s.Columns, s.Rows)
	if err != nil {
		return nil, err
	}
	for _, t := range s.Tasks {
		if err := g.PlaceTask(t.At, t.ID); err != nil {
			return nil, err
		}
	}
	for _, b := range s.Barriers {
		if err := g.PlaceBarrier(b); err != nil {
			return nil, err
		}
	}

	rng := rand.New(rand.NewSource(s.Seed))
	exclude := map[grid.Position]struct{}{s.Start: {}}
	for _, t := range s.Tasks {
		exclude[t.At] = struct{}{}
	}
	for _, b := range s.Barriers {
		exclude[b] = struct{}{}
	}
	if s.TaskCount > 0 {
		cells, err := g.GenerateUniqueLocations(rng, s.TaskCount, exclude)
		if err != nil {
			return nil, err
		}
		for i, p := range cells {
			if err := g.PlaceTask(p, grid.TaskID(i+1)); err != nil {
				return nil, err
			}
			exclude[p] = struct{}{}
		}
	}
	if s.BarrierCount > 0 {
		cells, err := g.GenerateUniqueLocations(rng, s.BarrierCount, exclude)
		if err != nil {
			return nil, err
		}
		for _, p := range cells {
			if err := g.PlaceBarrier(p); err != nil {
				return nil, err
			}
			exclude[p] = struct{}{}
		}
	}
	return gridsim.NewFromGrid(g, s.Algorithm, s.Start)
}
