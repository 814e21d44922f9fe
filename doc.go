// Package gridsim simulates an agent clearing tasks from a bounded 2-D
// grid with static barriers.
//
// It exposes two main entry points:
//
//   - Simulation: configure a run, pick A* or IDA*, and drive it one Step
//     at a time from a UI loop or batch runner.
//   - Snapshot: a point-in-time copy of the map and agent state for
//     rendering or assertions.
//
// The agent repeatedly selects the nearest reachable task (greedy,
// re-queried against the live task set on every idle cycle), follows the
// computed shortest path one cell per step, and retires tasks on arrival.
// Shortest paths come from the search subpackage, which is generic over the
// graph node type.
package gridsim
