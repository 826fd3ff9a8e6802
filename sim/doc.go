// Package sim provides the core agent-based epidemic simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - model.go: Model construction, the daily time step, and read-only telemetry
//   - network.go: the daily random contact network built from the template
//   - transmit.go: infection bookkeeping and propagation over the network
//
// # Storage
//
// Every store is sized once in NewModel and recycled afterwards:
//   - InteractionArena: ring buffer of contact records, refuses to overwrite a
//     record still inside the rolling window of days_of_interactions
//   - EventArena: monotonic pool of infection events, fails when exhausted
//   - InteractionTemplate: the immutable multiset each day's pairing is drawn from
//
// Individuals and per-day infection lists hold int32 handles into the arenas,
// never the records themselves.
//
// # Randomness
//
// All randomness flows through a PartitionedRNG passed to NewModel. The
// network shuffle and the seed-infection draws use separate subsystem
// streams, so a run is fully determined by its SimulationKey and parameters.
//
// Sub-packages:
//   - sim/trace/: per-infection trace recording
//   - sim/output/: time-series export (CSV, SQLite)
package sim
