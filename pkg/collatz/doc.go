// Package collatz builds and queries a merged graph of generalized Collatz
// trajectories.
//
// Every observed integer is a node. Repeated application of a deterministic
// reduction (the down-step) links each node to its successor until the chain
// joins structure that already exists, so the graph is a tree rooted at 1.
// The graph grows in two directions: GenerateDown and GenerateFillDown extend
// it toward the root from arbitrary values, GenerateUp extends it away from
// the root by enumerating predecessors (the up-step).
//
// Four reduction variants are supported. Full and Short work on every
// positive integer; Odd only on odd values; Compact only on values coprime
// to 6. A Graph is created for one variant and keeps it for its lifetime.
//
// A Graph is not safe for concurrent use. Callers that need concurrent
// access serialize it themselves, or use one Graph per goroutine.
package collatz
