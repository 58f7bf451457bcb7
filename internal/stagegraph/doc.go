// Package stagegraph orders named pipeline stages by their declared
// after/before edges.
//
// Stages never run concurrently with each other: Finalize produces a single
// flattened topological order, and TopoGroups is a diagnostic view of the
// same graph grouped by dependency depth.
package stagegraph
