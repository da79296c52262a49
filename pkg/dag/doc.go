// Package dag extracts and orders the bounded-depth rooted DAGs that the
// subtree kernel is built from.
//
// # Overview
//
// The ODD-STh kernel compares graphs by the rooted subtrees that occur in
// them. For every vertex of a graph, [Extract] runs a breadth-first visit from
// that vertex and keeps only the edges that point one level deeper, producing a
// single-root DAG. [Order] then gives the DAG a canonical topological order so
// that isomorphic fragments are serialized identically by package canon.
//
// # Extraction
//
// Extraction records the BFS level of every discovered vertex. An edge u → n
// is kept when n is new (it is discovered at level(u)+1) or when n was already
// discovered at level(u)+1 by another parent. Edges to shallower vertices are
// dropped, which keeps levels monotone along every edge and rules out cycles:
//
//	d, err := dag.Extract[int, string](g, root, 3)
//
// A height bound h stops expansion of vertices at level h. Pass [Unbounded]
// to explore the whole connected component; any other h ≤ 0 is rejected with
// an INVALID_HEIGHT error before the traversal starts.
//
// # Canonical Order
//
// [Order] runs Kahn's algorithm. Among vertices whose in-degree has dropped to
// zero, the one with the smallest label is removed next; equal labels fall back
// to the smaller vertex identifier so the order is fully deterministic. Ranks
// count down from the vertex count, so the root gets the highest rank and the
// deepest leaves the lowest. Afterwards every child list is sorted by
// (rank, label) ascending.
//
// Because a child is always removed after its parent, ascending rank visits
// every child before any of its parents. [DAG.Sequence] returns vertices in
// that order.
//
// Order rejects edges whose endpoints are outside the vertex set and cycles
// with INVALID_DAG, and vertices without a label with MISSING_LABEL. Both
// indicate a bug in whatever built the DAG rather than bad user input.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. They are cheap, built per
// root and discarded once canonicalized.
package dag
