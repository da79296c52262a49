// Package kernel computes the ODD-STh subtree kernel between labeled graphs.
//
// # Overview
//
// The kernel value of two graphs is the depth-weighted number of rooted
// subtrees they share. For every vertex of every graph, a bounded-depth rooted
// DAG is extracted and canonicalized (packages dag and canon). All of them are
// merged into one deduplicated Big DAG (package bigdag) that records, per
// distinct subtree, how often it occurs in each graph. The kernel is then an
// inner product over the Big DAG:
//
//	K[i][j] = Σ f_i(v) · f_j(v) · C(v)
//
// where f_i(v) is the frequency of node v in graph i and C(v) its depth
// weight. Leaves have weight zero and never contribute.
//
// # Entry Points
//
// [Pairwise] compares two graphs. [KernelMatrix] compares a collection with
// itself (self mode, symmetric nx×nx result) or with a second collection
// (cross mode, ny×nx result whose rows are the second collection):
//
//	m, err := kernel.KernelMatrix[int, string](graphs, nil, 3)
//
// [Compute] accepts full [Options]; [Build] and the Reduce functions expose
// the two phases separately for callers that want to inspect the Big DAG.
//
// # Height
//
// The height bound limits how many BFS levels below each root are explored.
// Use [dag.Unbounded] for no bound. Any other height below one is rejected
// with INVALID_HEIGHT before work starts.
//
// # Construction Order
//
// Each graph is first reduced to its own merge-mode Big DAG by folding the
// canonical DAGs of its vertices in ascending vertex order. That per-graph Big
// DAG is then folded into the global vector-mode Big DAG, so slot i of every
// frequency vector is graph i. Graphs are folded in input order; for cross
// mode the first collection precedes the second.
//
// # Concurrency
//
// Computations are synchronous and share no state. Separate calls may run in
// parallel on different inputs.
package kernel
