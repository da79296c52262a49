// Package bigdag merges canonical single-root DAGs into one deduplicated
// "Big DAG".
//
// # Overview
//
// Every distinct canonical identity produced by package canon gets exactly one
// node in a [BigDAG]. Folding a [canon.Tree] with [Fold] either adds to the
// frequency of an existing node or appends a new node whose children are the
// global indices of its child identities. Because trees list children before
// parents, a node's children always exist by the time it is appended.
//
// # Frequency Modes
//
// A Big DAG is created in one of two modes:
//
//   - [Merge] keeps a single occurrence count per node. Used to merge all
//     rooted DAGs of one graph.
//   - [Vector] keeps one count per folded tree (a "source"). Each fold opens a
//     new slot on every node, so all vectors have the same length and slot i
//     belongs to the i-th folded tree.
//
// The kernel builds one merge-mode Big DAG per graph, then folds each of them,
// viewed through [BigDAG.Tree], into a global vector-mode Big DAG where slot i
// is graph i.
//
// # Lifecycle
//
// A Big DAG lives for one kernel computation. It is not safe for concurrent
// use and is never persisted.
package bigdag
