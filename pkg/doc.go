// Package pkg provides the libraries behind oddkernel, an implementation of
// the ODD-STh subtree kernel for labeled graphs.
//
// # Overview
//
// A graph kernel scores the similarity of two graphs. ODD-STh decomposes every
// graph into the rooted DAGs seen from each of its vertices, serializes their
// subtrees canonically, and counts the subtrees two graphs share, weighting
// deeper subtrees higher. The pkg directory is organized as:
//
//  1. [graph] - Labeled graph interface, in-memory graphs, JSON collections
//  2. [dag] - Bounded-height rooted DAG extraction and canonical ordering
//  3. [canon] - Canonical subtree identities and depth weights
//  4. [bigdag] - The shared, deduplicated DAG of every subtree in a collection
//  5. [kernel] - Kernel matrix reduction and the Pairwise/KernelMatrix entry points
//  6. [pipeline] - Orchestration (load → build → reduce) with caching
//  7. [cache], [observability], [render] - Infrastructure around the pipeline
//
// # Architecture
//
// The data flow for one kernel computation:
//
//	JSON graph collection
//	         ↓
//	    [graph] package (labeled graphs)
//	         ↓
//	    [dag] package (one ordered DAG per vertex)
//	         ↓
//	    [canon] package (subtree identities and weights)
//	         ↓
//	    [bigdag] package (per-graph merge, then global fold)
//	         ↓
//	    [kernel] package (Σ f_i · f_j · C over shared nodes)
//	         ↓
//	    kernel matrix
//
// # Quick Start
//
// Compute the kernel matrix of a collection:
//
//	import (
//	    "github.com/matzehuels/oddkernel/pkg/dag"
//	    "github.com/matzehuels/oddkernel/pkg/graph"
//	    "github.com/matzehuels/oddkernel/pkg/kernel"
//	)
//
//	named, _ := graph.ImportCollection("graphs.json")
//	graphs := make([]graph.Graph[int, string], len(named))
//	for i, n := range named {
//	    graphs[i] = n.Graph
//	}
//	m, _ := kernel.KernelMatrix(graphs, nil, dag.Unbounded)
//
// Or run the cached pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{XPath: "graphs.json", Height: 3})
//
// # Concurrency
//
// The core packages (graph, dag, canon, bigdag, kernel) are synchronous and
// keep no global state; separate computations may run in parallel on separate
// inputs. A single Big DAG must not be folded into concurrently.
package pkg
