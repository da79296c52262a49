// Package graph provides the labeled host graphs that kernels are computed over.
//
// # Overview
//
// The kernel core only needs three things from a graph: its vertices, the
// neighbors of a vertex, and the label of a vertex. [Graph] captures exactly
// that contract, generic over an ordered vertex type V and an ordered label
// type L. Any type with those three methods can be fed to the kernel.
//
// [Labeled] is the in-memory implementation used by the pipeline and tests:
//
//	g := graph.New[int, string](false)
//	g.AddVertex(0, "C")
//	g.AddVertex(1, "O")
//	g.AddEdge(0, 1)
//
// Undirected graphs (directed == false) store every edge in both directions.
// Neighbors are returned in insertion order; [Labeled.Vertices] returns vertices
// in ascending order.
//
// # Collections
//
// Kernel matrices are computed over collections of graphs. [ReadCollection]
// and [ImportCollection] decode a JSON collection file:
//
//	{
//	  "graphs": [
//	    {
//	      "name": "g0",
//	      "directed": false,
//	      "vertices": [{"id": 0, "label": "a"}, {"id": 1, "label": "b"}],
//	      "edges": [[0, 1]]
//	    }
//	  ]
//	}
//
// Vertex IDs are integers and labels are strings; labels therefore compare
// lexicographically when the kernel breaks ordering ties. [WriteCollection]
// and [ExportCollection] produce the same format for round trips.
//
// # Concurrency
//
// A Labeled graph is not safe for concurrent modification. Once built it may be
// read from multiple goroutines, which is how independent kernel evaluations
// can share input graphs.
package graph
