// Package render draws Big DAGs as Graphviz diagrams.
//
// # Overview
//
// A Big DAG is easier to reason about when you can see which subtrees two
// graphs share. [ToDOT] emits one box per distinct subtree, labeled with the
// subtree root label, and one arrow per node-to-child edge. Nodes are laid out
// top to bottom, so roots of large subtrees appear above their parts.
//
//	dot := render.ToDOT(b, render.Options{Detailed: true})
//	svg, err := render.SVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include depth weight and frequencies
//   - MaxNodes: emit only the first nodes by index (children precede
//     parents, so the cut keeps the smallest subtrees)
//
// Leaves (weight zero) are drawn in grey since they never contribute to the
// kernel value.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. No external Graphviz installation is needed.
package render
