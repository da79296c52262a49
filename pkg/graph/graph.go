package graph

import (
	"cmp"
	"errors"
	"slices"
)

var (
	// ErrDuplicateVertex is returned by [Labeled.AddVertex] when the vertex
	// already exists. Vertices must be unique within a graph.
	ErrDuplicateVertex = errors.New("duplicate vertex")

	// ErrUnknownVertex is returned by [Labeled.AddEdge] when either endpoint
	// has not been added.
	ErrUnknownVertex = errors.New("unknown vertex")
)

// Graph is the read-only view of a labeled graph consumed by the kernel.
// Implementations must be stable and side-effect free while a kernel is
// being computed.
type Graph[V cmp.Ordered, L cmp.Ordered] interface {
	// Vertices enumerates all vertices of the graph.
	Vertices() []V
	// Neighbors enumerates the vertices adjacent to v (successors for
	// directed graphs). Unknown vertices have no neighbors.
	Neighbors(v V) []V
	// Label returns the label of v and whether v has one.
	Label(v V) (L, bool)
}

// Labeled is an adjacency-list graph with one label per vertex.
//
// The zero value is not usable - use New to create a valid instance.
type Labeled[V cmp.Ordered, L cmp.Ordered] struct {
	directed bool
	labels   map[V]L
	adj      map[V][]V
	edges    [][2]V
}

// New creates an empty graph. Undirected graphs store each edge in both
// directions so that Neighbors is symmetric.
func New[V cmp.Ordered, L cmp.Ordered](directed bool) *Labeled[V, L] {
	return &Labeled[V, L]{
		directed: directed,
		labels:   make(map[V]L),
		adj:      make(map[V][]V),
	}
}

// AddVertex adds v with the given label.
// Returns ErrDuplicateVertex if v already exists.
func (g *Labeled[V, L]) AddVertex(v V, label L) error {
	if _, exists := g.labels[v]; exists {
		return ErrDuplicateVertex
	}
	g.labels[v] = label
	return nil
}

// AddEdge connects u to w. For undirected graphs w is also connected to u,
// except for self-loops which are stored once.
// Returns ErrUnknownVertex if either endpoint does not exist.
func (g *Labeled[V, L]) AddEdge(u, w V) error {
	if _, ok := g.labels[u]; !ok {
		return ErrUnknownVertex
	}
	if _, ok := g.labels[w]; !ok {
		return ErrUnknownVertex
	}
	g.adj[u] = append(g.adj[u], w)
	if !g.directed && u != w {
		g.adj[w] = append(g.adj[w], u)
	}
	g.edges = append(g.edges, [2]V{u, w})
	return nil
}

// Directed reports whether edges are one-way.
func (g *Labeled[V, L]) Directed() bool { return g.directed }

// Vertices returns all vertices in ascending order.
func (g *Labeled[V, L]) Vertices() []V {
	vs := make([]V, 0, len(g.labels))
	for v := range g.labels {
		vs = append(vs, v)
	}
	slices.Sort(vs)
	return vs
}

// Neighbors returns the vertices adjacent to v in insertion order.
// The returned slice should not be modified.
func (g *Labeled[V, L]) Neighbors(v V) []V { return g.adj[v] }

// Label returns the label of v.
func (g *Labeled[V, L]) Label(v V) (L, bool) {
	l, ok := g.labels[v]
	return l, ok
}

// VertexCount returns the number of vertices.
func (g *Labeled[V, L]) VertexCount() int { return len(g.labels) }

// EdgeCount returns the number of edges added, counting each undirected
// edge once.
func (g *Labeled[V, L]) EdgeCount() int { return len(g.edges) }

// Edges returns a copy of the edges in insertion order, each undirected
// edge listed once as it was added.
func (g *Labeled[V, L]) Edges() [][2]V { return slices.Clone(g.edges) }

// Ensure Labeled implements Graph.
var _ Graph[int, string] = (*Labeled[int, string])(nil)
