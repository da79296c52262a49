package dag

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/oddkernel/pkg/errors"
	"github.com/matzehuels/oddkernel/pkg/graph"
)

// Unbounded disables the height bound of [Extract].
const Unbounded = -1

// DAG is a single-root directed acyclic graph over vertices of a host graph.
//
// The zero value is not usable - use [Extract] or [New] to create one.
// Rank information is only available after [Order] succeeds.
type DAG[V cmp.Ordered, L cmp.Ordered] struct {
	root     V
	vertices []V       // ascending
	levels   map[V]int // BFS level, only set by Extract
	edges    map[V][]V // vertex -> children
	labels   map[V]L   // vertex -> label
	rank     map[V]int // vertex -> canonical rank, nil until ordered
}

// New creates a DAG from an explicit vertex set, edge map and label map.
// The inputs are copied; they are not validated until [Order] runs.
// DAGs created with New have no root or level information.
func New[V cmp.Ordered, L cmp.Ordered](vertices []V, edges map[V][]V, labels map[V]L) *DAG[V, L] {
	d := &DAG[V, L]{
		vertices: slices.Sorted(slices.Values(vertices)),
		levels:   make(map[V]int),
		edges:    make(map[V][]V, len(edges)),
		labels:   maps.Clone(labels),
	}
	if d.labels == nil {
		d.labels = make(map[V]L)
	}
	for v, children := range edges {
		d.edges[v] = slices.Clone(children)
	}
	return d
}

// ValidateHeight checks a height bound for [Extract].
// The bound must be a positive integer or [Unbounded].
func ValidateHeight(h int) error {
	if h != Unbounded && h <= 0 {
		return errors.New(errors.ErrCodeInvalidHeight, "height must be a positive integer or unbounded, got %d", h)
	}
	return nil
}

// Extract builds the rooted DAG of g seen from root by a breadth-first visit
// bounded by h levels.
//
// Every vertex is visited once, at its minimum discovery level. An edge u → n
// is kept if n is newly discovered or was already discovered at a level of at
// least level(u)+1; such a vertex gains an extra parent but is not re-enqueued,
// so its own subtree is unaffected. Vertices at level h are recorded but not
// expanded. Labels are copied from g; vertices without a label are left
// unlabeled and later rejected by [Order].
func Extract[V cmp.Ordered, L cmp.Ordered](g graph.Graph[V, L], root V, h int) (*DAG[V, L], error) {
	if err := ValidateHeight(h); err != nil {
		return nil, err
	}

	levels := map[V]int{root: 0}
	edges := make(map[V][]V)
	queue := []V{root}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		level := levels[u]
		if level == h {
			break
		}

		children := edges[u]
		for _, n := range g.Neighbors(u) {
			seen, ok := levels[n]
			switch {
			case !ok:
				levels[n] = level + 1
				queue = append(queue, n)
				children = append(children, n)
			case seen >= level+1:
				children = append(children, n)
			}
		}
		edges[u] = children
	}

	d := &DAG[V, L]{
		root:     root,
		vertices: slices.Sorted(maps.Keys(levels)),
		levels:   levels,
		edges:    edges,
		labels:   make(map[V]L, len(levels)),
	}
	for v := range levels {
		if l, ok := g.Label(v); ok {
			d.labels[v] = l
		}
	}
	return d, nil
}

// Root returns the vertex the DAG was extracted from.
// DAGs built with [New] return the zero value.
func (d *DAG[V, L]) Root() V { return d.root }

// Vertices returns all vertices in ascending order.
// The returned slice should not be modified.
func (d *DAG[V, L]) Vertices() []V { return d.vertices }

// VertexCount returns the number of vertices.
func (d *DAG[V, L]) VertexCount() int { return len(d.vertices) }

// EdgeCount returns the number of edges, counting repeated edges.
func (d *DAG[V, L]) EdgeCount() int {
	n := 0
	for _, children := range d.edges {
		n += len(children)
	}
	return n
}

// Children returns the children of v. After [Order] they are sorted by
// (rank, label). The returned slice should not be modified.
func (d *DAG[V, L]) Children(v V) []V { return d.edges[v] }

// Label returns the label of v and whether it has one.
func (d *DAG[V, L]) Label(v V) (L, bool) {
	l, ok := d.labels[v]
	return l, ok
}

// Labels returns the label map. It should not be modified.
func (d *DAG[V, L]) Labels() map[V]L { return d.labels }

// Level returns the BFS level at which v was discovered by [Extract].
func (d *DAG[V, L]) Level(v V) (int, bool) {
	l, ok := d.levels[v]
	return l, ok
}

// Height returns the largest BFS level recorded by [Extract].
func (d *DAG[V, L]) Height() int {
	h := 0
	for _, l := range d.levels {
		h = max(h, l)
	}
	return h
}

// Ordered reports whether [Order] has assigned ranks.
func (d *DAG[V, L]) Ordered() bool { return d.rank != nil }

// Rank returns the canonical rank of v, or false before [Order] has run.
func (d *DAG[V, L]) Rank(v V) (int, bool) {
	r, ok := d.rank[v]
	return r, ok
}

// Sequence returns the vertices sorted by (rank, label) ascending, which
// places every child before all of its parents. Returns nil before [Order].
func (d *DAG[V, L]) Sequence() []V {
	if d.rank == nil {
		return nil
	}
	seq := slices.Clone(d.vertices)
	slices.SortFunc(seq, d.compareRank)
	return seq
}

func (d *DAG[V, L]) compareRank(a, b V) int {
	return cmp.Or(
		cmp.Compare(d.rank[a], d.rank[b]),
		cmp.Compare(d.labels[a], d.labels[b]),
	)
}

func (d *DAG[V, L]) compareLabel(a, b V) int {
	return cmp.Or(
		cmp.Compare(d.labels[a], d.labels[b]),
		cmp.Compare(a, b),
	)
}
