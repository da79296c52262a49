package bigdag

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/oddkernel/pkg/canon"
	"github.com/matzehuels/oddkernel/pkg/dag"
	"github.com/matzehuels/oddkernel/pkg/errors"
)

// Node is one distinct canonical subtree.
type Node[L cmp.Ordered] struct {
	Index    int       // position in the Big DAG, stable once assigned
	Label    L         // label of the subtree root
	Weight   int       // depth weight of the subtree
	ID       string    // canonical identity
	Children []int     // indices of distinct child nodes
	Freq     Frequency // occurrences
}

// BigDAG is a deduplicated union of canonical trees.
type BigDAG[L cmp.Ordered] struct {
	mode    Mode
	nodes   []*Node[L]
	index   map[string]int
	sources int
}

// Stats summarizes the shape of a Big DAG.
type Stats struct {
	Nodes     int
	Edges     int
	Leaves    int
	Sources   int
	MaxWeight int
}

// New creates an empty Big DAG accumulating frequencies in the given mode.
func New[L cmp.Ordered](mode Mode) *BigDAG[L] {
	return &BigDAG[L]{mode: mode, index: make(map[string]int)}
}

// Fold merges t into b.
//
// Each vertex of t either adds its count to the node holding its identity or
// becomes a new node. In vector mode the fold opens a new source slot on every
// node first. Fold returns INVALID_DAG if a vertex of t has no summary or a
// child identity is neither in b nor earlier in t, and MISSING_LABEL if a
// vertex has no label. On error b is left unchanged.
func Fold[V cmp.Ordered, L cmp.Ordered](b *BigDAG[L], t *canon.Tree[V, L]) error {
	if err := check(b, t); err != nil {
		return err
	}

	b.sources++
	if b.mode == Vector {
		for _, n := range b.nodes {
			n.Freq.extend()
		}
	}

	for _, v := range t.Sequence() {
		info, _ := t.Info(v)
		if idx, ok := b.index[info.ID]; ok {
			b.nodes[idx].Freq.add(info.Count)
			continue
		}

		label, _ := t.Label(v)
		kids := t.Children(v)
		children := make([]int, 0, len(kids))
		for _, c := range kids {
			ci, _ := t.Info(c)
			idx := b.index[ci.ID]
			if !slices.Contains(children, idx) {
				children = append(children, idx)
			}
		}

		n := &Node[L]{
			Index:    len(b.nodes),
			Label:    label,
			Weight:   info.Weight,
			ID:       info.ID,
			Children: children,
			Freq:     newFrequency(b.mode, b.sources, info.Count),
		}
		b.nodes = append(b.nodes, n)
		b.index[info.ID] = n.Index
	}
	return nil
}

// check validates t against b without modifying either.
func check[V cmp.Ordered, L cmp.Ordered](b *BigDAG[L], t *canon.Tree[V, L]) error {
	known := make(map[string]bool)
	for _, v := range t.Sequence() {
		info, ok := t.Info(v)
		if !ok {
			return errors.New(errors.ErrCodeInvalidDAG, "vertex %v has no canonical summary", v)
		}
		if _, ok := t.Label(v); !ok {
			return errors.New(errors.ErrCodeMissingLabel, "vertex %v has no label", v)
		}
		for _, c := range t.Children(v) {
			ci, ok := t.Info(c)
			if !ok {
				return errors.New(errors.ErrCodeInvalidDAG, "child %v of %v has no canonical summary", c, v)
			}
			if _, ok := b.index[ci.ID]; !ok && !known[ci.ID] {
				return errors.New(errors.ErrCodeInvalidDAG, "child %v of %v is folded after its parent", c, v)
			}
		}
		known[info.ID] = true
	}
	return nil
}

// Tree returns b as a canonical tree over node indices so it can be folded
// into another Big DAG. Nodes keep their identities and weights; each node
// carries its total frequency as count. Tree returns INVALID_DAG if the node
// edges contain a cycle.
func (b *BigDAG[L]) Tree() (*canon.Tree[int, L], error) {
	vertices := make([]int, len(b.nodes))
	edges := make(map[int][]int, len(b.nodes))
	labels := make(map[int]L, len(b.nodes))
	info := make(map[int]canon.Info, len(b.nodes))
	for i, n := range b.nodes {
		vertices[i] = i
		edges[i] = n.Children
		labels[i] = n.Label
		info[i] = canon.Info{Weight: n.Weight, Count: n.Freq.Total(), ID: n.ID}
	}

	d := dag.New(vertices, edges, labels)
	if err := dag.Order(d); err != nil {
		return nil, fmt.Errorf("order big dag: %w", err)
	}

	children := make(map[int][]int, len(b.nodes))
	for _, v := range vertices {
		children[v] = d.Children(v)
	}
	return canon.Assemble(d.Sequence(), children, labels, info), nil
}

// Mode returns the frequency mode.
func (b *BigDAG[L]) Mode() Mode { return b.mode }

// Len returns the number of nodes.
func (b *BigDAG[L]) Len() int { return len(b.nodes) }

// Sources returns the number of trees folded so far.
func (b *BigDAG[L]) Sources() int { return b.sources }

// Node returns the node at index i, or nil if out of range.
// The node should not be modified.
func (b *BigDAG[L]) Node(i int) *Node[L] {
	if i < 0 || i >= len(b.nodes) {
		return nil
	}
	return b.nodes[i]
}

// Nodes returns all nodes in index order. Children always have lower
// indices than their parents. The nodes should not be modified.
func (b *BigDAG[L]) Nodes() []*Node[L] { return b.nodes }

// Lookup returns the index of the node with the given identity.
func (b *BigDAG[L]) Lookup(id string) (int, bool) {
	i, ok := b.index[id]
	return i, ok
}

// EdgeCount returns the number of node-to-child edges.
func (b *BigDAG[L]) EdgeCount() int {
	n := 0
	for _, node := range b.nodes {
		n += len(node.Children)
	}
	return n
}

// Stats returns summary counts for b.
func (b *BigDAG[L]) Stats() Stats {
	s := Stats{Nodes: len(b.nodes), Sources: b.sources}
	for _, n := range b.nodes {
		s.Edges += len(n.Children)
		if len(n.Children) == 0 {
			s.Leaves++
		}
		s.MaxWeight = max(s.MaxWeight, n.Weight)
	}
	return s
}
