package canon

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/oddkernel/pkg/dag"
	"github.com/matzehuels/oddkernel/pkg/errors"
)

// Info is the canonical summary of one vertex.
type Info struct {
	Weight int    // edges in the unfolded subtree below the vertex
	Count  int    // occurrences represented by the vertex
	ID     string // canonical identity
}

// Tree is a canonicalized single-root DAG, ready to be folded into a Big DAG.
type Tree[V cmp.Ordered, L cmp.Ordered] struct {
	sequence []V
	info     map[V]Info
	children map[V][]V
	labels   map[V]L
	buckets  map[string][]V
}

// Canonicalize computes weights and identities for every vertex of d, which
// must have been ordered by [dag.Order].
//
// Vertices are visited in [dag.DAG.Sequence] order. Each vertex counts as one
// occurrence. Canonicalize returns INVALID_DAG if d is unordered or a child is
// reached after its parent, and MISSING_LABEL if a vertex has no label.
func Canonicalize[V cmp.Ordered, L cmp.Ordered](d *dag.DAG[V, L], id Identity) (*Tree[V, L], error) {
	if !id.valid() {
		return nil, errors.New(errors.ErrCodeInvalidIdentity, "unknown identity strategy %v", id)
	}
	if !d.Ordered() {
		return nil, errors.New(errors.ErrCodeInvalidDAG, "DAG must be ordered before canonicalization")
	}

	seq := d.Sequence()
	t := &Tree[V, L]{
		sequence: seq,
		info:     make(map[V]Info, len(seq)),
		children: make(map[V][]V, len(seq)),
		labels:   make(map[V]L, len(seq)),
		buckets:  make(map[string][]V),
	}

	for _, v := range seq {
		label, ok := d.Label(v)
		if !ok {
			return nil, errors.New(errors.ErrCodeMissingLabel, "vertex %v has no label", v)
		}
		name := fmt.Sprint(label)

		kids := d.Children(v)
		info := Info{Count: 1}
		if len(kids) == 0 {
			info.ID = id.leaf(name)
		} else {
			ids := make([]string, len(kids))
			for i, c := range kids {
				ci, ok := t.info[c]
				if !ok {
					return nil, errors.New(errors.ErrCodeInvalidDAG, "child %v of %v is not visited before its parent", c, v)
				}
				info.Weight += 1 + ci.Weight
				ids[i] = ci.ID
			}
			info.ID = id.node(name, ids)
		}

		t.info[v] = info
		t.children[v] = slices.Clone(kids)
		t.labels[v] = label
		t.buckets[info.ID] = append(t.buckets[info.ID], v)
	}
	return t, nil
}

// Assemble builds a Tree from precomputed parts. The sequence must list every
// child before its parents; info must hold an entry per vertex.
// Assemble is used to re-fold an existing Big DAG and performs no checks.
func Assemble[V cmp.Ordered, L cmp.Ordered](sequence []V, children map[V][]V, labels map[V]L, info map[V]Info) *Tree[V, L] {
	t := &Tree[V, L]{
		sequence: slices.Clone(sequence),
		info:     maps.Clone(info),
		children: make(map[V][]V, len(children)),
		labels:   maps.Clone(labels),
		buckets:  make(map[string][]V),
	}
	for v, kids := range children {
		t.children[v] = slices.Clone(kids)
	}
	for _, v := range t.sequence {
		id := t.info[v].ID
		t.buckets[id] = append(t.buckets[id], v)
	}
	return t
}

// Sequence returns the vertices with every child before its parents.
// The returned slice should not be modified.
func (t *Tree[V, L]) Sequence() []V { return t.sequence }

// Len returns the number of vertices.
func (t *Tree[V, L]) Len() int { return len(t.sequence) }

// Info returns the canonical summary of v.
func (t *Tree[V, L]) Info(v V) (Info, bool) {
	i, ok := t.info[v]
	return i, ok
}

// Children returns the children of v in canonical order.
func (t *Tree[V, L]) Children(v V) []V { return t.children[v] }

// Label returns the label of v.
func (t *Tree[V, L]) Label(v V) (L, bool) {
	l, ok := t.labels[v]
	return l, ok
}

// Bucket returns the vertices sharing identity id, in sequence order.
func (t *Tree[V, L]) Bucket(id string) []V { return t.buckets[id] }

// Identities returns the distinct identities in ascending order.
func (t *Tree[V, L]) Identities() []string {
	return slices.Sorted(maps.Keys(t.buckets))
}
