package dag

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/oddkernel/pkg/errors"
)

// Order assigns canonical ranks to the vertices of d and sorts every child
// list by (rank, label) ascending.
//
// Ranks are assigned by Kahn's algorithm counting down from the vertex count:
// the zero in-degree vertex with the smallest (label, vertex) is removed next
// and receives the next rank. Every vertex removed earlier therefore holds a
// strictly higher rank, and every child a lower rank than each of its parents.
//
// Order returns INVALID_DAG if an edge references a vertex outside the vertex
// set or the edges contain a cycle, and MISSING_LABEL if a vertex has no
// label. On error d is left unchanged. Calling Order again recomputes the same
// ranks.
func Order[V cmp.Ordered, L cmp.Ordered](d *DAG[V, L]) error {
	indegree := make(map[V]int, len(d.vertices))
	for _, v := range d.vertices {
		if _, ok := d.labels[v]; !ok {
			return errors.New(errors.ErrCodeMissingLabel, "vertex %v has no label", v)
		}
		indegree[v] = 0
	}

	for _, u := range slices.Sorted(maps.Keys(d.edges)) {
		if _, ok := indegree[u]; !ok {
			return errors.New(errors.ErrCodeInvalidDAG, "edge source %v is not in the vertex set", u)
		}
		for _, c := range d.edges[u] {
			if _, ok := indegree[c]; !ok {
				return errors.New(errors.ErrCodeInvalidDAG, "edge %v->%v targets a vertex outside the vertex set", u, c)
			}
		}
	}
	for _, children := range d.edges {
		for _, c := range children {
			indegree[c]++
		}
	}

	var frontier []V
	for _, v := range d.vertices {
		if indegree[v] == 0 {
			frontier = append(frontier, v)
		}
	}

	rank := make(map[V]int, len(d.vertices))
	next := len(d.vertices)
	for len(frontier) > 0 {
		i := 0
		for j := 1; j < len(frontier); j++ {
			if d.compareLabel(frontier[j], frontier[i]) < 0 {
				i = j
			}
		}
		v := frontier[i]
		frontier = slices.Delete(frontier, i, i+1)

		rank[v] = next
		next--
		for _, c := range d.edges[v] {
			indegree[c]--
			if indegree[c] == 0 {
				frontier = append(frontier, c)
			}
		}
	}

	if len(rank) != len(d.vertices) {
		return errors.New(errors.ErrCodeInvalidDAG, "edges contain a cycle through %d vertices", len(d.vertices)-len(rank))
	}

	d.rank = rank
	for _, children := range d.edges {
		slices.SortStableFunc(children, d.compareRank)
	}
	return nil
}
