package kernel

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/oddkernel/pkg/bigdag"
	"github.com/matzehuels/oddkernel/pkg/canon"
	"github.com/matzehuels/oddkernel/pkg/dag"
	"github.com/matzehuels/oddkernel/pkg/graph"
)

// Options configures a kernel computation.
type Options struct {
	// MaxHeight bounds the BFS depth of every rooted DAG.
	// Use dag.Unbounded for no bound.
	MaxHeight int

	// Identity selects how subtree identities are rendered.
	Identity canon.Identity
}

// DefaultOptions returns unbounded height with string identities.
func DefaultOptions() Options {
	return Options{MaxHeight: dag.Unbounded, Identity: canon.StringIdentity}
}

// Validate checks the height bound.
func (o Options) Validate() error {
	return dag.ValidateHeight(o.MaxHeight)
}

// Append folds g into the vector-mode Big DAG global as one new source.
//
// Every vertex of g, in ascending order, contributes its canonical rooted DAG
// to a merge-mode Big DAG for g alone, which is then folded into global.
func Append[V cmp.Ordered, L cmp.Ordered](global *bigdag.BigDAG[L], g graph.Graph[V, L], opts Options) error {
	local := bigdag.New[L](bigdag.Merge)
	for _, v := range slices.Sorted(slices.Values(g.Vertices())) {
		d, err := dag.Extract(g, v, opts.MaxHeight)
		if err != nil {
			return err
		}
		if err := dag.Order(d); err != nil {
			return fmt.Errorf("root %v: %w", v, err)
		}
		tree, err := canon.Canonicalize(d, opts.Identity)
		if err != nil {
			return fmt.Errorf("root %v: %w", v, err)
		}
		if err := bigdag.Fold(local, tree); err != nil {
			return fmt.Errorf("root %v: %w", v, err)
		}
	}

	tree, err := local.Tree()
	if err != nil {
		return err
	}
	return bigdag.Fold(global, tree)
}

// Build folds every graph, in order, into a new vector-mode Big DAG.
// Source i of the result is graphs[i].
func Build[V cmp.Ordered, L cmp.Ordered](graphs []graph.Graph[V, L], opts Options) (*bigdag.BigDAG[L], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b := bigdag.New[L](bigdag.Vector)
	for i, g := range graphs {
		if err := Append(b, g, opts); err != nil {
			return nil, fmt.Errorf("graph %d: %w", i, err)
		}
	}
	return b, nil
}

// Compute returns the kernel matrix of x against itself when y is nil, or
// the len(y)×len(x) matrix of y against x otherwise.
func Compute[V cmp.Ordered, L cmp.Ordered](x, y []graph.Graph[V, L], opts Options) (*Matrix, error) {
	if y == nil {
		b, err := Build(x, opts)
		if err != nil {
			return nil, err
		}
		return ReduceSelf(b, len(x))
	}

	all := make([]graph.Graph[V, L], 0, len(x)+len(y))
	all = append(all, x...)
	all = append(all, y...)
	b, err := Build(all, opts)
	if err != nil {
		return nil, err
	}
	return ReduceCross(b, len(x), len(y))
}

// KernelMatrix is Compute with height h and string identities.
func KernelMatrix[V cmp.Ordered, L cmp.Ordered](x, y []graph.Graph[V, L], h int) (*Matrix, error) {
	return Compute(x, y, Options{MaxHeight: h, Identity: canon.StringIdentity})
}

// Pairwise returns the kernel value between a and b.
func Pairwise[V cmp.Ordered, L cmp.Ordered](a, b graph.Graph[V, L], h int) (float64, error) {
	m, err := KernelMatrix([]graph.Graph[V, L]{a}, []graph.Graph[V, L]{b}, h)
	if err != nil {
		return 0, err
	}
	return m.At(0, 0), nil
}
