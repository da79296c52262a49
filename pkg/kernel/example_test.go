package kernel_test

import (
	"fmt"

	"github.com/matzehuels/oddkernel/pkg/dag"
	"github.com/matzehuels/oddkernel/pkg/graph"
	"github.com/matzehuels/oddkernel/pkg/kernel"
)

func pair(a, b string) *graph.Labeled[int, string] {
	g := graph.New[int, string](false)
	g.AddVertex(0, a)
	g.AddVertex(1, b)
	g.AddEdge(0, 1)
	return g
}

func ExamplePairwise() {
	g := pair("a", "b")
	k, err := kernel.Pairwise[int, string](g, g, dag.Unbounded)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(k)
	// Output: 2
}

func ExampleKernelMatrix() {
	graphs := []graph.Graph[int, string]{pair("a", "b"), pair("a", "a")}
	m, err := kernel.KernelMatrix(graphs, nil, 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	for i := 0; i < m.Rows(); i++ {
		fmt.Println(m.Row(i))
	}
	// Output:
	// [2 0]
	// [0 4]
}
