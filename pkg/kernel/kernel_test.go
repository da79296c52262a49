package kernel

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/oddkernel/pkg/bigdag"
	"github.com/matzehuels/oddkernel/pkg/canon"
	"github.com/matzehuels/oddkernel/pkg/dag"
	"github.com/matzehuels/oddkernel/pkg/errors"
	"github.com/matzehuels/oddkernel/pkg/graph"
)

type labeledGraph = graph.Graph[int, string]

func build(labels []string, edges [][2]int) *graph.Labeled[int, string] {
	g := graph.New[int, string](false)
	for i, l := range labels {
		g.AddVertex(i, l)
	}
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

func graphA() *graph.Labeled[int, string] {
	return build([]string{"a", "b", "d", "c"}, [][2]int{{0, 1}, {0, 2}, {1, 3}})
}

func graphB() *graph.Labeled[int, string] {
	return build([]string{"a", "b", "c", "c", "d"}, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 4}})
}

func ring(labels ...string) *graph.Labeled[int, string] {
	var edges [][2]int
	for i := range labels {
		edges = append(edges, [2]int{i, (i + 1) % len(labels)})
	}
	return build(labels, edges)
}

func paperTree(t *testing.T, vertices []int, edges map[int][]int, labels map[int]string) *canon.Tree[int, string] {
	t.Helper()
	d := dag.New(vertices, edges, labels)
	if err := dag.Order(d); err != nil {
		t.Fatal(err)
	}
	tree, err := canon.Canonicalize(d, canon.StringIdentity)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestReduceSelfPaperTrees(t *testing.T) {
	b := bigdag.New[string](bigdag.Vector)
	trees := []*canon.Tree[int, string]{
		paperTree(t, []int{0, 1, 2, 3},
			map[int][]int{0: {1, 2}, 1: {3}},
			map[int]string{0: "a", 1: "b", 2: "d", 3: "c"}),
		paperTree(t, []int{0, 1, 2, 3, 4},
			map[int][]int{0: {1, 2}, 1: {3}, 2: {4}},
			map[int]string{0: "a", 1: "b", 2: "c", 3: "c", 4: "d"}),
	}
	for _, tree := range trees {
		if err := bigdag.Fold(b, tree); err != nil {
			t.Fatal(err)
		}
	}

	m, err := ReduceSelf(b, 2)
	if err != nil {
		t.Fatalf("ReduceSelf() error: %v", err)
	}
	want := [][]float64{{4, 1}, {1, 6}}
	for i := range want {
		for j := range want[i] {
			if m.At(i, j) != want[i][j] {
				t.Errorf("K[%d][%d] = %v, want %v", i, j, m.At(i, j), want[i][j])
			}
		}
	}
}

func TestKernelMatrixEndToEnd(t *testing.T) {
	graphs := []labeledGraph{graphA(), graphB()}
	b, err := Build(graphs, DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	m, err := KernelMatrix(graphs, nil, dag.Unbounded)
	if err != nil {
		t.Fatalf("KernelMatrix() error: %v", err)
	}

	if !m.IsSymmetric() {
		t.Fatal("self matrix is not symmetric")
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			for _, n := range b.Nodes() {
				want += float64(n.Freq.At(i) * n.Freq.At(j) * n.Weight)
			}
			if m.At(i, j) != want {
				t.Errorf("K[%d][%d] = %v, want %v", i, j, m.At(i, j), want)
			}
		}
	}

	// Leaves c and d occur in both graphs and collapse to one node each.
	for _, id := range []string{"c", "d"} {
		i, ok := b.Lookup(id)
		if !ok {
			t.Fatalf("leaf %q missing from Big DAG", id)
		}
		n := b.Node(i)
		if n.Freq.At(0) == 0 || n.Freq.At(1) == 0 {
			t.Errorf("leaf %q frequencies = %v, want both non-zero", id, n.Freq.Slots())
		}
	}
	if m.At(0, 1) <= 0 {
		t.Errorf("K[0][1] = %v, want positive (b(c) is shared)", m.At(0, 1))
	}
}

func TestKernelMatrixSymmetry(t *testing.T) {
	graphs := []labeledGraph{
		graphA(),
		graphB(),
		ring("a", "b", "a", "b"),
		ring("c", "c", "c"),
		build([]string{"a"}, nil),
	}
	for _, h := range []int{1, 2, 3, dag.Unbounded} {
		m, err := KernelMatrix(graphs, nil, h)
		if err != nil {
			t.Fatalf("h=%d: KernelMatrix() error: %v", h, err)
		}
		if m.Rows() != len(graphs) || m.Cols() != len(graphs) {
			t.Fatalf("h=%d: shape %dx%d", h, m.Rows(), m.Cols())
		}
		if !m.IsSymmetric() {
			t.Errorf("h=%d: matrix not symmetric", h)
		}
		for j := 0; j < m.Cols(); j++ {
			if m.At(4, j) != 0 {
				t.Errorf("h=%d: single vertex graph has K[4][%d] = %v", h, j, m.At(4, j))
			}
		}
	}
}

func TestPairwiseMatchesMatrix(t *testing.T) {
	a, b := graphA(), graphB()
	self, err := KernelMatrix([]labeledGraph{a, b}, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	k, err := Pairwise[int, string](a, b, 2)
	if err != nil {
		t.Fatalf("Pairwise() error: %v", err)
	}
	if k != self.At(0, 1) {
		t.Errorf("Pairwise() = %v, want %v", k, self.At(0, 1))
	}

	kaa, err := Pairwise[int, string](a, a, 2)
	if err != nil {
		t.Fatal(err)
	}
	if kaa != self.At(0, 0) {
		t.Errorf("Pairwise(a, a) = %v, want %v", kaa, self.At(0, 0))
	}
}

func TestPairwiseDelimiterLabels(t *testing.T) {
	joined := build([]string{"a", "c,b"}, [][2]int{{0, 1}})
	split := build([]string{"a", "c", "b"}, [][2]int{{0, 1}, {0, 2}})

	k, err := Pairwise[int, string](joined, split, dag.Unbounded)
	if err != nil {
		t.Fatalf("Pairwise() error: %v", err)
	}
	if k != 0 {
		t.Errorf("Pairwise() = %v, want 0", k)
	}
}

func TestKernelMatrixCross(t *testing.T) {
	x := []labeledGraph{graphA(), graphB()}
	y := []labeledGraph{graphB(), ring("a", "b", "c"), graphA()}

	m, err := KernelMatrix(x, y, 3)
	if err != nil {
		t.Fatalf("KernelMatrix() error: %v", err)
	}
	if m.Rows() != 3 || m.Cols() != 2 {
		t.Fatalf("shape = %dx%d, want 3x2", m.Rows(), m.Cols())
	}

	self, err := KernelMatrix(x, nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	// Row 0 is graph B, row 2 is graph A.
	for j := 0; j < 2; j++ {
		if m.At(0, j) != self.At(1, j) {
			t.Errorf("K[0][%d] = %v, want %v", j, m.At(0, j), self.At(1, j))
		}
		if m.At(2, j) != self.At(0, j) {
			t.Errorf("K[2][%d] = %v, want %v", j, m.At(2, j), self.At(0, j))
		}
	}
}

func TestComputeHashedIdentity(t *testing.T) {
	graphs := []labeledGraph{graphA(), graphB(), ring("a", "b", "a", "b", "c")}
	plain, err := Compute(graphs, nil, Options{MaxHeight: 3, Identity: canon.StringIdentity})
	if err != nil {
		t.Fatal(err)
	}
	hashed, err := Compute(graphs, nil, Options{MaxHeight: 3, Identity: canon.HashedIdentity})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < plain.Rows(); i++ {
		for j := 0; j < plain.Cols(); j++ {
			if plain.At(i, j) != hashed.At(i, j) {
				t.Errorf("K[%d][%d]: string %v, hashed %v", i, j, plain.At(i, j), hashed.At(i, j))
			}
		}
	}
}

func TestInvalidHeight(t *testing.T) {
	graphs := []labeledGraph{graphA()}
	for _, h := range []int{0, -2, -100} {
		if _, err := KernelMatrix(graphs, nil, h); !errors.Is(err, errors.ErrCodeInvalidHeight) {
			t.Errorf("h=%d: error = %v, want INVALID_HEIGHT", h, err)
		}
		if _, err := Pairwise[int, string](graphA(), graphB(), h); !errors.Is(err, errors.ErrCodeInvalidHeight) {
			t.Errorf("h=%d: Pairwise error = %v, want INVALID_HEIGHT", h, err)
		}
	}
}

func TestReduceErrors(t *testing.T) {
	merge := bigdag.New[string](bigdag.Merge)
	if _, err := ReduceSelf(merge, 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("merge mode: error = %v, want INVALID_INPUT", err)
	}

	b, err := Build([]labeledGraph{graphA(), graphB()}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ReduceSelf(b, 3); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("wrong source count: error = %v, want INVALID_INPUT", err)
	}
	if _, err := ReduceCross(b, 1, 2); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("wrong cross split: error = %v, want INVALID_INPUT", err)
	}
	if _, err := ReduceCross(b, 3, -1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative ny: error = %v, want INVALID_INPUT", err)
	}
	if m, err := ReduceCross(b, 1, 1); err != nil || m.Rows() != 1 || m.Cols() != 1 {
		t.Errorf("ReduceCross(1, 1) = %v, %v", m, err)
	}
}

func TestEmptyCollections(t *testing.T) {
	m, err := KernelMatrix[int, string](nil, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if m.Rows() != 0 || m.Cols() != 0 {
		t.Errorf("shape = %dx%d, want 0x0", m.Rows(), m.Cols())
	}

	empty := graph.New[int, string](false)
	m, err = KernelMatrix([]labeledGraph{graphA(), empty}, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if m.At(1, 1) != 0 || m.At(0, 1) != 0 {
		t.Errorf("empty graph row = %v, want zeros", m.Row(1))
	}
}

func TestMatrixJSON(t *testing.T) {
	m := NewMatrix(2, 3)
	m.Set(0, 1, 2.5)
	m.Set(1, 2, 7)

	b, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"rows":2,"cols":3,"data":[[0,2.5,0],[0,0,7]]}`; got != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}

	var back Matrix
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Rows() != 2 || back.Cols() != 3 || back.At(1, 2) != 7 || back.At(0, 1) != 2.5 {
		t.Errorf("Unmarshal = %+v", back)
	}

	for _, bad := range []string{
		`{"rows":2,"cols":1,"data":[[1]]}`,
		`{"rows":1,"cols":2,"data":[[1]]}`,
		`{"rows":-1,"cols":0,"data":[]}`,
	} {
		var m Matrix
		if err := json.Unmarshal([]byte(bad), &m); err == nil {
			t.Errorf("Unmarshal(%s) succeeded, want error", bad)
		}
	}
	if NewMatrix(2, 3).IsSymmetric() {
		t.Error("non-square matrix reported symmetric")
	}
}
