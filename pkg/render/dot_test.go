package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/oddkernel/pkg/bigdag"
	"github.com/matzehuels/oddkernel/pkg/canon"
	"github.com/matzehuels/oddkernel/pkg/dag"
)

func sample(t *testing.T) *bigdag.BigDAG[string] {
	t.Helper()
	d := dag.New(
		[]int{0, 1, 2, 3},
		map[int][]int{0: {1, 2}, 1: {3}},
		map[int]string{0: "a", 1: "b", 2: "d", 3: "c"},
	)
	if err := dag.Order(d); err != nil {
		t.Fatal(err)
	}
	tree, err := canon.Canonicalize(d, canon.StringIdentity)
	if err != nil {
		t.Fatal(err)
	}
	b := bigdag.New[string](bigdag.Vector)
	if err := bigdag.Fold(b, tree); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(t), Options{})

	for _, want := range []string{
		"digraph G {",
		`n0 [label="d", tooltip="d", fillcolor=lightgrey];`,
		`n2 [label="b", tooltip="b(c)"];`,
		"n2 -> n1;",
		"n3 -> n0;",
		"n3 -> n2;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sample(t), Options{Detailed: true})
	if !strings.Contains(dot, `label="a\nweight: 3\nfreq: [1]"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestQuoteDOT(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a", `"a"`},
		{"Zürich", `"Zürich"`},
		{"日本", `"日本"`},
		{`say "hi"`, `"say \"hi\""`},
		{`c\,b`, `"c\\,b"`},
		{"a\nweight: 1", `"a\nweight: 1"`},
		{"", `""`},
	}
	for _, tt := range tests {
		if got := quoteDOT(tt.in); got != tt.want {
			t.Errorf("quoteDOT(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestToDOTUnicodeLabels(t *testing.T) {
	d := dag.New(
		[]int{0, 1},
		map[int][]int{0: {1}},
		map[int]string{0: "Zürich", 1: `"x"`},
	)
	if err := dag.Order(d); err != nil {
		t.Fatal(err)
	}
	tree, err := canon.Canonicalize(d, canon.StringIdentity)
	if err != nil {
		t.Fatal(err)
	}
	b := bigdag.New[string](bigdag.Vector)
	if err := bigdag.Fold(b, tree); err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(b, Options{})
	for _, want := range []string{`label="Zürich"`, `label="\"x\""`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `\u`) {
		t.Errorf("DOT contains Go unicode escapes:\n%s", dot)
	}
	if _, err := SVG(dot); err != nil {
		t.Errorf("SVG() error: %v", err)
	}
}

func TestToDOTMaxNodes(t *testing.T) {
	dot := ToDOT(sample(t), Options{MaxNodes: 2})
	if strings.Contains(dot, "n2 [") || strings.Contains(dot, "n3 [") {
		t.Errorf("MaxNodes=2 should drop later nodes:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Errorf("leaves have no edges:\n%s", dot)
	}
}

func TestSVG(t *testing.T) {
	svg, err := SVG(ToDOT(sample(t), Options{}))
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("SVG tag not normalized: %.200s", svg)
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON(sample(t))
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	for _, want := range []string{
		`"mode": "vector"`,
		`"sources": 1`,
		`"id": "a(d,b(c))"`,
		`"children": []`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON missing %q:\n%s", want, data)
		}
	}
}
