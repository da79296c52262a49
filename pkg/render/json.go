package render

import (
	"cmp"
	"encoding/json"

	"github.com/matzehuels/oddkernel/pkg/bigdag"
)

type nodeJSON[L cmp.Ordered] struct {
	Index    int    `json:"index"`
	Label    L      `json:"label"`
	Weight   int    `json:"weight"`
	ID       string `json:"id"`
	Children []int  `json:"children"`
	Freq     []int  `json:"freq"`
}

type bigDAGJSON[L cmp.Ordered] struct {
	Mode    string        `json:"mode"`
	Sources int           `json:"sources"`
	Nodes   []nodeJSON[L] `json:"nodes"`
}

// JSON encodes a Big DAG as indented JSON. Merge-mode frequencies are
// written as a single-element list.
func JSON[L cmp.Ordered](b *bigdag.BigDAG[L]) ([]byte, error) {
	out := bigDAGJSON[L]{
		Mode:    b.Mode().String(),
		Sources: b.Sources(),
		Nodes:   make([]nodeJSON[L], 0, b.Len()),
	}
	for _, n := range b.Nodes() {
		freq := n.Freq.Slots()
		if n.Freq.Mode() == bigdag.Merge {
			freq = []int{n.Freq.Total()}
		}
		children := n.Children
		if children == nil {
			children = []int{}
		}
		out.Nodes = append(out.Nodes, nodeJSON[L]{
			Index:    n.Index,
			Label:    n.Label,
			Weight:   n.Weight,
			ID:       n.ID,
			Children: children,
			Freq:     freq,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
