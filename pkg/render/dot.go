package render

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/oddkernel/pkg/bigdag"
)

// Options configures Big DAG rendering.
type Options struct {
	// Detailed includes weight and frequencies in node labels.
	// When false, only the subtree root label is shown.
	Detailed bool

	// MaxNodes limits the number of nodes drawn. Zero draws all nodes.
	MaxNodes int
}

// ToDOT converts a Big DAG to Graphviz DOT format.
// The resulting DOT string can be rendered using [SVG].
func ToDOT[L cmp.Ordered](b *bigdag.BigDAG[L], opts Options) string {
	nodes := b.Nodes()
	if opts.MaxNodes > 0 && opts.MaxNodes < len(nodes) {
		nodes = nodes[:opts.MaxNodes]
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.Index, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", n.Index, c)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel[L cmp.Ordered](n *bigdag.Node[L], detailed bool) string {
	label := fmt.Sprint(n.Label)
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("weight: %d", n.Weight)}
	if n.Freq.Mode() == bigdag.Vector {
		parts = append(parts, fmt.Sprintf("freq: %v", n.Freq.Slots()))
	} else {
		parts = append(parts, fmt.Sprintf("freq: %d", n.Freq.Total()))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs[L cmp.Ordered](n *bigdag.Node[L], label string) []string {
	attrs := []string{"label=" + quoteDOT(label), "tooltip=" + quoteDOT(n.ID)}
	if n.Weight == 0 {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// quoteDOT returns s as a DOT quoted string. Backslashes and quotes are
// escaped, newlines become DOT line breaks, and other text is kept as UTF-8.
func quoteDOT(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg tag with one whose viewBox
// starts at the origin, so the image scales cleanly in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
