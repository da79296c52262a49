package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/oddkernel/pkg/errors"
)

// Named pairs a graph from a collection file with its optional name.
type Named struct {
	Name  string
	Graph *Labeled[int, string]
}

type collection struct {
	Graphs []graphDoc `json:"graphs"`
}

type graphDoc struct {
	Name     string      `json:"name,omitempty"`
	Directed bool        `json:"directed,omitempty"`
	Vertices []vertexDoc `json:"vertices"`
	Edges    [][2]int    `json:"edges"`
}

type vertexDoc struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// ReadCollection decodes a JSON graph collection from r.
//
// ReadCollection returns an INVALID_FORMAT error if the JSON is malformed and
// an INVALID_GRAPH error if a graph has an invalid name, a duplicate vertex,
// or an edge referencing an unknown vertex. Errors name the offending graph
// by index. ReadCollection does not close r.
func ReadCollection(r io.Reader) ([]Named, error) {
	var data collection
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode collection")
	}

	out := make([]Named, 0, len(data.Graphs))
	for i, gd := range data.Graphs {
		if err := errors.ValidateGraphName(gd.Name); err != nil {
			return nil, fmt.Errorf("graph %d: %w", i, err)
		}
		g := New[int, string](gd.Directed)
		for _, v := range gd.Vertices {
			if err := g.AddVertex(v.ID, v.Label); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "graph %d: vertex %d", i, v.ID)
			}
		}
		for _, e := range gd.Edges {
			if err := g.AddEdge(e[0], e[1]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "graph %d: edge %d->%d", i, e[0], e[1])
			}
		}
		out = append(out, Named{Name: gd.Name, Graph: g})
	}
	return out, nil
}

// ImportCollection reads a JSON collection file at path.
// A missing file is reported as FILE_NOT_FOUND.
func ImportCollection(path string) ([]Named, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCollection(f)
}

// WriteCollection encodes graphs as an indented JSON collection.
// Vertices are written in ascending order and edges in insertion order, so
// the output can be re-imported with [ReadCollection] unchanged.
func WriteCollection(w io.Writer, graphs []Named) error {
	out := collection{Graphs: make([]graphDoc, len(graphs))}
	for i, n := range graphs {
		gd := graphDoc{
			Name:     n.Name,
			Directed: n.Graph.Directed(),
			Vertices: make([]vertexDoc, 0, n.Graph.VertexCount()),
			Edges:    n.Graph.Edges(),
		}
		for _, v := range n.Graph.Vertices() {
			label, _ := n.Graph.Label(v)
			gd.Vertices = append(gd.Vertices, vertexDoc{ID: v, Label: label})
		}
		if gd.Edges == nil {
			gd.Edges = [][2]int{}
		}
		out.Graphs[i] = gd
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportCollection writes graphs to a JSON file at path.
func ExportCollection(path string, graphs []Named) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCollection(f, graphs)
}
