package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/oddkernel/pkg/cache"
	"github.com/matzehuels/oddkernel/pkg/graph"
	"github.com/matzehuels/oddkernel/pkg/observability"
)

// Collection is a graph collection loaded from disk.
type Collection struct {
	Path   string
	Names  []string
	Graphs []graph.Graph[int, string]

	// Hash is the content hash of the normalized collection, independent of
	// whitespace and key order in the source file.
	Hash string
}

// Load reads a JSON graph collection.
func (r *Runner) Load(ctx context.Context, path string) (*Collection, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	c, err := load(path)
	n := 0
	if c != nil {
		n = len(c.Graphs)
	}
	hooks.OnLoadComplete(ctx, path, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.logger().Debug("loaded collection", "path", path, "graphs", n, "duration", time.Since(start))
	return c, nil
}

func load(path string) (*Collection, error) {
	named, err := graph.ImportCollection(path)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := graph.WriteCollection(&buf, named); err != nil {
		return nil, err
	}

	c := &Collection{
		Path:   path,
		Names:  make([]string, len(named)),
		Graphs: make([]graph.Graph[int, string], len(named)),
		Hash:   cache.Hash(buf.Bytes()),
	}
	for i, n := range named {
		c.Names[i] = n.Name
		c.Graphs[i] = n.Graph
	}
	return c, nil
}
