package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/oddkernel/pkg/bigdag"
	"github.com/matzehuels/oddkernel/pkg/cache"
	"github.com/matzehuels/oddkernel/pkg/graph"
	"github.com/matzehuels/oddkernel/pkg/observability"
	"github.com/matzehuels/oddkernel/pkg/render"
)

// Rendering is a Big DAG exported in one output format.
type Rendering struct {
	RunID    string       `json:"-"`
	Format   string       `json:"format"`
	Data     []byte       `json:"data"`
	BigDAG   bigdag.Stats `json:"bigdag"`
	CacheHit bool         `json:"-"`
}

// RenderBigDAG builds the global Big DAG of the inputs and exports it in
// opts.Format. Renderings are cached like kernel matrices.
func (r *Runner) RenderBigDAG(ctx context.Context, opts Options) (*Rendering, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	runID := uuid.NewString()
	logger := opts.Logger.With("run", runID[:8])

	x, y, err := r.loadInputs(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	graphs := append([]graph.Graph[int, string]{}, x.Graphs...)
	inputHash := x.Hash
	if y != nil {
		graphs = append(graphs, y.Graphs...)
		inputHash = cache.Hash([]byte(x.Hash + y.Hash))
	}

	key := r.Keyer.BigDAGKey(inputHash, opts.BigDAGKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var out Rendering
			if err := json.Unmarshal(data, &out); err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KeyTypeBigDAG)
				out.RunID = runID
				out.CacheHit = true
				logger.Info("using cached big dag rendering", "format", out.Format)
				return &out, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeBigDAG)
	}

	start := time.Now()
	b, err := r.Build(ctx, graphs, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	data, err := export(b, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := &Rendering{
		RunID:  runID,
		Format: opts.Format,
		Data:   data,
		BigDAG: b.Stats(),
	}

	logger.Info("rendered big dag",
		"format", opts.Format,
		"nodes", out.BigDAG.Nodes,
		"bytes", len(data),
		"duration", time.Since(start))

	r.store(ctx, key, cache.KeyTypeBigDAG, out, logger)
	return out, nil
}

func export(b *bigdag.BigDAG[string], opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatJSON:
		return render.JSON(b)
	case FormatSVG:
		return render.SVG(render.ToDOT(b, render.Options{Detailed: opts.Detailed, MaxNodes: opts.MaxNodes}))
	default:
		return []byte(render.ToDOT(b, render.Options{Detailed: opts.Detailed, MaxNodes: opts.MaxNodes})), nil
	}
}
