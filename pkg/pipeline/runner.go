package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/oddkernel/pkg/bigdag"
	"github.com/matzehuels/oddkernel/pkg/cache"
	"github.com/matzehuels/oddkernel/pkg/graph"
	"github.com/matzehuels/oddkernel/pkg/kernel"
	"github.com/matzehuels/oddkernel/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options as long as the cache is safe for
// concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL applies to every cache write. Zero keeps entries forever.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Execute runs the complete load → build → reduce pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	runID := uuid.NewString()
	logger := opts.Logger.With("run", runID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	x, y, err := r.loadInputs(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(loadStart)

	graphs := append([]graph.Graph[int, string]{}, x.Graphs...)
	yHash := ""
	if y != nil {
		graphs = append(graphs, y.Graphs...)
		yHash = y.Hash
	}
	logger.Info("loaded graphs", "graphs", len(graphs), "duration", loadTime)

	key := r.Keyer.MatrixKey(x.Hash, yHash, opts.MatrixKeyOpts())
	if !opts.Refresh {
		if cached := r.cachedResult(ctx, key, logger); cached != nil {
			cached.RunID = runID
			cached.CacheHit = true
			cached.Stats = Stats{Graphs: len(graphs), LoadTime: loadTime}
			logger.Info("using cached kernel matrix", "rows", cached.Matrix.Rows(), "cols", cached.Matrix.Cols())
			return cached, nil
		}
	}

	result := &Result{
		RunID:  runID,
		XNames: x.Names,
		Stats:  Stats{Graphs: len(graphs), LoadTime: loadTime},
	}
	if y != nil {
		result.YNames = y.Names
	}

	// Stage 2: Build
	buildStart := time.Now()
	b, err := r.Build(ctx, graphs, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.BigDAG = b.Stats()
	result.Stats.BuildTime = time.Since(buildStart)

	logger.Info("built big dag",
		"nodes", result.BigDAG.Nodes,
		"edges", result.BigDAG.Edges,
		"duration", result.Stats.BuildTime)

	// Stage 3: Reduce
	reduceStart := time.Now()
	ny := -1
	if y != nil {
		ny = len(y.Graphs)
	}
	m, err := r.Reduce(ctx, b, len(x.Graphs), ny)
	if err != nil {
		return nil, fmt.Errorf("reduce: %w", err)
	}
	result.Matrix = m
	result.Stats.ReduceTime = time.Since(reduceStart)

	logger.Info("reduced kernel matrix",
		"rows", m.Rows(),
		"cols", m.Cols(),
		"duration", result.Stats.ReduceTime)

	r.store(ctx, key, cache.KeyTypeMatrix, result, logger)
	return result, nil
}

// Build folds graphs into a global vector-mode Big DAG, emitting build hooks.
func (r *Runner) Build(ctx context.Context, graphs []graph.Graph[int, string], opts Options) (*bigdag.BigDAG[string], error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(graphs))
	start := time.Now()

	b, err := kernel.Build(graphs, opts.KernelOptions())
	nodes := 0
	if b != nil {
		nodes = b.Len()
	}
	hooks.OnBuildComplete(ctx, nodes, time.Since(start), err)
	return b, err
}

// Reduce computes the kernel matrix of b. A negative ny selects self mode
// over the nx sources; otherwise the last ny sources are compared against
// the first nx.
func (r *Runner) Reduce(ctx context.Context, b *bigdag.BigDAG[string], nx, ny int) (*kernel.Matrix, error) {
	mode := "self"
	if ny >= 0 {
		mode = "cross"
	}

	hooks := observability.Pipeline()
	hooks.OnReduceStart(ctx, mode)
	start := time.Now()

	var (
		m   *kernel.Matrix
		err error
	)
	if ny < 0 {
		m, err = kernel.ReduceSelf(b, nx)
	} else {
		m, err = kernel.ReduceCross(b, nx, ny)
	}

	rows, cols := 0, 0
	if m != nil {
		rows, cols = m.Rows(), m.Cols()
	}
	hooks.OnReduceComplete(ctx, mode, rows, cols, time.Since(start), err)
	return m, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) loadInputs(ctx context.Context, opts Options) (x, y *Collection, err error) {
	x, err = r.Load(ctx, opts.XPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.YPath != "" {
		y, err = r.Load(ctx, opts.YPath)
		if err != nil {
			return nil, nil, err
		}
	}
	return x, y, nil
}

// cachedResult returns the cached result for key, or nil on a miss.
// Unreadable entries count as misses.
func (r *Runner) cachedResult(ctx context.Context, key string, logger *log.Logger) *Result {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, cache.KeyTypeMatrix)
		return nil
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil || res.Matrix == nil {
		logger.Debug("discarding unreadable cache entry", "key", key)
		hooks.OnCacheMiss(ctx, cache.KeyTypeMatrix)
		return nil
	}
	hooks.OnCacheHit(ctx, cache.KeyTypeMatrix)
	return &res
}

// store writes v under key. Failures are logged, not returned.
func (r *Runner) store(ctx context.Context, key, keyType string, v any, logger *log.Logger) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("cache encode failed", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.logger()
	}
}

// logger returns the runner's logger, or the default logger for runners
// built without [NewRunner].
func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
