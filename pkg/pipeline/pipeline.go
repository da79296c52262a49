// Package pipeline runs kernel computations from graph collection files.
//
// This package implements the complete load → build → reduce pipeline used
// by the CLI. It adds what the kernel core deliberately leaves out: file
// input, result caching, logging, and observability hooks.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read one or two JSON graph collections (see package graph)
//  2. Build: Fold every graph into a global vector-mode Big DAG
//  3. Reduce: Compute the self or cross kernel matrix
//
// Kernel matrices are cached under a key derived from the content hash of
// the inputs, the height bound and the identity strategy. Big DAG renderings
// are cached the same way, keyed additionally by output format.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    XPath:  "train.json",
//	    YPath:  "test.json",
//	    Height: 3,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Matrix.At(0, 0))
//
// Render the Big DAG of a collection:
//
//	out, err := runner.RenderBigDAG(ctx, pipeline.Options{XPath: "train.json", Format: "svg"})
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/oddkernel/pkg/bigdag"
	"github.com/matzehuels/oddkernel/pkg/cache"
	"github.com/matzehuels/oddkernel/pkg/canon"
	"github.com/matzehuels/oddkernel/pkg/dag"
	"github.com/matzehuels/oddkernel/pkg/errors"
	"github.com/matzehuels/oddkernel/pkg/kernel"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultHeight explores every rooted DAG without a depth bound.
	DefaultHeight = dag.Unbounded

	// DefaultIdentity is the reference identity strategy.
	DefaultIdentity = "string"

	// DefaultFormat is the default Big DAG rendering format.
	DefaultFormat = FormatDOT
)

// Format constants for Big DAG output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported Big DAG output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Input options
	XPath string `json:"x_path"`
	YPath string `json:"y_path,omitempty"` // empty for a self comparison

	// Kernel options
	Height   int    `json:"height,omitempty"`   // zero selects DefaultHeight
	Identity string `json:"identity,omitempty"` // "string" or "hashed"

	// Big DAG rendering options
	Format   string `json:"format,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
	MaxNodes int    `json:"max_nodes,omitempty"`

	// Refresh bypasses cached results and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id"`

	// Matrix is the kernel matrix. In cross mode rows are YNames and
	// columns XNames; in self mode both are XNames.
	Matrix *kernel.Matrix `json:"matrix"`

	// XNames and YNames are the graph names in input order.
	XNames []string `json:"x_names"`
	YNames []string `json:"y_names,omitempty"`

	// BigDAG summarizes the global Big DAG.
	BigDAG bigdag.Stats `json:"bigdag"`

	// Stats contains timing information. Not cached.
	Stats Stats `json:"-"`

	// CacheHit reports whether the matrix came from the cache.
	CacheHit bool `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Graphs     int
	LoadTime   time.Duration
	BuildTime  time.Duration
	ReduceTime time.Duration
}

// Cross reports whether the result compares two collections.
func (r *Result) Cross() bool { return r.YNames != nil }

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a Big DAG output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg, json)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidatePath(o.XPath); err != nil {
		return fmt.Errorf("x_path: %w", err)
	}
	if o.YPath != "" {
		if err := errors.ValidatePath(o.YPath); err != nil {
			return fmt.Errorf("y_path: %w", err)
		}
	}

	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := dag.ValidateHeight(o.Height); err != nil {
		return err
	}
	if o.Identity == "" {
		o.Identity = DefaultIdentity
	}
	if _, err := canon.ParseIdentity(o.Identity); err != nil {
		return err
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.MaxNodes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_nodes must not be negative, got %d", o.MaxNodes)
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// KernelOptions returns the kernel options for validated options.
func (o *Options) KernelOptions() kernel.Options {
	id, _ := canon.ParseIdentity(o.Identity)
	return kernel.Options{MaxHeight: o.Height, Identity: id}
}

// MatrixKeyOpts returns cache key options for kernel matrices.
func (o *Options) MatrixKeyOpts() cache.MatrixKeyOpts {
	return cache.MatrixKeyOpts{Height: o.Height, Identity: o.Identity}
}

// BigDAGKeyOpts returns cache key options for Big DAG renderings.
func (o *Options) BigDAGKeyOpts() cache.BigDAGKeyOpts {
	return cache.BigDAGKeyOpts{
		Height:   o.Height,
		Identity: o.Identity,
		Format:   o.Format,
		Detailed: o.Detailed,
		MaxNodes: o.MaxNodes,
	}
}
