// Package cli implements the oddkernel command-line interface.
//
// The CLI computes ODD-STh subtree kernels between graphs stored in JSON
// collection files and exports the Big DAG the kernel is reduced from. It is
// built on cobra; progress and pipeline events are logged with
// charmbracelet/log and terminal output is styled with lipgloss.
//
// # Commands
//
// The main commands are:
//   - matrix: Kernel matrix of one collection, or of two collections against each other
//   - pairwise: Kernel value of two graphs picked from a collection
//   - bigdag: Export the Big DAG as DOT, SVG, or JSON
//   - cache: Count, locate and clear cached results (clear --type matrix|bigdag)
//   - config: Show the effective configuration
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/oddkernel/config.toml (or the file
// given with --config). Flags always win over the file:
//
//	height = 3
//	identity = "hashed"
//
//	[cache]
//	dir = "/var/cache/oddkernel"
//	redis_url = "redis://localhost:6379/0"
//	namespace = "team-a"
//	ttl = "168h"
//
// When redis_url is set, results are shared through Redis instead of the
// local file cache.
//
// # Metrics
//
// With --metrics FILE, pipeline and cache events are recorded as Prometheus
// metrics and written to FILE in the textfile collector format when the
// command finishes.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
//
// # Exit Codes
//
// 0 on success, 2 for rejected input, 70 when a kernel stage receives a
// malformed DAG, 130 when interrupted and 1 otherwise. See [ExitCode].
package cli
