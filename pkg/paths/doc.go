// Package paths provides centralized path handling for treesmith.
//
// This package implements the XDG Base Directory specification and provides
// a consistent API for all path operations throughout the treesmith codebase.
// It handles:
//
//   - Workspace root directory discovery and configuration
//   - XDG directory structure (data, config, cache, state)
//   - Path normalization and expansion
//   - Tree-relative path validation
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - TREESMITH_ROOT: Primary location for the workspace (manifest snapshots,
//     lockfiles and treesmith.toml)
//   - TREESMITH_DATA_DIR: Override XDG data directory (default: $XDG_DATA_HOME/treesmith)
//   - TREESMITH_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/treesmith)
//   - TREESMITH_CACHE_DIR: Override XDG cache directory (default: $XDG_CACHE_HOME/treesmith)
//
// # Usage
//
//	import "github.com/treesmith/treesmith/pkg/paths"
//
//	// Create a new Paths instance
//	p, err := paths.New("")  // Auto-detect workspace root
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Get various paths
//	root := p.WorkspaceRoot()      // /home/user/os-tree
//	cfg := p.ConfigFilePath()      // /home/user/os-tree/treesmith.toml
//	out := p.OutputDir()           // /home/user/os-tree/build
package paths
