// Package paths provides centralized path handling for treesmith.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/treesmith/treesmith/pkg/errors"
)

// Environment variable names
const (
	// EnvWorkspaceRoot is the primary environment variable for the workspace location
	EnvWorkspaceRoot = "TREESMITH_ROOT"

	// EnvDataDir overrides the XDG data directory for treesmith
	EnvDataDir = "TREESMITH_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for treesmith
	EnvConfigDir = "TREESMITH_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for treesmith
	EnvCacheDir = "TREESMITH_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// TreesmithDirName is the directory name for treesmith-specific files
	TreesmithDirName = "treesmith"

	// ConfigFileName is the name of the workspace configuration file
	ConfigFileName = "treesmith.toml"

	// DefaultOutputDirName is the default directory name for generated scripts
	DefaultOutputDirName = "build"

	// LogFileName is the name of the log file
	LogFileName = "treesmith.log"
)

// Paths provides centralized path management for treesmith
type Paths interface {
	WorkspaceRoot() string
	UsedFallback() bool
	ConfigFilePath() string
	DataDir() string
	ConfigDir() string
	CacheDir() string
	StateDir() string
	OutputDir() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
	IsInWorkspace(path string) (bool, error)
}

// paths provides centralized path management for treesmith
type paths struct {
	// workspaceRoot is the directory holding treesmith.toml and the snapshots
	workspaceRoot string

	// xdgData is the XDG data directory
	xdgData string

	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgCache is the XDG cache directory
	xdgCache string

	// xdgState is the XDG state directory
	xdgState string

	// usedFallback indicates if we fell back to cwd (for warning display)
	usedFallback bool
}

// New creates a new Paths instance with the given workspace root.
// If workspaceRoot is empty, it will be determined from environment variables
// or defaults.
func New(workspaceRoot string) (Paths, error) {
	p := &paths{}

	// Set up workspace root
	if workspaceRoot == "" {
		root, usedFallback, err := findWorkspaceRoot()
		if err != nil {
			return nil, err
		}
		p.workspaceRoot = root
		p.usedFallback = usedFallback
	} else {
		p.workspaceRoot = ExpandHome(workspaceRoot)
		p.usedFallback = false
	}

	// Ensure workspace root is absolute
	absRoot, err := filepath.Abs(p.workspaceRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for workspace root")
	}
	p.workspaceRoot = absRoot

	// Set up XDG directories
	if err := p.setupXDGDirs(); err != nil {
		return nil, err
	}

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() error {
	// Data directory
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = ExpandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, TreesmithDirName)
	}

	// Config directory
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, TreesmithDirName)
	}

	// Cache directory
	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.xdgCache = ExpandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, TreesmithDirName)
	}

	// State directory - XDG doesn't provide StateHome, so we check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, TreesmithDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", TreesmithDirName)
	}

	return nil
}

// findWorkspaceRoot determines the workspace root using the following priority:
// 1. TREESMITH_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
//
// The function returns:
// - string: The resolved workspace root path
// - bool: Whether the current working directory was used as fallback
// - error: Any error that occurred during resolution
//
// This allows treesmith to work in three common scenarios:
// - Explicit configuration via TREESMITH_ROOT
// - Automatic detection when run from within a git-managed snapshot repo
// - Fallback to current directory for quick testing or non-git setups
func findWorkspaceRoot() (string, bool, error) {
	// Check TREESMITH_ROOT first (highest priority)
	if root := os.Getenv(EnvWorkspaceRoot); root != "" {
		return ExpandHome(root), false, nil
	}

	// Try to find git repository root
	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		if os.Getenv("TREESMITH_DEBUG") != "" {
			fmt.Fprintf(os.Stderr, "Debug: findWorkspaceRoot using git root: %s\n", gitRoot)
		}
		return gitRoot, false, nil
	}

	// Fallback to current working directory with warning
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")

	output, err := cmd.Output()
	if err != nil {
		// Git command failed - not in a git repo or git not installed
		return "", err
	}

	// Trim whitespace and return the path
	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}

	return gitRoot, nil
}

// ExpandHome expands a leading ~ to the user's home directory.
// Paths for other users (~name/...) are returned unchanged.
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// WorkspaceRoot returns the root directory of the workspace
func (p *paths) WorkspaceRoot() string {
	return p.workspaceRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigFilePath returns the path to the workspace configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.workspaceRoot, ConfigFileName)
}

// DataDir returns the XDG data directory for treesmith
func (p *paths) DataDir() string {
	return p.xdgData
}

// ConfigDir returns the XDG config directory for treesmith
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// CacheDir returns the XDG cache directory for treesmith
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// StateDir returns the XDG state directory for treesmith
func (p *paths) StateDir() string {
	return p.xdgState
}

// OutputDir returns the default directory for generated scripts
func (p *paths) OutputDir() string {
	return filepath.Join(p.workspaceRoot, DefaultOutputDirName)
}

// LogFilePath returns the path to the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// DefaultLogFilePath returns the log file location under the XDG state
// directory without probing the workspace, for callers that run before
// a workspace root is known.
func DefaultLogFilePath() string {
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		return filepath.Join(stateDir, TreesmithDirName, LogFileName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return LogFileName
	}
	return filepath.Join(homeDir, ".local", "state", TreesmithDirName, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	// Expand home directory
	expanded := ExpandHome(path)

	// Make absolute relative to the workspace root
	abs := expanded
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(p.workspaceRoot, abs)
	}

	// Clean the path
	return filepath.Clean(abs), nil
}

// IsInWorkspace checks if a path is within the workspace root
func (p *paths) IsInWorkspace(path string) (bool, error) {
	normalized, err := p.NormalizePath(path)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(p.workspaceRoot, normalized)
	if err != nil {
		return false, nil
	}

	// If the relative path starts with .., it's outside the workspace
	return !strings.HasPrefix(rel, ".."), nil
}
