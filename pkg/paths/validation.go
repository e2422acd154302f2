package paths

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/treesmith/treesmith/pkg/errors"
)

// ValidatePath performs comprehensive validation on a path.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(p string) error {
	if p == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	// Check for null bytes
	if strings.Contains(p, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Check path length (common filesystem limit)
	if len(p) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateTreePath ensures a path is valid as a tree-relative location.
// Tree paths are the slash-separated names directories occupy in the
// composed source tree. They must:
// - Not be empty
// - Not be absolute
// - Not contain parent directory references
// - Already be in clean form (no redundant separators, no trailing slash)
func ValidateTreePath(p string) error {
	if err := ValidatePath(p); err != nil {
		return err
	}

	if strings.HasPrefix(p, "/") {
		return errors.Newf(errors.ErrInvalidInput, "tree path %q must be relative", p)
	}

	cleaned := path.Clean(p)
	if cleaned != p {
		return errors.Newf(errors.ErrInvalidInput, "tree path %q is not in clean form", p)
	}

	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return errors.Newf(errors.ErrInvalidInput, "tree path %q escapes the tree root", p)
	}

	return nil
}

// SanitizePath attempts to clean and make a path safe for use.
// It:
// - Expands a leading ~ to the home directory
// - Removes redundant separators
// - Resolves . and .. elements
// - Removes trailing separators (except for root)
func SanitizePath(p string) string {
	// First expand home directory if present
	p = ExpandHome(p)

	// Clean the path using filepath.Clean
	cleaned := filepath.Clean(p)

	// Ensure we don't return an empty string
	if cleaned == "" {
		return "."
	}

	return cleaned
}

// ContainsPath checks if child is contained within parent.
// Both paths are normalized before comparison.
func ContainsPath(parent, child string) bool {
	// Normalize both paths
	parent = SanitizePath(parent)
	child = SanitizePath(child)

	// Try to get relative path
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	// If relative path starts with .., child is outside parent
	return !strings.HasPrefix(rel, "..")
}

// PathDepth returns the number of segments in a tree-relative path.
// For example: "kernel" = 1, "vendor/x" = 2, "vendor/x/docs" = 3.
func PathDepth(p string) int {
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == "" {
		return 0
	}
	return strings.Count(cleaned, "/") + 1
}
