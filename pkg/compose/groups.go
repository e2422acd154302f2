package compose

import "github.com/treesmith/treesmith/pkg/types"

// GroupFilter computes directory enablement from include/exclude group
// sets. A non-empty include set switches to allowlist semantics: only
// directories tagged with an included group survive, and directories
// with no groups at all are excluded since they can never intersect the
// allowlist. With an empty include set, directories are enabled unless
// tagged with an excluded group, so group-less directories stay enabled.
type GroupFilter struct {
	include map[string]bool
	exclude map[string]bool
}

// NewGroupFilter creates a filter for the given include/exclude sets.
func NewGroupFilter(include, exclude []string) *GroupFilter {
	return &GroupFilter{
		include: toSet(include),
		exclude: toSet(exclude),
	}
}

// Enabled reports whether the directory is part of the composed tree.
// An explicit enable override wins over the group computation.
func (f *GroupFilter) Enabled(d *types.Directory) bool {
	if d.Enable != nil {
		return *d.Enable
	}
	return f.groupsEnabled(d.Groups)
}

func (f *GroupFilter) groupsEnabled(groups []string) bool {
	if len(f.include) > 0 {
		return intersects(groups, f.include)
	}
	return !intersects(groups, f.exclude)
}

func intersects(groups []string, set map[string]bool) bool {
	for _, g := range groups {
		if set[g] {
			return true
		}
	}
	return false
}

func toSet(groups []string) map[string]bool {
	set := make(map[string]bool, len(groups))
	for _, g := range groups {
		set[g] = true
	}
	return set
}
