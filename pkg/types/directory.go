package types

// Directory is one node of the assembled source tree. Directories are
// produced by manifest resolution, optionally overridden from the
// workspace configuration, and never mutated after script generation.
type Directory struct {
	// Name is the unique key of the directory.
	Name string

	// RelPath is the target path within the composed tree. When empty,
	// the name is used.
	RelPath string

	// Enable overrides the group-computed enablement when non-nil.
	Enable *bool

	// Src is the pinned content snapshot mounted or copied at RelPath.
	Src *SourceRef

	// Patches are unified-diff files applied in order with strict context
	// matching (no fuzz).
	Patches []string

	// GitPatches are diff files applied in order by the fuzz-tolerant,
	// content-matching mechanism.
	GitPatches []string

	// PostPatch is a shell snippet run inside RelPath after patching.
	PostPatch string

	// Copyfiles maps tree-relative destinations to files within RelPath
	// that are copied there.
	Copyfiles map[string]string

	// Linkfiles maps tree-relative destinations to files within RelPath
	// that are symlinked there.
	Linkfiles map[string]string

	// Groups are the tags used by include/exclude filtering.
	Groups []string
}

// EffectiveRelPath returns the directory's target path in the tree.
func (d *Directory) EffectiveRelPath() string {
	if d.RelPath != "" {
		return d.RelPath
	}
	return d.Name
}

// HasPatchWork reports whether the directory has any patch pipeline steps.
func (d *Directory) HasPatchWork() bool {
	return len(d.Patches) > 0 || len(d.GitPatches) > 0 || d.PostPatch != ""
}

// NeedsPrivateCopy reports whether the directory's content must be
// materialized as a writable private copy of Src rather than an alias.
// Patching and post-patch commands mutate files in place, so any patch
// work forces a copy.
func (d *Directory) NeedsPrivateCopy() bool {
	return d.HasPatchWork()
}

// HasGroup reports whether the directory carries the given group tag.
func (d *Directory) HasGroup(group string) bool {
	for _, g := range d.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the directory. Override merging mutates
// drafts field by field, so contributions must not alias each other's
// maps and slices.
func (d *Directory) Clone() *Directory {
	if d == nil {
		return nil
	}
	c := *d
	c.Src = d.Src.Clone()
	if d.Enable != nil {
		v := *d.Enable
		c.Enable = &v
	}
	if d.Patches != nil {
		c.Patches = append([]string(nil), d.Patches...)
	}
	if d.GitPatches != nil {
		c.GitPatches = append([]string(nil), d.GitPatches...)
	}
	if d.Groups != nil {
		c.Groups = append([]string(nil), d.Groups...)
	}
	if d.Copyfiles != nil {
		c.Copyfiles = make(map[string]string, len(d.Copyfiles))
		for k, v := range d.Copyfiles {
			c.Copyfiles[k] = v
		}
	}
	if d.Linkfiles != nil {
		c.Linkfiles = make(map[string]string, len(d.Linkfiles))
		for k, v := range d.Linkfiles {
			c.Linkfiles[k] = v
		}
	}
	return &c
}
