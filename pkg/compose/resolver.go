package compose

import (
	"github.com/treesmith/treesmith/pkg/errors"
	"github.com/treesmith/treesmith/pkg/logging"
	"github.com/treesmith/treesmith/pkg/manifest"
	"github.com/treesmith/treesmith/pkg/types"
)

// Contribution is one source's draft for a directory. Contributions are
// ordered; later ones override earlier ones field by field.
type Contribution struct {
	// Source names the manifest source (or "config") the draft came from.
	Source string

	// Draft holds the contributed fields. Nil maps and slices, a nil
	// Src and a nil Enable mean "not set by this contribution".
	Draft *types.Directory
}

// Resolver turns manifest sources into ordered directory contributions.
type Resolver struct {
	loader *manifest.Loader
}

// NewResolver creates a Resolver reading through the given loader.
func NewResolver(loader *manifest.Loader) *Resolver {
	return &Resolver{loader: loader}
}

// Resolve loads every source's manifest and lockfile and produces one
// contribution per project tracked on the source's branch. Projects
// without settings for the branch are silently excluded. A project
// retained by the manifest but missing from the lockfile (or pinned to
// null) aborts resolution: the pair is inconsistent and no script may
// be generated from it.
func (r *Resolver) Resolve(sources []types.ManifestSource) ([]Contribution, error) {
	logger := logging.GetLogger("compose.resolver")

	var contribs []Contribution
	for _, src := range sources {
		m, err := r.loader.Manifest(src.ManifestPath)
		if err != nil {
			return nil, err
		}
		lf, err := r.loader.Lockfile(src.LockfilePath)
		if err != nil {
			return nil, err
		}

		kept := 0
		for _, p := range m.Projects {
			settings, ok := p.SettingsFor(src.Branch)
			if !ok {
				logger.Debug().
					Str("source", src.Name).
					Str("path", p.Path).
					Str("branch", src.Branch).
					Msg("Project not tracked on branch, excluded")
				continue
			}

			ref, present := lf[p.Path]
			if !present || ref == nil {
				return nil, errors.Newf(errors.ErrManifestLockMismatch,
					"project %s is tracked on branch %s but has no lockfile entry", p.Path, src.Branch).
					WithDetail("source", src.Name).
					WithDetail("lockfile", src.LockfilePath)
			}

			contribs = append(contribs, Contribution{
				Source: src.Name,
				Draft: &types.Directory{
					Name:      p.Path,
					Src:       ref.Clone(),
					Groups:    copySlice(settings.Groups),
					Copyfiles: copyMap(settings.Copyfiles),
					Linkfiles: copyMap(settings.Linkfiles),
				},
			})
			kept++
		}

		logger.Debug().
			Str("source", src.Name).
			Str("branch", src.Branch).
			Int("projects", len(m.Projects)).
			Int("kept", kept).
			Msg("Resolved manifest source")
	}

	return contribs, nil
}

// MergeContributions folds ordered contributions into the final
// directory set. The first contribution for a name creates the
// directory; later ones override it field by field. The override is
// shallow: a set field replaces the previous value wholesale, it is
// never merged into it.
func MergeContributions(contribs []Contribution) map[string]*types.Directory {
	dirs := make(map[string]*types.Directory)
	for _, c := range contribs {
		existing, ok := dirs[c.Draft.Name]
		if !ok {
			dirs[c.Draft.Name] = c.Draft.Clone()
			continue
		}
		overrideFields(existing, c.Draft)
	}
	return dirs
}

// overrideFields applies the set fields of over to base. "Set" means a
// non-nil map, slice, Src or Enable, and a non-empty RelPath or
// PostPatch; an empty but non-nil map or slice is set, and replaces the
// base value with emptiness.
func overrideFields(base, over *types.Directory) {
	if over.RelPath != "" {
		base.RelPath = over.RelPath
	}
	if over.Enable != nil {
		v := *over.Enable
		base.Enable = &v
	}
	if over.Src != nil {
		base.Src = over.Src.Clone()
	}
	if over.Patches != nil {
		base.Patches = append([]string(nil), over.Patches...)
	}
	if over.GitPatches != nil {
		base.GitPatches = append([]string(nil), over.GitPatches...)
	}
	if over.PostPatch != "" {
		base.PostPatch = over.PostPatch
	}
	if over.Copyfiles != nil {
		base.Copyfiles = copyMap(over.Copyfiles)
	}
	if over.Linkfiles != nil {
		base.Linkfiles = copyMap(over.Linkfiles)
	}
	if over.Groups != nil {
		base.Groups = copySlice(over.Groups)
	}
}

// copySlice returns a non-nil copy, so that "contributed but empty" is
// distinguishable from "not contributed".
func copySlice(s []string) []string {
	out := make([]string, 0, len(s))
	return append(out, s...)
}

// copyMap returns a non-nil copy.
func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
