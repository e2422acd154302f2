package compose

import (
	"sort"
	"strings"

	"github.com/treesmith/treesmith/pkg/errors"
	"github.com/treesmith/treesmith/pkg/logging"
	"github.com/treesmith/treesmith/pkg/manifest"
	"github.com/treesmith/treesmith/pkg/paths"
	"github.com/treesmith/treesmith/pkg/types"
)

// Options are the inputs of one composition evaluation.
type Options struct {
	// Branch is the requested global branch, used for error reporting.
	Branch string

	// IncludeGroups and ExcludeGroups drive the group filter.
	IncludeGroups []string
	ExcludeGroups []string

	// Sources are the manifest/lockfile pairs, in override order.
	Sources []types.ManifestSource

	// Overrides are explicit per-directory drafts applied after all
	// sources, keyed by directory name.
	Overrides map[string]*types.Directory
}

// Entry is one enabled directory together with the data the composition
// derives for it.
type Entry struct {
	// Dir is the merged directory configuration.
	Dir *types.Directory

	// RelPath is the directory's resolved target path.
	RelPath string

	// Depth is the number of segments in RelPath. Scripts process
	// entries in non-decreasing depth order.
	Depth int

	// Placeholders are the direct child segments where other enabled
	// directories mount inside this one. The unpack script creates an
	// empty directory for each, after this directory's own content
	// exists and before any nested directory is processed.
	Placeholders []string

	// Nested reports that RelPath sits inside another enabled
	// directory. Nested directories are always copied, never aliased,
	// because their mountpoint already exists as a real directory.
	Nested bool
}

// Composition is the result of one evaluation: the full directory set
// and the enabled entries in emission order.
type Composition struct {
	// Branch the evaluation was made for.
	Branch string

	// Dirs is every merged directory, enabled or not, keyed by name.
	Dirs map[string]*types.Directory

	// Entries are the enabled directories sorted by depth, then
	// relpath. The order is total so generated output is reproducible.
	Entries []*Entry
}

// Entry returns the enabled entry for a relpath, or nil.
func (c *Composition) Entry(relpath string) *Entry {
	for _, e := range c.Entries {
		if e.RelPath == relpath {
			return e
		}
	}
	return nil
}

// Evaluator runs composition evaluations against one filesystem.
type Evaluator struct {
	resolver *Resolver
}

// NewEvaluator creates an Evaluator reading through the given
// filesystem.
func NewEvaluator(fs types.FS) *Evaluator {
	return &Evaluator{
		resolver: NewResolver(manifest.NewLoader(fs)),
	}
}

// Evaluate resolves all sources, applies overrides, filters by groups,
// and derives mountpoints. The result is pure data; no filesystem
// writes happen here.
func (e *Evaluator) Evaluate(opts Options) (*Composition, error) {
	logger := logging.GetLogger("compose")

	contribs, err := e.resolver.Resolve(opts.Sources)
	if err != nil {
		return nil, err
	}

	dirs := MergeContributions(contribs)

	// Overrides are the final contributor. Names are applied in sorted
	// order; each name occurs at most once, so ordering only affects
	// logging.
	for _, name := range sortedKeys(opts.Overrides) {
		over := opts.Overrides[name]
		if existing, ok := dirs[name]; ok {
			overrideFields(existing, over)
			logger.Debug().Str("dir", name).Msg("Applied override")
		} else {
			d := over.Clone()
			if d.Name == "" {
				d.Name = name
			}
			dirs[name] = d
			logger.Debug().Str("dir", name).Msg("Added directory from override")
		}
	}

	if err := validateDirs(dirs); err != nil {
		return nil, err
	}

	filter := NewGroupFilter(opts.IncludeGroups, opts.ExcludeGroups)

	var entries []*Entry
	for _, name := range sortedKeys(dirs) {
		d := dirs[name]
		if !filter.Enabled(d) {
			continue
		}
		rp := d.EffectiveRelPath()
		entries = append(entries, &Entry{
			Dir:     d,
			RelPath: rp,
			Depth:   paths.PathDepth(rp),
		})
	}

	if err := validateRelPaths(entries); err != nil {
		return nil, err
	}

	relpaths := make([]string, len(entries))
	enabledSet := make(map[string]bool, len(entries))
	for i, en := range entries {
		relpaths[i] = en.RelPath
		enabledSet[en.RelPath] = true
	}

	tree := NewDirsTree(relpaths)
	for _, en := range entries {
		en.Placeholders = tree.Children(en.RelPath)
		en.Nested = nestedUnderEnabled(en.RelPath, enabledSet)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Depth != entries[j].Depth {
			return entries[i].Depth < entries[j].Depth
		}
		return entries[i].RelPath < entries[j].RelPath
	})

	logger.Info().
		Str("branch", opts.Branch).
		Int("dirs", len(dirs)).
		Int("enabled", len(entries)).
		Msg("Composition evaluated")

	return &Composition{
		Branch:  opts.Branch,
		Dirs:    dirs,
		Entries: entries,
	}, nil
}

// validateDirs checks every merged directory for a usable relpath.
func validateDirs(dirs map[string]*types.Directory) error {
	for _, name := range sortedKeys(dirs) {
		d := dirs[name]
		if err := paths.ValidateTreePath(d.EffectiveRelPath()); err != nil {
			return errors.Wrapf(err, errors.ErrDirInvalid, "directory %s", name)
		}
	}
	return nil
}

// validateRelPaths rejects two enabled directories occupying the same
// relpath. Same-name collisions are resolved by override merging; this
// catches distinct names pointed at one target.
func validateRelPaths(entries []*Entry) error {
	byRelPath := make(map[string]string, len(entries))
	for _, en := range entries {
		if other, dup := byRelPath[en.RelPath]; dup {
			return errors.Newf(errors.ErrDirInvalid,
				"directories %s and %s are both enabled at relpath %s", other, en.Dir.Name, en.RelPath)
		}
		byRelPath[en.RelPath] = en.Dir.Name
	}
	return nil
}

// nestedUnderEnabled reports whether any proper prefix of relpath is an
// enabled directory.
func nestedUnderEnabled(relpath string, enabled map[string]bool) bool {
	segments := strings.Split(relpath, "/")
	for i := 1; i < len(segments); i++ {
		if enabled[strings.Join(segments[:i], "/")] {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
