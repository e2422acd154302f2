package internal

import (
	"path/filepath"

	"github.com/treesmith/treesmith/pkg/compose"
	"github.com/treesmith/treesmith/pkg/config"
	"github.com/treesmith/treesmith/pkg/filesystem"
	"github.com/treesmith/treesmith/pkg/logging"
	"github.com/treesmith/treesmith/pkg/types"
)

// EvalOptions are the shared inputs of every command that needs an
// evaluated composition.
type EvalOptions struct {
	// Config is the loaded workspace configuration.
	Config *config.Config

	// RootDir is the directory relative configuration paths resolve
	// against, normally the directory of the loaded config file.
	RootDir string

	// FileSystem reads manifests and lockfiles. Nil means the real
	// filesystem.
	FileSystem types.FS
}

// Evaluate turns the configuration into a composition. Manifest and
// lockfile paths from the config are resolved against RootDir before
// loading; patch paths are resolved to absolute form so generated
// scripts can run from the assembled tree, not the workspace.
func Evaluate(opts EvalOptions) (*compose.Composition, error) {
	log := logging.GetLogger("core.commands")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	sources := opts.Config.ManifestSources()
	for i := range sources {
		sources[i].ManifestPath = ResolveAgainst(opts.RootDir, sources[i].ManifestPath)
		sources[i].LockfilePath = ResolveAgainst(opts.RootDir, sources[i].LockfilePath)
	}

	overrides := make(map[string]*types.Directory, len(opts.Config.Dirs))
	for name, dc := range opts.Config.Dirs {
		d := dc.ToDirectory(name)
		resolvePatchPaths(d, opts.RootDir)
		overrides[name] = d
	}

	evaluator := compose.NewEvaluator(fs)
	comp, err := evaluator.Evaluate(compose.Options{
		Branch:        opts.Config.Branch,
		IncludeGroups: opts.Config.IncludeGroups,
		ExcludeGroups: opts.Config.ExcludeGroups,
		Sources:       sources,
		Overrides:     overrides,
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("branch", comp.Branch).
		Int("enabled", len(comp.Entries)).
		Msg("Evaluated composition for command")
	return comp, nil
}

// ResolveAgainst absolutizes a relative path against root. Absolute
// paths and the empty string pass through.
func ResolveAgainst(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// resolvePatchPaths absolutizes a directory's patch file references.
// Src paths stay as written: they point into the snapshot store, whose
// layout is the fetcher's concern.
func resolvePatchPaths(d *types.Directory, root string) {
	for i, p := range d.Patches {
		d.Patches[i] = ResolveAgainst(root, p)
	}
	for i, p := range d.GitPatches {
		d.GitPatches[i] = ResolveAgainst(root, p)
	}
}
