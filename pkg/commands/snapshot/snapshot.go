package snapshot

import (
	"strings"

	"github.com/treesmith/treesmith/pkg/errors"
	"github.com/treesmith/treesmith/pkg/filesystem"
	"github.com/treesmith/treesmith/pkg/logging"
	"github.com/treesmith/treesmith/pkg/manifest"
	"github.com/treesmith/treesmith/pkg/types"
)

// DefaultManifestFile is the entry manifest read from the repository
// checkout when a branch spec does not name its own file.
const DefaultManifestFile = "default.xml"

// SnapshotOptions defines the options for the Snapshot command.
type SnapshotOptions struct {
	// RepoDir is the manifest repository checkout to import from.
	RepoDir string

	// RootURL is the fetch URL of the manifest repository itself, used
	// to resolve relative remotes.
	RootURL string

	// Branches are the branch specs to import, either "name" (reads
	// ManifestFile) or "name=file" for repositories keeping several
	// branch manifests side by side.
	Branches []string

	// ManifestFile is the file read for plain branch specs. Empty means
	// DefaultManifestFile.
	ManifestFile string

	// Output is the snapshot JSON path to write.
	Output string

	// Lockfile, when set, also writes a skeleton lockfile with a null
	// entry per project, for the pinning updater to fill in.
	Lockfile string

	// FileSystem reads manifests and writes outputs. Nil means the real
	// filesystem.
	FileSystem types.FS
}

// SnapshotResult reports what was imported and written.
type SnapshotResult struct {
	Output   string
	Lockfile string
	Branches []string
	Projects int
}

// Snapshot imports repo XML manifests for every requested branch and
// writes the accumulated snapshot, sorted by project path.
func Snapshot(opts SnapshotOptions) (*SnapshotResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().
		Str("command", "Snapshot").
		Str("repo", opts.RepoDir).
		Strs("branches", opts.Branches).
		Msg("Executing command")

	if opts.RepoDir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "a manifest repository directory is required")
	}
	if opts.Output == "" {
		return nil, errors.New(errors.ErrInvalidInput, "an output path is required")
	}
	if len(opts.Branches) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "at least one branch is required")
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	defaultFile := opts.ManifestFile
	if defaultFile == "" {
		defaultFile = DefaultManifestFile
	}

	imp := manifest.NewImporter(fs)
	branches := make([]string, 0, len(opts.Branches))
	for _, spec := range opts.Branches {
		branch, file, err := parseBranchSpec(spec, defaultFile)
		if err != nil {
			return nil, err
		}
		if err := imp.Import(opts.RepoDir, file, opts.RootURL, branch); err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}

	m := imp.Manifest()
	if err := manifest.WriteSnapshot(fs, opts.Output, m); err != nil {
		return nil, err
	}

	if opts.Lockfile != "" {
		lf := make(types.Lockfile, len(m.Projects))
		for _, p := range m.Projects {
			lf[p.Path] = nil
		}
		if err := manifest.WriteLockfile(fs, opts.Lockfile, lf); err != nil {
			return nil, err
		}
	}

	result := &SnapshotResult{
		Output:   opts.Output,
		Lockfile: opts.Lockfile,
		Branches: branches,
		Projects: len(m.Projects),
	}

	log.Info().
		Str("command", "Snapshot").
		Str("output", opts.Output).
		Int("projects", result.Projects).
		Msg("Command finished")
	return result, nil
}

// parseBranchSpec splits "name" or "name=file" into its parts.
func parseBranchSpec(spec, defaultFile string) (string, string, error) {
	branch, file, found := strings.Cut(spec, "=")
	if !found {
		file = defaultFile
	}
	if branch == "" || file == "" {
		return "", "", errors.Newf(errors.ErrInvalidInput, "malformed branch spec %q", spec)
	}
	return branch, file, nil
}
