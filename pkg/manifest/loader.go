package manifest

import (
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/treesmith/treesmith/pkg/errors"
	"github.com/treesmith/treesmith/pkg/logging"
	"github.com/treesmith/treesmith/pkg/types"
)

// cacheSize bounds the number of parsed files kept per cache. Workspaces
// rarely have more than a handful of manifest/lockfile pairs, but debug
// and full generation in one run load each of them twice.
const cacheSize = 32

// Loader reads manifest snapshots and lockfiles through a small LRU
// cache, so that sources sharing a lockfile parse it once.
type Loader struct {
	fs        types.FS
	manifests *lru.Cache[string, *types.Manifest]
	lockfiles *lru.Cache[string, types.Lockfile]
}

// NewLoader creates a Loader reading through the given filesystem.
func NewLoader(fs types.FS) *Loader {
	manifests, _ := lru.New[string, *types.Manifest](cacheSize)
	lockfiles, _ := lru.New[string, types.Lockfile](cacheSize)
	return &Loader{
		fs:        fs,
		manifests: manifests,
		lockfiles: lockfiles,
	}
}

// Manifest loads the manifest snapshot at path.
func (l *Loader) Manifest(path string) (*types.Manifest, error) {
	if m, ok := l.manifests.Get(path); ok {
		return m, nil
	}

	m, err := LoadManifest(l.fs, path)
	if err != nil {
		return nil, err
	}

	l.manifests.Add(path, m)
	return m, nil
}

// Lockfile loads the lockfile at path.
func (l *Loader) Lockfile(path string) (types.Lockfile, error) {
	if lf, ok := l.lockfiles.Get(path); ok {
		return lf, nil
	}

	lf, err := LoadLockfile(l.fs, path)
	if err != nil {
		return nil, err
	}

	l.lockfiles.Add(path, lf)
	return lf, nil
}

// LoadManifest reads and parses a manifest snapshot file.
func LoadManifest(fs types.FS, path string) (*types.Manifest, error) {
	logger := logging.GetLogger("manifest")

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to read manifest %s", path)
	}

	var projects []types.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse manifest %s", path)
	}

	logger.Debug().Str("path", path).Int("projects", len(projects)).Msg("Loaded manifest")
	return &types.Manifest{Projects: projects}, nil
}

// LoadLockfile reads and parses a lockfile.
func LoadLockfile(fs types.FS, path string) (types.Lockfile, error) {
	logger := logging.GetLogger("manifest")

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLockfileLoad, "failed to read lockfile %s", path)
	}

	var lf types.Lockfile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrLockfileParse, "failed to parse lockfile %s", path)
	}

	logger.Debug().Str("path", path).Int("entries", len(lf)).Msg("Loaded lockfile")
	return lf, nil
}
