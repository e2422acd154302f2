package manifest

import (
	"encoding/json"

	"github.com/treesmith/treesmith/pkg/errors"
	"github.com/treesmith/treesmith/pkg/types"
)

// WriteSnapshot writes a manifest snapshot as pretty-printed JSON,
// sorted by project path. Sorting keeps regenerated snapshots diffable.
func WriteSnapshot(fs types.FS, path string, m *types.Manifest) error {
	m.Sort()

	data, err := json.MarshalIndent(m.Projects, "", "  ")
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to serialize manifest %s", path)
	}

	if err := fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrSnapshotWrite, "failed to write manifest %s", path)
	}

	return nil
}

// WriteLockfile writes a lockfile as pretty-printed JSON. Unpinnable
// entries are preserved as null so reruns of the updater see them.
func WriteLockfile(fs types.FS, path string, lf types.Lockfile) error {
	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to serialize lockfile %s", path)
	}

	if err := fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrSnapshotWrite, "failed to write lockfile %s", path)
	}

	return nil
}
