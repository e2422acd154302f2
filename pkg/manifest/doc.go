// Package manifest loads manifest snapshots and lockfiles, and imports
// repo-style XML manifests into the snapshot format.
//
// A manifest snapshot is a JSON array of projects, sorted by path. A
// lockfile is a JSON object mapping project paths to pinned fetch
// descriptors; a null value records a path the updater could not pin.
// Both formats are produced by the snapshot updater and consumed by the
// composition engine.
package manifest
