package types

import (
	"io/fs"
)

// FS is the filesystem surface composition needs: reading manifest,
// lockfile and patch inputs, and writing generated artifacts. The
// assembled tree itself is only ever mutated by the generated scripts,
// never through this interface.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
}
