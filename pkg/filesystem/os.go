package filesystem

import (
	"io/fs"
	"os"

	"github.com/treesmith/treesmith/pkg/types"
)

// osFS passes types.FS calls straight to the os package.
type osFS struct{}

// NewOS returns the FS backed by the real filesystem.
func NewOS() types.FS {
	return osFS{}
}

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (osFS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }
