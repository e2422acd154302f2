package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"

	"github.com/treesmith/treesmith/pkg/types"
)

// aferoFS adapts an afero.Fs to types.FS, mainly for the in-memory
// filesystem tests run against.
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS wraps fs as a types.FS.
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

// ReadFile rejects directories itself: afero's MemMapFs hands back
// empty content for them instead of an error.
func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}
