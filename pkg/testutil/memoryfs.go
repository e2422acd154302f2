package testutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/treesmith/treesmith/pkg/filesystem"
	"github.com/treesmith/treesmith/pkg/types"
)

// MemFS returns an in-memory filesystem seeded with the given files.
// Parent directories are created implicitly.
func MemFS(t *testing.T, files map[string]string) types.FS {
	t.Helper()

	fs := filesystem.NewAferoFS(afero.NewMemMapFs())
	for path, content := range files {
		require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
	}
	return fs
}
