// pkg/commands/list/list_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test the ListDirs command inventory and the All switch

package list_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treesmith/treesmith/pkg/commands/list"
	"github.com/treesmith/treesmith/pkg/config"
	"github.com/treesmith/treesmith/pkg/testutil"
	"github.com/treesmith/treesmith/pkg/types"
)

const listManifest = `[
  {
    "path": "kernel",
    "nonfree": false,
    "branch_settings": {
      "main": {
        "repo": {"url": "https://example/kernel.git"},
        "git_ref": "refs/heads/main",
        "linkfiles": {},
        "copyfiles": {},
        "groups": ["bsp"]
      }
    }
  },
  {
    "path": "vendor/x",
    "nonfree": true,
    "branch_settings": {
      "main": {
        "repo": {"url": "https://example/x.git"},
        "git_ref": "refs/heads/main",
        "linkfiles": {},
        "copyfiles": {},
        "groups": ["nonfree"]
      }
    }
  }
]`

const listLockfile = `{
  "kernel": {"url": "https://example/kernel.git", "rev": "k1", "date": "", "path": "/store/kernel", "hash": "sha256-K", "fetchLFS": false, "fetchSubmodules": false, "deepClone": false, "leaveDotGit": false},
  "vendor/x": {"url": "https://example/x.git", "rev": "x1", "date": "", "path": "/store/x", "hash": "sha256-X", "fetchLFS": false, "fetchSubmodules": false, "deepClone": false, "leaveDotGit": false}
}`

func listFixture(t *testing.T) (*config.Config, types.FS) {
	t.Helper()
	fs := testutil.MemFS(t, map[string]string{
		"/ws/platform.json":      listManifest,
		"/ws/platform.lock.json": listLockfile,
	})

	cfg := config.Default()
	cfg.Branch = "main"
	cfg.ExcludeGroups = []string{"nonfree"}
	cfg.Sources = []config.SourceConfig{
		{Name: "platform", Manifest: "platform.json", Lockfile: "platform.lock.json"},
	}
	return cfg, fs
}

func TestListDirs(t *testing.T) {
	cfg, fs := listFixture(t)

	result, err := list.ListDirs(list.ListDirsOptions{
		Config:     cfg,
		RootDir:    "/ws",
		FileSystem: fs,
	})
	require.NoError(t, err)

	assert.Equal(t, "main", result.Branch)
	require.Len(t, result.Dirs, 1)
	assert.Equal(t, "kernel", result.Dirs[0].Name)
	assert.Equal(t, "kernel", result.Dirs[0].RelPath)
	assert.Equal(t, []string{"bsp"}, result.Dirs[0].Groups)
	assert.True(t, result.Dirs[0].Enabled)
}

func TestListDirsAll(t *testing.T) {
	cfg, fs := listFixture(t)

	result, err := list.ListDirs(list.ListDirsOptions{
		Config:     cfg,
		RootDir:    "/ws",
		All:        true,
		FileSystem: fs,
	})
	require.NoError(t, err)

	require.Len(t, result.Dirs, 2)
	assert.Equal(t, "kernel", result.Dirs[0].Name)
	assert.True(t, result.Dirs[0].Enabled)
	assert.Equal(t, "vendor/x", result.Dirs[1].Name)
	assert.False(t, result.Dirs[1].Enabled)
}

func TestListDirsRelPathOverride(t *testing.T) {
	cfg, fs := listFixture(t)
	cfg.Dirs = map[string]config.DirConfig{
		"kernel": {RelPath: "kernel/common"},
	}

	result, err := list.ListDirs(list.ListDirsOptions{
		Config:     cfg,
		RootDir:    "/ws",
		FileSystem: fs,
	})
	require.NoError(t, err)

	require.Len(t, result.Dirs, 1)
	assert.Equal(t, "kernel", result.Dirs[0].Name)
	assert.Equal(t, "kernel/common", result.Dirs[0].RelPath)
}
