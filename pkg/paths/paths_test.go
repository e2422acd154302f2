package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		workspaceRoot string
		envSetup      map[string]string
		validate      func(t *testing.T, p Paths)
	}{
		{
			name:          "explicit workspace root",
			workspaceRoot: "/tmp/os-tree",
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/tmp/os-tree", p.WorkspaceRoot())
			},
		},
		{
			name: "from TREESMITH_ROOT env",
			envSetup: map[string]string{
				EnvWorkspaceRoot: "/env/os-tree",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/env/os-tree", p.WorkspaceRoot())
			},
		},
		{
			name: "git repository or fallback",
			validate: func(t *testing.T, p Paths) {
				// Either the enclosing git root or the working directory.
				assert.NotEmpty(t, p.WorkspaceRoot())
				assert.True(t, filepath.IsAbs(p.WorkspaceRoot()), "root %s", p.WorkspaceRoot())
			},
		},
		{
			name:          "expand tilde in explicit path",
			workspaceRoot: "~/my-tree",
			validate: func(t *testing.T, p Paths) {
				homeDir, _ := os.UserHomeDir()
				assert.Equal(t, filepath.Join(homeDir, "my-tree"), p.WorkspaceRoot())
			},
		},
		{
			name: "custom XDG directories",
			envSetup: map[string]string{
				EnvDataDir:       "/custom/data",
				EnvConfigDir:     "/custom/config",
				EnvCacheDir:      "/custom/cache",
				"XDG_STATE_HOME": "/custom/state",
			},
			validate: func(t *testing.T, p Paths) {
				assert.Equal(t, "/custom/data", p.DataDir())
				assert.Equal(t, "/custom/config", p.ConfigDir())
				assert.Equal(t, "/custom/cache", p.CacheDir())
				assert.Equal(t, "/custom/state/treesmith", p.StateDir())
				assert.Equal(t, "/custom/state/treesmith/treesmith.log", p.LogFilePath())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvWorkspaceRoot, "")
			t.Setenv(EnvDataDir, "")
			t.Setenv(EnvConfigDir, "")
			t.Setenv(EnvCacheDir, "")
			t.Setenv("XDG_STATE_HOME", "")
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			p, err := New(tt.workspaceRoot)
			require.NoError(t, err)
			require.NotNil(t, p)

			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestWorkspacePaths(t *testing.T) {
	p, err := New("/tmp/os-tree")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/os-tree/treesmith.toml", p.ConfigFilePath())
	assert.Equal(t, "/tmp/os-tree/build", p.OutputDir())
}

func TestNormalizePath(t *testing.T) {
	p, err := New("/tmp/os-tree")
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected string
		wantErr  bool
	}{
		{
			name:     "relative path resolved against workspace root",
			path:     "manifests/stable.json",
			expected: "/tmp/os-tree/manifests/stable.json",
		},
		{
			name:     "absolute path left alone",
			path:     "/etc/lockfile.json",
			expected: "/etc/lockfile.json",
		},
		{
			name:     "redundant elements cleaned",
			path:     "manifests/../locks/stable.lock.json",
			expected: "/tmp/os-tree/locks/stable.lock.json",
		},
		{
			name:    "empty path rejected",
			path:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.NormalizePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsInWorkspace(t *testing.T) {
	p, err := New("/tmp/os-tree")
	require.NoError(t, err)

	inside, err := p.IsInWorkspace("manifests/stable.json")
	require.NoError(t, err)
	assert.True(t, inside, "workspace-relative path should be inside")

	outside, err := p.IsInWorkspace("/etc/passwd")
	require.NoError(t, err)
	assert.False(t, outside, "absolute outside path should not be inside")
}

func TestDefaultLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	assert.Equal(t, "/custom/state/treesmith/treesmith.log", DefaultLogFilePath())
}

func TestExpandHome(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"bare tilde", "~", homeDir},
		{"tilde with slash", "~/tree", filepath.Join(homeDir, "tree")},
		{"tilde user unchanged", "~other/tree", "~other/tree"},
		{"no tilde", "/var/tree", "/var/tree"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandHome(tt.path))
		})
	}
}
