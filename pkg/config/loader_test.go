package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treesmith/treesmith/pkg/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "treesmith.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
branch = "main"
exclude_groups = ["darwin", "mips"]
work_dir = "downloads"

[[source]]
name = "platform"
manifest = "manifests/platform.json"
lockfile = "locks/platform.lock.json"

[[source]]
name = "vendor"
manifest = "manifests/vendor.json"
lockfile = "locks/vendor.lock.json"
branch = "vendor-main"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.Branch)
	assert.Equal(t, []string{"darwin", "mips"}, cfg.ExcludeGroups)
	assert.Empty(t, cfg.IncludeGroups)
	assert.Equal(t, "build", cfg.OutputDir)
	assert.Equal(t, "downloads", cfg.WorkDir)

	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, "platform", cfg.Sources[0].Name)
	assert.Equal(t, "manifests/platform.json", cfg.Sources[0].Manifest)

	sources := cfg.ManifestSources()
	require.Len(t, sources, 2)
	assert.Equal(t, "main", sources[0].Branch, "source without branch uses the global one")
	assert.Equal(t, "vendor-main", sources[1].Branch, "source branch wins over the global one")
}

func TestLoadDirOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
branch = "main"

[[source]]
manifest = "m.json"
lockfile = "l.json"

[dirs."vendor/x"]
enable = false
groups = ["extra"]

[dirs."kernel"]
patches = ["patches/fix-build.patch"]
post_patch = "rm -f Android.bp"

[dirs."kernel".src]
url = "https://example/kernel.git"
rev = "abc123"
hash = "sha256-AAAA"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	require.Contains(t, cfg.Dirs, "vendor/x")
	vx := cfg.Dirs["vendor/x"]
	require.NotNil(t, vx.Enable)
	assert.False(t, *vx.Enable)
	assert.Equal(t, []string{"extra"}, vx.Groups)

	require.Contains(t, cfg.Dirs, "kernel")
	kd := cfg.Dirs["kernel"]
	assert.Nil(t, kd.Enable, "unset enable stays nil")
	assert.Equal(t, []string{"patches/fix-build.patch"}, kd.Patches)
	assert.Equal(t, "rm -f Android.bp", kd.PostPatch)
	require.NotNil(t, kd.Src)
	assert.Equal(t, "abc123", kd.Src.Rev)

	d := kd.ToDirectory("kernel")
	assert.Equal(t, "kernel", d.Name)
	require.NotNil(t, d.Src)
	assert.Equal(t, "https://example/kernel.git", d.Src.URL)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
branch = "main"
output_dir = "out"

[[source]]
manifest = "m.json"
lockfile = "l.json"
`)

	t.Setenv("TREESMITH_BRANCH", "stable")
	t.Setenv("TREESMITH_OUTPUT_DIR", "scripts")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "stable", cfg.Branch)
	assert.Equal(t, "scripts", cfg.OutputDir)
}

func TestLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
branch = "main"
output_dir = "out"

[[source]]
manifest = "m.json"
lockfile = "l.json"
`)

	t.Setenv("TREESMITH_OUTPUT_DIR", "scripts")

	cfg, err := LoadWithOverrides(dir, map[string]interface{}{
		"output_dir": "alt",
	})
	require.NoError(t, err)

	// Overrides win over both the file and the environment.
	assert.Equal(t, "alt", cfg.OutputDir)
	assert.Equal(t, "main", cfg.Branch)
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	// Defaults alone fail validation: no branch, no sources.
	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestLoadParseError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `branch = [not toml`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestHiddenConfigFileWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".treesmith.toml"), []byte(`
branch = "hidden"

[[source]]
manifest = "m.json"
lockfile = "l.json"
`), 0644))
	writeConfig(t, dir, `
branch = "visible"

[[source]]
manifest = "m.json"
lockfile = "l.json"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "hidden", cfg.Branch)
}
