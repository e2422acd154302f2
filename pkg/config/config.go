package config

import (
	"github.com/treesmith/treesmith/pkg/errors"
	"github.com/treesmith/treesmith/pkg/paths"
	"github.com/treesmith/treesmith/pkg/types"
)

// Config is the fully merged treesmith configuration for one workspace.
type Config struct {
	// Branch is the globally requested branch. Sources without their own
	// branch setting resolve projects against this one.
	Branch string `koanf:"branch"`

	// IncludeGroups switches group filtering to allowlist mode when
	// non-empty: only directories tagged with one of these groups are
	// enabled.
	IncludeGroups []string `koanf:"include_groups"`

	// ExcludeGroups disables directories tagged with any of these groups.
	// Only consulted when IncludeGroups is empty.
	ExcludeGroups []string `koanf:"exclude_groups"`

	// OutputDir is where generated scripts are written, resolved against
	// the workspace root when relative.
	OutputDir string `koanf:"output_dir"`

	// WorkDir is where fetchers place downloaded content. Composition
	// never reads it; it is parsed so the key is reserved for the
	// fetch tooling that consumes the generated scripts.
	WorkDir string `koanf:"work_dir"`

	// Sources are the manifest/lockfile pairs contributing directories,
	// in override order.
	Sources []SourceConfig `koanf:"source"`

	// Dirs holds explicit per-directory overrides, applied after all
	// manifest sources.
	Dirs map[string]DirConfig `koanf:"dirs"`
}

// SourceConfig names one manifest/lockfile pair in treesmith.toml.
type SourceConfig struct {
	Name     string `koanf:"name"`
	Manifest string `koanf:"manifest"`
	Lockfile string `koanf:"lockfile"`
	Branch   string `koanf:"branch"`
}

// DirConfig is the user-facing override form of a directory. Zero values
// mean "no override" for every field except Enable, which distinguishes
// unset (nil) from explicit false.
type DirConfig struct {
	Enable     *bool             `koanf:"enable"`
	RelPath    string            `koanf:"relpath"`
	Src        *SrcConfig        `koanf:"src"`
	Patches    []string          `koanf:"patches"`
	GitPatches []string          `koanf:"git_patches"`
	PostPatch  string            `koanf:"post_patch"`
	Copyfiles  map[string]string `koanf:"copyfiles"`
	Linkfiles  map[string]string `koanf:"linkfiles"`
	Groups     []string          `koanf:"groups"`
}

// SrcConfig pins a directory's content directly from treesmith.toml,
// bypassing the lockfile.
type SrcConfig struct {
	URL             string `koanf:"url"`
	Rev             string `koanf:"rev"`
	Date            string `koanf:"date"`
	Path            string `koanf:"path"`
	Hash            string `koanf:"hash"`
	FetchLFS        bool   `koanf:"fetch_lfs"`
	FetchSubmodules bool   `koanf:"fetch_submodules"`
	DeepClone       bool   `koanf:"deep_clone"`
	LeaveDotGit     bool   `koanf:"leave_dot_git"`
}

// Default returns the configuration with built-in defaults only.
func Default() *Config {
	return &Config{
		OutputDir: "build",
	}
}

// Validate checks the configuration for problems that would make
// composition meaningless or ambiguous.
func (c *Config) Validate() error {
	if c.Branch == "" {
		return errors.New(errors.ErrConfigValid, "branch must be set")
	}

	if len(c.Sources) == 0 && len(c.Dirs) == 0 {
		return errors.New(errors.ErrConfigValid, "at least one manifest source or dirs entry is required")
	}

	seen := make(map[string]string, len(c.Sources))
	for i, s := range c.Sources {
		if s.Manifest == "" {
			return errors.Newf(errors.ErrConfigValid, "source %d (%s) has no manifest path", i, s.Name)
		}
		if s.Lockfile == "" {
			return errors.Newf(errors.ErrConfigValid, "source %d (%s) has no lockfile path", i, s.Name)
		}
		if s.Name != "" {
			if _, dup := seen[s.Name]; dup {
				return errors.Newf(errors.ErrConfigValid, "duplicate source name %q", s.Name)
			}
			seen[s.Name] = s.Manifest
		}
	}

	for name, d := range c.Dirs {
		if err := paths.ValidateTreePath(name); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "dirs entry %q", name)
		}
		if d.RelPath != "" {
			if err := paths.ValidateTreePath(d.RelPath); err != nil {
				return errors.Wrapf(err, errors.ErrConfigValid, "dirs entry %q relpath", name)
			}
		}
	}

	return nil
}

// ManifestSources returns the configured sources as typed values, with
// the global branch filled in where a source does not pin its own.
func (c *Config) ManifestSources() []types.ManifestSource {
	sources := make([]types.ManifestSource, 0, len(c.Sources))
	for _, s := range c.Sources {
		name := s.Name
		if name == "" {
			name = s.Manifest
		}
		branch := s.Branch
		if branch == "" {
			branch = c.Branch
		}
		sources = append(sources, types.ManifestSource{
			Name:         name,
			ManifestPath: s.Manifest,
			LockfilePath: s.Lockfile,
			Branch:       branch,
		})
	}
	return sources
}

// ToDirectory converts a DirConfig override into a directory draft keyed
// by name. Empty fields stay zero so that override merging can tell
// "unset" from "set to empty".
func (d DirConfig) ToDirectory(name string) *types.Directory {
	dir := &types.Directory{
		Name:       name,
		RelPath:    d.RelPath,
		Patches:    append([]string(nil), d.Patches...),
		GitPatches: append([]string(nil), d.GitPatches...),
		PostPatch:  d.PostPatch,
		Groups:     append([]string(nil), d.Groups...),
	}
	if d.Enable != nil {
		v := *d.Enable
		dir.Enable = &v
	}
	if d.Src != nil {
		dir.Src = &types.SourceRef{
			URL:             d.Src.URL,
			Rev:             d.Src.Rev,
			Date:            d.Src.Date,
			Path:            d.Src.Path,
			Hash:            d.Src.Hash,
			FetchLFS:        d.Src.FetchLFS,
			FetchSubmodules: d.Src.FetchSubmodules,
			DeepClone:       d.Src.DeepClone,
			LeaveDotGit:     d.Src.LeaveDotGit,
		}
	}
	if d.Copyfiles != nil {
		dir.Copyfiles = make(map[string]string, len(d.Copyfiles))
		for k, v := range d.Copyfiles {
			dir.Copyfiles[k] = v
		}
	}
	if d.Linkfiles != nil {
		dir.Linkfiles = make(map[string]string, len(d.Linkfiles))
		for k, v := range d.Linkfiles {
			dir.Linkfiles[k] = v
		}
	}
	return dir
}
