package types

import "sort"

// BranchSettings holds the per-branch configuration of a manifest project.
type BranchSettings struct {
	Repo      Repository        `json:"repo"`
	GitRef    string            `json:"git_ref"`
	Linkfiles map[string]string `json:"linkfiles"` // dst -> src
	Copyfiles map[string]string `json:"copyfiles"` // dst -> src
	Groups    []string          `json:"groups"`
}

// Project is one entry of a manifest snapshot: a repository that occupies
// a path in the composed tree, with settings per tracked branch.
type Project struct {
	Path           string                    `json:"path"`
	Nonfree        bool                      `json:"nonfree"`
	BranchSettings map[string]BranchSettings `json:"branch_settings"`
}

// SettingsFor returns the project's settings for the given branch.
// The second return value reports whether the branch is tracked at all;
// untracked branches exclude the project from composition.
func (p *Project) SettingsFor(branch string) (BranchSettings, bool) {
	s, ok := p.BranchSettings[branch]
	return s, ok
}

// Manifest is an ordered list of projects, as read from a snapshot file.
type Manifest struct {
	Projects []Project
}

// Sort orders the projects by path. Snapshot files are written sorted so
// that regeneration produces stable diffs.
func (m *Manifest) Sort() {
	sort.Slice(m.Projects, func(i, j int) bool {
		return m.Projects[i].Path < m.Projects[j].Path
	})
}

// Lockfile maps project paths to pinned fetch descriptors. A nil entry
// means the updater could not pin the project for this branch; composition
// treats that the same as a missing entry.
type Lockfile map[string]*SourceRef

// ManifestSource names one manifest/lockfile pair contributing directories
// for a single branch. Sources are evaluated in configuration order, with
// later sources overriding earlier ones per directory field.
type ManifestSource struct {
	// Name identifies the source in logs and error messages.
	Name string

	// ManifestPath is the path of the manifest snapshot file.
	ManifestPath string

	// LockfilePath is the path of the lockfile pinning the manifest.
	LockfilePath string

	// Branch selects which branch_settings entry applies. When empty, the
	// globally requested branch is used.
	Branch string
}
