// Package display defines the view structures shared by all output
// renderers. Views are plain data built once from a composition;
// rendering them never recomputes composition state.
package display

import (
	"sort"

	"github.com/treesmith/treesmith/pkg/compose"
	"github.com/treesmith/treesmith/pkg/script"
	"github.com/treesmith/treesmith/pkg/types"
)

// Materialization mechanisms as displayed to the user
const (
	MechanismAlias = "alias"
	MechanismCopy  = "copy"
	MechanismEmpty = "empty"
)

// CompositionView is the top-level structure for commands that inspect
// a composed tree (resolve, list).
type CompositionView struct {
	Branch   string      `json:"branch"`
	Entries  []EntryView `json:"entries"`
	Disabled []string    `json:"disabled,omitempty"`
}

// EntryView represents one enabled directory for display.
type EntryView struct {
	Name         string   `json:"name"`
	RelPath      string   `json:"relPath"`
	Depth        int      `json:"depth"`
	Mechanism    string   `json:"mechanism"`
	Source       string   `json:"source,omitempty"`
	URL          string   `json:"url,omitempty"`
	Revision     string   `json:"revision,omitempty"`
	Groups       []string `json:"groups,omitempty"`
	PatchSteps   int      `json:"patchSteps,omitempty"`
	Placeholders []string `json:"placeholders,omitempty"`
	Nested       bool     `json:"nested,omitempty"`
}

// DirListView is the inventory view of the list command: every
// directory with its tags and enablement, in name order.
type DirListView struct {
	Branch string    `json:"branch"`
	Dirs   []DirItem `json:"dirs"`
}

// DirItem is one directory row of a DirListView.
type DirItem struct {
	Name    string   `json:"name"`
	RelPath string   `json:"relPath"`
	Groups  []string `json:"groups,omitempty"`
	Enabled bool     `json:"enabled"`
}

// GenerateResult holds the result of the generate command.
type GenerateResult struct {
	Branch    string   `json:"branch"`
	OutputDir string   `json:"outputDir"`
	Artifacts []string `json:"artifacts"`
	DryRun    bool     `json:"dryRun"`
}

// SnapshotResult holds the result of the snapshot command.
type SnapshotResult struct {
	Output   string   `json:"output"`
	Lockfile string   `json:"lockfile,omitempty"`
	Branches []string `json:"branches"`
	Projects int      `json:"projects"`
}

// NewCompositionView converts a composition into its display form.
// Disabled lists the directories that were enumerated but excluded by
// group filtering or an explicit enable override.
func NewCompositionView(comp *compose.Composition) *CompositionView {
	view := &CompositionView{
		Branch:  comp.Branch,
		Entries: make([]EntryView, 0, len(comp.Entries)),
	}

	enabled := make(map[string]bool, len(comp.Entries))
	for _, en := range comp.Entries {
		enabled[en.Dir.Name] = true
		view.Entries = append(view.Entries, newEntryView(en))
	}

	for name := range comp.Dirs {
		if !enabled[name] {
			view.Disabled = append(view.Disabled, name)
		}
	}
	sort.Strings(view.Disabled)

	return view
}

func newEntryView(en *compose.Entry) EntryView {
	d := en.Dir
	ev := EntryView{
		Name:         d.Name,
		RelPath:      en.RelPath,
		Depth:        en.Depth,
		Mechanism:    mechanismFor(en),
		Groups:       d.Groups,
		PatchSteps:   patchSteps(d),
		Placeholders: en.Placeholders,
		Nested:       en.Nested,
	}
	if d.Src != nil {
		ev.Source = d.Src.Path
		ev.URL = d.Src.URL
		ev.Revision = d.Src.Rev
	}
	return ev
}

// mechanismFor classifies how the unpack script will materialize the
// entry. The copy-versus-alias rule is owned by the script package.
func mechanismFor(en *compose.Entry) string {
	switch {
	case en.Dir.Src == nil:
		return MechanismEmpty
	case script.MustCopy(en):
		return MechanismCopy
	default:
		return MechanismAlias
	}
}

// patchSteps counts the patch pipeline steps of a directory.
func patchSteps(d *types.Directory) int {
	n := len(d.Patches) + len(d.GitPatches)
	if d.PostPatch != "" {
		n++
	}
	return n
}
