// pkg/ui/display/simple_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test plain text rendering of view structures

package display_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treesmith/treesmith/pkg/ui/display"
)

func TestTextRendererComposition(t *testing.T) {
	view := &display.CompositionView{
		Branch: "main",
		Entries: []display.EntryView{
			{
				Mechanism:  display.MechanismCopy,
				RelPath:    "kernel",
				Source:     "/store/kernel",
				Revision:   "k1",
				PatchSteps: 2,
			},
			{
				Mechanism:    display.MechanismAlias,
				RelPath:      "vendor/x",
				Source:       "/store/vendor-x",
				Placeholders: []string{"sub"},
				Nested:       true,
			},
		},
		Disabled: []string{"vendor/nonfree"},
	}

	var buf bytes.Buffer
	require.NoError(t, display.NewTextRenderer(&buf).Render(view))
	out := buf.String()

	assert.Contains(t, out, "branch main")
	assert.Contains(t, out, "copy")
	assert.Contains(t, out, "kernel")
	assert.Contains(t, out, "/store/kernel [rev=k1] [patches=2]")
	assert.Contains(t, out, "[placeholders=1] [nested]")
	assert.Contains(t, out, "disabled: vendor/nonfree")
}

func TestTextRendererEmptyComposition(t *testing.T) {
	var buf bytes.Buffer
	view := &display.CompositionView{Branch: "other"}
	require.NoError(t, display.NewTextRenderer(&buf).Render(view))

	assert.Contains(t, buf.String(), "No directories enabled")
}

func TestTextRendererNilView(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.NewTextRenderer(&buf).Render(nil))
	assert.Empty(t, buf.String())
}

func TestTextRendererEntryWithoutSource(t *testing.T) {
	view := &display.CompositionView{
		Branch: "main",
		Entries: []display.EntryView{
			{Mechanism: display.MechanismEmpty, RelPath: "out"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, display.NewTextRenderer(&buf).Render(view))
	assert.Contains(t, buf.String(), "(no source)")
}

func TestTextRendererGenerate(t *testing.T) {
	res := &display.GenerateResult{
		Branch:    "main",
		OutputDir: "build",
		Artifacts: []string{"unpack.sh", "patch.sh"},
	}

	var buf bytes.Buffer
	require.NoError(t, display.NewTextRenderer(&buf).RenderGenerate(res))
	out := buf.String()

	assert.Contains(t, out, "generate\n")
	assert.Contains(t, out, "build/unpack.sh")
	assert.Contains(t, out, "build/patch.sh")
	assert.NotContains(t, out, "dry run")
}

func TestTextRendererGenerateDryRun(t *testing.T) {
	res := &display.GenerateResult{
		OutputDir: "build",
		Artifacts: []string{"unpack.sh"},
		DryRun:    true,
	}

	var buf bytes.Buffer
	require.NoError(t, display.NewTextRenderer(&buf).RenderGenerate(res))
	assert.Contains(t, buf.String(), "generate (dry run)")
}

func TestTextRendererSnapshot(t *testing.T) {
	res := &display.SnapshotResult{
		Output:   "manifest.json",
		Lockfile: "manifest.lock",
		Branches: []string{"main", "legacy"},
		Projects: 41,
	}

	var buf bytes.Buffer
	require.NoError(t, display.NewTextRenderer(&buf).RenderSnapshot(res))
	out := buf.String()

	assert.Contains(t, out, "wrote manifest.json (41 projects, branches: main, legacy)")
	assert.Contains(t, out, "wrote manifest.lock (unpinned)")
}
