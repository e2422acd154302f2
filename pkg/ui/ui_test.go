package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treesmith/treesmith/pkg/ui"
	"github.com/treesmith/treesmith/pkg/ui/display"
)

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name        string
		format      ui.Format
		expectError bool
	}{
		{name: "create terminal renderer", format: ui.FormatTerminal},
		{name: "create text renderer", format: ui.FormatText},
		{name: "create json renderer", format: ui.FormatJSON},
		// Auto with a plain buffer has no terminal to inspect and
		// defaults to the terminal renderer
		{name: "create auto renderer with buffer", format: ui.FormatAuto},
		{name: "invalid format", format: ui.Format(999), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(tt.format, buf)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				assert.Contains(t, err.Error(), "unknown format")
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, renderer)
			}
		})
	}
}

func TestRendererInterface(t *testing.T) {
	formats := []ui.Format{
		ui.FormatTerminal,
		ui.FormatText,
		ui.FormatJSON,
	}

	for _, format := range formats {
		t.Run(format.String()+" renderer implements interface", func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(format, buf)
			require.NoError(t, err)

			err = renderer.RenderMessage("test message")
			assert.NoError(t, err)

			err = renderer.RenderError(assert.AnError)
			assert.NoError(t, err)

			testData := map[string]string{"test": "data"}
			err = renderer.RenderResult(testData)
			assert.NoError(t, err)
		})
	}
}

func TestJSONRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderMessage("hello world")
		assert.NoError(t, err)

		var result map[string]string
		err = json.Unmarshal(buf.Bytes(), &result)
		assert.NoError(t, err)
		assert.Equal(t, "hello world", result["message"])
	})

	t.Run("render error", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderError(assert.AnError)
		assert.NoError(t, err)

		var result map[string]string
		err = json.Unmarshal(buf.Bytes(), &result)
		assert.NoError(t, err)
		assert.Equal(t, assert.AnError.Error(), result["error"])
	})

	t.Run("render composition view", func(t *testing.T) {
		buf.Reset()
		view := &display.CompositionView{
			Branch: "main",
			Entries: []display.EntryView{
				{
					Name:      "kernel",
					RelPath:   "kernel",
					Mechanism: display.MechanismCopy,
					Source:    "/store/kernel",
					Revision:  "k1",
				},
			},
		}
		err := renderer.RenderResult(view)
		assert.NoError(t, err)

		var result display.CompositionView
		err = json.Unmarshal(buf.Bytes(), &result)
		assert.NoError(t, err)
		assert.Equal(t, "main", result.Branch)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "kernel", result.Entries[0].Name)
		assert.Equal(t, display.MechanismCopy, result.Entries[0].Mechanism)
	})
}

func TestTextRendererOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderMessage("hello world")
		assert.NoError(t, err)
		assert.Equal(t, "hello world\n", buf.String())
	})

	t.Run("render error", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderError(assert.AnError)
		assert.NoError(t, err)
		assert.Equal(t, "Error: assert.AnError general error for testing\n", buf.String())
	})

	t.Run("render composition view", func(t *testing.T) {
		buf.Reset()
		view := &display.CompositionView{
			Branch: "main",
			Entries: []display.EntryView{
				{Mechanism: display.MechanismAlias, RelPath: "vendor/x", Source: "/store/x"},
			},
		}
		err := renderer.RenderResult(view)
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "branch main")
		assert.Contains(t, buf.String(), "vendor/x")
	})

	t.Run("render unknown result type", func(t *testing.T) {
		buf.Reset()
		unknownData := map[string]string{"foo": "bar"}
		err := renderer.RenderResult(unknownData)
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "map[foo:bar]")
	})
}

func TestTerminalRendererOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatTerminal, buf)
	require.NoError(t, err)

	t.Run("render message", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderMessage("hello world")
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "hello world")
	})

	t.Run("render error", func(t *testing.T) {
		buf.Reset()
		err := renderer.RenderError(assert.AnError)
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "assert.AnError")
	})

	t.Run("render composition view", func(t *testing.T) {
		buf.Reset()
		view := &display.CompositionView{
			Branch: "main",
			Entries: []display.EntryView{
				{Mechanism: display.MechanismCopy, RelPath: "kernel", Source: "/store/kernel", PatchSteps: 1},
			},
		}
		err := renderer.RenderResult(view)
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "kernel")
		assert.Contains(t, buf.String(), "patches: 1")
	})

	t.Run("render generate result", func(t *testing.T) {
		buf.Reset()
		res := &display.GenerateResult{
			OutputDir: "build",
			Artifacts: []string{"unpack.sh", "patch.sh"},
			DryRun:    true,
		}
		err := renderer.RenderResult(res)
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "would generate 2 artifacts in build")
		assert.Contains(t, buf.String(), "unpack.sh")
	})

	t.Run("render unknown result type", func(t *testing.T) {
		buf.Reset()
		unknownData := map[string]string{"foo": "bar"}
		err := renderer.RenderResult(unknownData)
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "map[foo:bar]")
	})
}
