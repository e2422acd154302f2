package display

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// TextRenderer provides minimal text output for treesmith commands
type TextRenderer struct {
	writer io.Writer
}

// NewTextRenderer creates a new text renderer
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{
		writer: w,
	}
}

// Render outputs the CompositionView in a simple text format
func (r *TextRenderer) Render(view *CompositionView) error {
	if view == nil {
		return nil
	}

	if _, err := fmt.Fprintf(r.writer, "branch %s\n", view.Branch); err != nil {
		return err
	}

	if len(view.Entries) == 0 {
		_, err := fmt.Fprintln(r.writer, "No directories enabled")
		return err
	}

	for _, entry := range view.Entries {
		if err := r.renderEntry(entry); err != nil {
			return err
		}
	}

	if len(view.Disabled) > 0 {
		if _, err := fmt.Fprintf(r.writer, "disabled: %s\n", strings.Join(view.Disabled, ", ")); err != nil {
			return err
		}
	}

	return nil
}

// renderEntry renders a single directory entry in a three-column
// format: mechanism : relpath : detail
func (r *TextRenderer) renderEntry(entry EntryView) error {
	detail := entry.Source
	if detail == "" {
		detail = "(no source)"
	}

	if entry.Revision != "" {
		detail += fmt.Sprintf(" [rev=%s]", entry.Revision)
	}
	if entry.PatchSteps > 0 {
		detail += fmt.Sprintf(" [patches=%d]", entry.PatchSteps)
	}
	if len(entry.Placeholders) > 0 {
		detail += fmt.Sprintf(" [placeholders=%d]", len(entry.Placeholders))
	}
	if entry.Nested {
		detail += " [nested]"
	}

	_, err := fmt.Fprintf(r.writer, "    %-6s : %-30s : %s\n",
		entry.Mechanism,
		entry.RelPath,
		detail)
	return err
}

// RenderDirList outputs a DirListView in a simple text format
func (r *TextRenderer) RenderDirList(view *DirListView) error {
	if view == nil {
		return nil
	}

	if _, err := fmt.Fprintf(r.writer, "branch %s\n", view.Branch); err != nil {
		return err
	}

	if len(view.Dirs) == 0 {
		_, err := fmt.Fprintln(r.writer, "No directories")
		return err
	}

	for _, d := range view.Dirs {
		state := "enabled"
		if !d.Enabled {
			state = "disabled"
		}
		detail := d.RelPath
		if len(d.Groups) > 0 {
			detail += fmt.Sprintf(" (groups: %s)", strings.Join(d.Groups, ", "))
		}
		if _, err := fmt.Fprintf(r.writer, "    %-30s : %-8s : %s\n", d.Name, state, detail); err != nil {
			return err
		}
	}

	return nil
}

// RenderGenerate outputs a GenerateResult in a simple text format
func (r *TextRenderer) RenderGenerate(res *GenerateResult) error {
	if res == nil {
		return nil
	}

	header := "generate"
	if res.DryRun {
		header += " (dry run)"
	}
	if _, err := fmt.Fprintln(r.writer, header); err != nil {
		return err
	}

	for _, name := range res.Artifacts {
		if _, err := fmt.Fprintf(r.writer, "    %s\n", filepath.Join(res.OutputDir, name)); err != nil {
			return err
		}
	}

	return nil
}

// RenderSnapshot outputs a SnapshotResult in a simple text format
func (r *TextRenderer) RenderSnapshot(res *SnapshotResult) error {
	if res == nil {
		return nil
	}

	if _, err := fmt.Fprintf(r.writer, "wrote %s (%d projects, branches: %s)\n",
		res.Output, res.Projects, strings.Join(res.Branches, ", ")); err != nil {
		return err
	}
	if res.Lockfile != "" {
		if _, err := fmt.Fprintf(r.writer, "wrote %s (unpinned)\n", res.Lockfile); err != nil {
			return err
		}
	}
	return nil
}
