// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/treesmith/treesmith/pkg/style"
	"github.com/treesmith/treesmith/pkg/ui/display"
)

// Renderer provides rich terminal output using the shared style set
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.CompositionView:
		return r.renderComposition(v)
	case *display.DirListView:
		return r.renderDirList(v)
	case *display.GenerateResult:
		return r.renderGenerate(v)
	case *display.SnapshotResult:
		return r.renderSnapshot(v)
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %v\n", style.ErrorStyle.Render("Error:"), err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", style.InfoIndicator, msg)
	return err
}

func (r *Renderer) renderComposition(view *display.CompositionView) error {
	summary := style.TreeSummary{
		Branch:   view.Branch,
		Disabled: view.Disabled,
	}
	for _, entry := range view.Entries {
		summary.Entries = append(summary.Entries, style.EntryLine{
			Mechanism:    style.Mechanism(entry.Mechanism),
			RelPath:      entry.RelPath,
			Source:       entry.Source,
			Revision:     entry.Revision,
			PatchSteps:   entry.PatchSteps,
			Placeholders: len(entry.Placeholders),
			Nested:       entry.Nested,
		})
	}

	_, err := fmt.Fprintln(r.output, style.RenderTreeSummary(summary))
	return err
}

func (r *Renderer) renderDirList(view *display.DirListView) error {
	header := fmt.Sprintf("branch %s: %d directories", view.Branch, len(view.Dirs))
	if _, err := fmt.Fprintln(r.output, style.SubtitleStyle.Render(header)); err != nil {
		return err
	}

	for _, d := range view.Dirs {
		// Pad before styling so ANSI codes do not skew the columns.
		name := fmt.Sprintf("%-30s", d.Name)
		indicator := style.SuccessIndicator
		if !d.Enabled {
			indicator = style.PendingIndicator
			name = style.MutedStyle.Render(name)
		}
		line := fmt.Sprintf("%s %s %s", indicator, name, style.PathStyle.Render(d.RelPath))
		if len(d.Groups) > 0 {
			line += style.MutedStyle.Render(fmt.Sprintf("  [%s]", strings.Join(d.Groups, ", ")))
		}
		if _, err := fmt.Fprintln(r.output, style.Indent(line, 2)); err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) renderGenerate(res *display.GenerateResult) error {
	verb := "generated"
	indicator := style.SuccessIndicator
	if res.DryRun {
		verb = "would generate"
		indicator = style.PendingIndicator
	}

	header := fmt.Sprintf("%s %d artifacts in %s", verb, len(res.Artifacts), res.OutputDir)
	if _, err := fmt.Fprintln(r.output, style.SubtitleStyle.Render(header)); err != nil {
		return err
	}

	for _, name := range res.Artifacts {
		line := fmt.Sprintf("%s %s", indicator, name)
		if _, err := fmt.Fprintln(r.output, style.Indent(line, 2)); err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) renderSnapshot(res *display.SnapshotResult) error {
	line := fmt.Sprintf("%s wrote %s (%d projects)", style.SuccessIndicator, res.Output, res.Projects)
	if _, err := fmt.Fprintln(r.output, line); err != nil {
		return err
	}
	if res.Lockfile != "" {
		line = fmt.Sprintf("%s wrote %s (unpinned)", style.PendingIndicator, res.Lockfile)
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}
