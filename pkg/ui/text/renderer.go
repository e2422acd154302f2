// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/treesmith/treesmith/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output   io.Writer
	composer *display.TextRenderer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{
		output:   output,
		composer: display.NewTextRenderer(output),
	}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.CompositionView:
		return r.composer.Render(v)
	case *display.DirListView:
		return r.composer.RenderDirList(v)
	case *display.GenerateResult:
		return r.composer.RenderGenerate(v)
	case *display.SnapshotResult:
		return r.composer.RenderSnapshot(v)
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
