package style

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents one adaptive color definition in the palette file
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// The palette ships embedded so the binary never hunts for data files
// at runtime.
//
//go:embed palette.yaml
var paletteYAML []byte

// Colors resolved from the embedded palette, using AdaptiveColor for
// automatic light/dark mode switching
var (
	PrimaryColor   lipgloss.AdaptiveColor
	SecondaryColor lipgloss.AdaptiveColor

	SuccessColor lipgloss.AdaptiveColor
	ErrorColor   lipgloss.AdaptiveColor
	WarningColor lipgloss.AdaptiveColor
	InfoColor    lipgloss.AdaptiveColor

	HeadingColor lipgloss.AdaptiveColor
	TextColor    lipgloss.AdaptiveColor
	MutedColor   lipgloss.AdaptiveColor

	BackgroundColor lipgloss.AdaptiveColor
	SurfaceColor    lipgloss.AdaptiveColor
	BorderColor     lipgloss.AdaptiveColor

	// Materialization specific colors
	AliasColor       lipgloss.AdaptiveColor
	CopyColor        lipgloss.AdaptiveColor
	PatchColor       lipgloss.AdaptiveColor
	PlaceholderColor lipgloss.AdaptiveColor
)

func init() {
	if err := loadPalette(paletteYAML); err != nil {
		panic(fmt.Sprintf("style: embedded palette is invalid: %v", err))
	}
	initStyles()
}

// loadPalette parses the palette and resolves every color the styles
// refer to. A color missing from the file is an error; extra colors in
// the file are ignored.
func loadPalette(data []byte) error {
	var palette struct {
		Colors map[string]ColorDef `yaml:"colors"`
	}
	if err := yaml.Unmarshal(data, &palette); err != nil {
		return err
	}

	bindings := []struct {
		name string
		dst  *lipgloss.AdaptiveColor
	}{
		{"primary", &PrimaryColor},
		{"secondary", &SecondaryColor},
		{"success", &SuccessColor},
		{"error", &ErrorColor},
		{"warning", &WarningColor},
		{"info", &InfoColor},
		{"heading", &HeadingColor},
		{"text", &TextColor},
		{"muted", &MutedColor},
		{"background", &BackgroundColor},
		{"surface", &SurfaceColor},
		{"border", &BorderColor},
		{"alias", &AliasColor},
		{"copy", &CopyColor},
		{"patch", &PatchColor},
		{"placeholder", &PlaceholderColor},
	}

	// Resolve everything before assigning anything, so a bad palette
	// never leaves the colors half loaded.
	resolved := make([]lipgloss.AdaptiveColor, len(bindings))
	for i, b := range bindings {
		def, ok := palette.Colors[b.name]
		if !ok {
			return fmt.Errorf("palette has no color %q", b.name)
		}
		resolved[i] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}
	for i, b := range bindings {
		*b.dst = resolved[i]
	}
	return nil
}
