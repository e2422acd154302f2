package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles, built from the palette during package init
var (
	// Headers and titles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style

	// Text styles
	NormalStyle lipgloss.Style
	MutedStyle  lipgloss.Style

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style

	// Box and container styles
	BoxStyle lipgloss.Style

	// List styles
	ListItemStyle lipgloss.Style

	// Code and path styles
	CodeStyle lipgloss.Style
	PathStyle lipgloss.Style
)

// Materialization mechanism styles
var (
	AliasStyle       lipgloss.Style
	CopyStyle        lipgloss.Style
	PatchStyle       lipgloss.Style
	PlaceholderStyle lipgloss.Style
)

// Operation indicator styles
var (
	SuccessIndicator string
	ErrorIndicator   string
	WarningIndicator string
	InfoIndicator    string
	PendingIndicator string
)

// initStyles builds the style set. Called from init after the palette
// colors are resolved, so styles never capture zero-value colors.
func initStyles() {
	TitleStyle = lipgloss.NewStyle().
		Foreground(HeadingColor).
		Bold(true).
		MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(HeadingColor).
		Bold(true)

	NormalStyle = lipgloss.NewStyle().
		Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessColor).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)

	InfoStyle = lipgloss.NewStyle().
		Foreground(InfoColor)

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(1, 2)

	ListItemStyle = lipgloss.NewStyle().
		PaddingLeft(2)

	CodeStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Background(SurfaceColor).
		Padding(0, 1)

	PathStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Italic(true)

	AliasStyle = lipgloss.NewStyle().
		Foreground(AliasColor).
		Bold(true)

	CopyStyle = lipgloss.NewStyle().
		Foreground(CopyColor).
		Bold(true)

	PatchStyle = lipgloss.NewStyle().
		Foreground(PatchColor).
		Bold(true)

	PlaceholderStyle = lipgloss.NewStyle().
		Foreground(PlaceholderColor).
		Bold(true)

	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator = InfoStyle.Render("•")
	PendingIndicator = MutedStyle.Render("○")
}

// Helper functions
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

func Italic(s string) string {
	return lipgloss.NewStyle().Italic(true).Render(s)
}

func Underline(s string) string {
	return lipgloss.NewStyle().Underline(true).Render(s)
}
