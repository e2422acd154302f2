package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// Mechanism describes how a directory is materialized in the tree
type Mechanism string

const (
	MechanismAlias Mechanism = "alias" // Symlink into the snapshot store
	MechanismCopy  Mechanism = "copy"  // Private writable copy of the snapshot
	MechanismEmpty Mechanism = "empty" // Created empty, no source snapshot
)

// MechanismVerbs defines the description verb for each materialization mechanism
var MechanismVerbs = map[Mechanism]string{
	MechanismAlias: "aliased to",
	MechanismCopy:  "copied from",
	MechanismEmpty: "created empty",
}

// MechanismStyle returns the appropriate pterm style for a mechanism
func MechanismStyle(m Mechanism) *pterm.Style {
	switch m {
	case MechanismAlias:
		return pterm.NewStyle(pterm.FgCyan)
	case MechanismCopy:
		return pterm.NewStyle(pterm.FgYellow)
	case MechanismEmpty:
		return pterm.NewStyle(pterm.FgGray)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// EntryLine represents one enabled directory in a composed tree
type EntryLine struct {
	Mechanism    Mechanism // How the directory is materialized
	RelPath      string    // Destination relative to the tree root
	Source       string    // Snapshot path or URL the content comes from
	Revision     string    // Source revision, if known
	PatchSteps   int       // Total patch, gitPatch and postPatch steps
	Placeholders int       // Placeholder children created under this directory
	Nested       bool      // True when mounted inside another enabled directory
}

// TreeSummary represents the rendered overview of one composed tree
type TreeSummary struct {
	Branch   string
	Entries  []EntryLine
	Disabled []string // Enumerated but excluded by group filtering or overrides
}

// RenderEntryLine renders a single directory entry line
func RenderEntryLine(el EntryLine) string {
	// Format mechanism name with appropriate width
	mechName := fmt.Sprintf("%-6s", string(el.Mechanism))

	// Apply mechanism color to the name
	styledMech := MechanismStyle(el.Mechanism).Sprint(mechName)

	relPath := fmt.Sprintf("%-30s", el.RelPath)

	// Build the description message
	var msg string
	verb := MechanismVerbs[el.Mechanism]
	if el.Mechanism == MechanismEmpty || el.Source == "" {
		msg = MechanismVerbs[MechanismEmpty]
	} else {
		msg = fmt.Sprintf("%s %s", verb, el.Source)
		if el.Revision != "" {
			msg += fmt.Sprintf(" @ %s", shortRevision(el.Revision))
		}
	}

	var notes []string
	if el.PatchSteps > 0 {
		notes = append(notes, fmt.Sprintf("patches: %d", el.PatchSteps))
	}
	if el.Placeholders > 0 {
		notes = append(notes, fmt.Sprintf("placeholders: %d", el.Placeholders))
	}
	if el.Nested {
		notes = append(notes, "nested")
	}
	if len(notes) > 0 {
		msg += " (" + strings.Join(notes, ", ") + ")"
	}

	return fmt.Sprintf("    %s : %s : %s", styledMech, relPath, msg)
}

// RenderTreeSummary renders a complete composed tree overview
func RenderTreeSummary(ts TreeSummary) string {
	var result strings.Builder

	header := fmt.Sprintf("branch %s: %d directories", ts.Branch, len(ts.Entries))
	result.WriteString(SubtitleStyle.Render(header) + "\n")

	for _, el := range ts.Entries {
		result.WriteString(RenderEntryLine(el) + "\n")
	}

	if counts := countMechanisms(ts.Entries); counts != "" {
		result.WriteString(Indent(counts, 2) + "\n")
	}

	if len(ts.Disabled) > 0 {
		line := fmt.Sprintf("disabled: %s", strings.Join(ts.Disabled, ", "))
		result.WriteString(Indent(MutedStyle.Render(line), 2) + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// countMechanisms summarizes how the entries are materialized
func countMechanisms(entries []EntryLine) string {
	var aliased, copied, patched int
	for _, el := range entries {
		switch el.Mechanism {
		case MechanismAlias:
			aliased++
		case MechanismCopy:
			copied++
		}
		if el.PatchSteps > 0 {
			patched++
		}
	}
	if aliased == 0 && copied == 0 && patched == 0 {
		return ""
	}
	return fmt.Sprintf("%d aliased, %d copied, %d patched", aliased, copied, patched)
}

// shortRevision truncates long revisions to something readable
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
