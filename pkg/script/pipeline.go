package script

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/treesmith/treesmith/pkg/compose"
	"github.com/treesmith/treesmith/pkg/errors"
	"github.com/treesmith/treesmith/pkg/types"
)

// ValidatePostPatch parses a postPatch snippet as bash. Snippets are
// embedded verbatim in generated scripts, so a syntax error must be
// caught at generation time, not when the script runs.
func ValidatePostPatch(snippet string) error {
	_, err := syntax.NewParser().Parse(strings.NewReader(snippet), "postPatch")
	return err
}

// validateSteps checks a directory's patch pipeline before emission.
func validateSteps(d *types.Directory) error {
	for _, p := range d.Patches {
		if strings.TrimSpace(p) == "" {
			return errors.Newf(errors.ErrPatchInvalid, "directory %s has an empty patch path", d.Name)
		}
	}
	for _, p := range d.GitPatches {
		if strings.TrimSpace(p) == "" {
			return errors.Newf(errors.ErrPatchInvalid, "directory %s has an empty git patch path", d.Name)
		}
	}
	if d.PostPatch != "" {
		if err := ValidatePostPatch(d.PostPatch); err != nil {
			return errors.Wrapf(err, errors.ErrPatchInvalid, "directory %s: postPatch does not parse", d.Name)
		}
	}
	return nil
}

// emitPatchSteps writes the ordered patch pipeline for one entry:
// strict unified-diff patches first, then git patches, then the
// postPatch snippet with the directory as working directory. With
// markers, every step is preceded by an echo naming the directory and
// the patch, so a failing step can be located from script output.
func emitPatchSteps(b *builder, en *compose.Entry, markers bool) {
	d := en.Dir

	// Strict application: one-level strip, no fuzz, no backup files.
	// Context drift fails here and must be fixed or moved to gitPatches.
	for _, p := range d.Patches {
		if markers {
			b.cmd("echo", fmt.Sprintf("Applying %s to %s", p, en.RelPath))
		}
		b.cmd("patch", "-d", en.RelPath, "-p1", "--no-backup-if-mismatch", "--fuzz=0", "-i", p)
	}

	// Git patches go through a throwaway repository so git apply can
	// fall back to a content-based three-way merge when line numbers
	// have drifted.
	if len(d.GitPatches) > 0 {
		b.line("(")
		b.linef("  cd %s", b.quote(en.RelPath))
		b.line("  git init -q")
		b.line("  git add -A")
		b.linef("  %s", b.quotedLine("git", "-c", "user.name=treesmith", "-c", "user.email=treesmith@localhost", "commit", "-q", "-m", "import"))
		for _, p := range d.GitPatches {
			if markers {
				b.linef("  %s", b.quotedLine("echo", fmt.Sprintf("Applying %s to %s", p, en.RelPath)))
			}
			b.linef("  %s", b.quotedLine("git", "apply", "--3way", "--whitespace=nowarn", p))
		}
		b.line("  rm -rf .git")
		b.line(")")
	}

	if d.PostPatch != "" {
		if markers {
			b.cmd("echo", "Running postPatch in "+en.RelPath)
		}
		// The snippet is embedded verbatim at column zero: indenting
		// it could break heredocs.
		b.line("(")
		b.linef("cd %s", b.quote(en.RelPath))
		b.line(strings.TrimRight(d.PostPatch, "\n"))
		b.line(")")
	}
}
