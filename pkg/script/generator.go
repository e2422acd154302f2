package script

import (
	"path"
	"sort"
	"strings"

	"github.com/treesmith/treesmith/pkg/compose"
	"github.com/treesmith/treesmith/pkg/errors"
	"github.com/treesmith/treesmith/pkg/paths"
)

// Generator renders the unpack and patch scripts of a composition.
//
// Patch, copyfile and linkfile paths are embedded as given; callers
// resolve patch files to absolute paths before generation, since the
// scripts run from the root of the assembled tree, not the workspace.
type Generator struct {
	// Under restricts both scripts to directories whose relpath equals
	// this prefix or sits below it. A non-empty prefix also switches to
	// the debug layout: the unpack script materializes raw, unpatched
	// content and the patch script carries every patch step, so a
	// failing patch can be rerun and inspected in place.
	Under string
}

// UnpackScript renders the script that materializes the tree: for each
// directory in parent-before-child order, its snapshot is copied or
// aliased at its relpath, patch steps run in place, placeholder
// mountpoints are created and copyfile/linkfile entries installed.
func (g *Generator) UnpackScript(comp *compose.Composition) (string, error) {
	entries, err := g.entries(comp)
	if err != nil {
		return "", err
	}

	b := &builder{}
	writeHeader(b, "Materializes the composed source tree. Run from the tree root.")
	for _, en := range entries {
		if err := validateSteps(en.Dir); err != nil {
			return "", err
		}
		if err := validateFileEntries(en.Dir.Name, en.Dir.Copyfiles); err != nil {
			return "", err
		}
		if err := validateFileEntries(en.Dir.Name, en.Dir.Linkfiles); err != nil {
			return "", err
		}

		b.blank()
		b.cmd("echo", en.RelPath)
		emitMaterialize(b, en)
		if g.Under == "" {
			emitPatchSteps(b, en, false)
		}
		for _, child := range en.Placeholders {
			b.cmd("mkdir", "-p", en.RelPath+"/"+child)
		}
		emitFileEntries(b, en)
	}
	return b.text()
}

// PatchScript renders the patch pipeline of every directory that has
// one, each step preceded by a marker line. It expects the tree to be
// already unpacked, unpatched, for example by a debug unpack run.
func (g *Generator) PatchScript(comp *compose.Composition) (string, error) {
	entries, err := g.entries(comp)
	if err != nil {
		return "", err
	}

	b := &builder{}
	writeHeader(b, "Applies patch steps to an unpacked tree. Run from the tree root.")
	for _, en := range entries {
		if !en.Dir.HasPatchWork() {
			continue
		}
		if err := validateSteps(en.Dir); err != nil {
			return "", err
		}
		b.blank()
		emitPatchSteps(b, en, true)
	}
	return b.text()
}

// entries returns the composition entries the generator emits, in
// composition order.
func (g *Generator) entries(comp *compose.Composition) ([]*compose.Entry, error) {
	if g.Under == "" {
		return comp.Entries, nil
	}
	if err := paths.ValidateTreePath(g.Under); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "prefix %s", g.Under)
	}

	var out []*compose.Entry
	for _, en := range comp.Entries {
		if en.RelPath == g.Under || strings.HasPrefix(en.RelPath, g.Under+"/") {
			out = append(out, en)
		}
	}
	return out, nil
}

// writeHeader writes the shebang and shell options shared by all
// generated scripts. The first failing command aborts the run with its
// own exit code.
func writeHeader(b *builder, purpose string) {
	b.line("#!/usr/bin/env bash")
	b.linef("# Generated by treesmith. %s", purpose)
	b.line("set -euo pipefail")
}

// MustCopy reports whether the directory must be a real, writable
// directory at its relpath rather than an alias of its snapshot. Patch
// steps mutate files in place, placeholders are created inside it, and
// a nested directory's mountpoint already exists as a real directory,
// so an alias would either corrupt the snapshot or fail to mount.
func MustCopy(en *compose.Entry) bool {
	return en.Dir.NeedsPrivateCopy() || len(en.Placeholders) > 0 || en.Nested
}

// emitMaterialize writes the lines that put the directory's content at
// its relpath. A directory without a snapshot materializes as an empty
// directory.
func emitMaterialize(b *builder, en *compose.Entry) {
	d := en.Dir

	if d.Src != nil && !MustCopy(en) {
		if parent := path.Dir(en.RelPath); parent != "." {
			b.cmd("mkdir", "-p", parent)
		}
		b.cmd("ln", "-sfn", d.Src.Path, en.RelPath)
		return
	}

	// A leftover alias from a previous run would make cp write through
	// into the snapshot, so clear it before copying.
	rp := b.quote(en.RelPath)
	b.linef("if [ -L %s ]; then rm %s; fi", rp, rp)
	b.cmd("mkdir", "-p", en.RelPath)
	if d.Src != nil {
		b.cmd("cp", "--reflink=auto", "--no-preserve=ownership", "--no-dereference", "-r", d.Src.Path+"/.", en.RelPath+"/")
		b.cmd("chmod", "-R", "u+w", en.RelPath)
	}
}

// emitFileEntries installs copyfile and linkfile entries. Destinations
// are tree-root relative; sources live inside the directory's relpath.
// Both operations overwrite, so reruns converge.
func emitFileEntries(b *builder, en *compose.Entry) {
	for _, dest := range sortedKeys(en.Dir.Copyfiles) {
		src := en.RelPath + "/" + en.Dir.Copyfiles[dest]
		if dir := path.Dir(dest); dir != "." {
			b.cmd("mkdir", "-p", dir)
		}
		b.cmd("cp", "-f", src, dest)
	}
	for _, dest := range sortedKeys(en.Dir.Linkfiles) {
		src := en.RelPath + "/" + en.Dir.Linkfiles[dest]
		if dir := path.Dir(dest); dir != "." {
			b.cmd("mkdir", "-p", dir)
		}
		b.cmd("ln", "-sfn", relativeTarget(path.Dir(dest), src), dest)
	}
}

// validateFileEntries rejects copyfile/linkfile mappings that escape
// the tree, on either end.
func validateFileEntries(name string, entries map[string]string) error {
	for dest, src := range entries {
		if err := paths.ValidateTreePath(dest); err != nil {
			return errors.Wrapf(err, errors.ErrDirInvalid, "directory %s: file entry destination %s", name, dest)
		}
		if err := paths.ValidateTreePath(src); err != nil {
			return errors.Wrapf(err, errors.ErrDirInvalid, "directory %s: file entry source %s", name, src)
		}
	}
	return nil
}

// relativeTarget returns the path of to, relative to fromDir. Both are
// clean, slash separated, tree-root relative paths, so the result can
// be computed lexically.
func relativeTarget(fromDir, to string) string {
	if fromDir == "." {
		return to
	}
	from := strings.Split(fromDir, "/")
	toSegs := strings.Split(to, "/")
	common := 0
	for common < len(from) && common < len(toSegs) && from[common] == toSegs[common] {
		common++
	}
	return strings.Repeat("../", len(from)-common) + strings.Join(toSegs[common:], "/")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
