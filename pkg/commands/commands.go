// Package commands provides the high-level command implementations for
// treesmith.
//
// This package is the orchestration layer between the CLI and the
// composition engine. Each command lives in its own subdirectory:
//   - resolve/  - Resolve command (evaluate the directory set)
//   - generate/ - Generate command (write unpack/patch scripts)
//   - list/     - ListDirs command (directory inventory)
//   - snapshot/ - Snapshot command (repo XML import)
//   - internal/ - shared evaluation logic
//
// This file re-exports the command entry points so callers need a
// single import.
package commands

import (
	"github.com/treesmith/treesmith/pkg/commands/generate"
	"github.com/treesmith/treesmith/pkg/commands/list"
	"github.com/treesmith/treesmith/pkg/commands/resolve"
	"github.com/treesmith/treesmith/pkg/commands/snapshot"
)

// Resolve evaluates the configured sources into the final directory set.
type ResolveOptions = resolve.ResolveOptions
type ResolveResult = resolve.ResolveResult

func Resolve(opts ResolveOptions) (*ResolveResult, error) {
	return resolve.Resolve(opts)
}

// Generate writes the unpack and patch scripts for the composition.
type GenerateOptions = generate.GenerateOptions
type GenerateResult = generate.GenerateResult

func Generate(opts GenerateOptions) (*GenerateResult, error) {
	return generate.Generate(opts)
}

// ListDirs reports every directory of the composition.
type ListDirsOptions = list.ListDirsOptions
type ListDirsResult = list.ListDirsResult
type DirInfo = list.DirInfo

func ListDirs(opts ListDirsOptions) (*ListDirsResult, error) {
	return list.ListDirs(opts)
}

// Snapshot imports repo XML manifests into a snapshot file.
type SnapshotOptions = snapshot.SnapshotOptions
type SnapshotResult = snapshot.SnapshotResult

func Snapshot(opts SnapshotOptions) (*SnapshotResult, error) {
	return snapshot.Snapshot(opts)
}
