// Package compose is the source-tree composition engine. It resolves
// manifest sources into a directory set, applies ordered overrides,
// filters by group tags, and derives the mountpoints needed when one
// directory nests inside another.
//
// Evaluation is a pure computation: it reads manifests and lockfiles,
// produces a Composition, and never touches the destination tree. The
// script package turns a Composition into executable artifacts.
package compose
