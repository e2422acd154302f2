// Package filesystem implements the types.FS surface composition reads
// inputs and writes artifacts through: one implementation backed by the
// real OS, one backed by an afero filesystem for tests.
package filesystem
