// Package types defines the core types and interfaces used throughout
// treesmith. This includes the Directory, Project and SourceRef data
// structures that model the composed source tree, as well as the FS
// interface abstracting filesystem access.
package types
