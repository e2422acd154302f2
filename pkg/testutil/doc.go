// Package testutil provides fixture helpers shared by treesmith tests.
//
// Most tests run against an in-memory filesystem seeded from inline
// fixture maps. Only the artifact writer and the CLI integration tests
// touch a real temporary directory, through CreateFile and CreateDir.
package testutil
