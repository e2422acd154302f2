// Package artifacts writes generated files to the output directory.
//
// Script and snapshot text is produced by pure code elsewhere; this
// package is the single place where those bytes touch disk. Writes go
// through a synthfs pipeline so they validate before executing, and a
// dry-run writer logs what would be written without touching anything.
// Every target path must stay inside the writer's output directory.
package artifacts
