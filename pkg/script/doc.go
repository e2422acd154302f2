// Package script turns an evaluated composition into executable shell
// scripts. It is the last, purely textual stage of the pipeline: no
// filesystem access, no process execution, just deterministic script
// text derived from composition entries.
//
// Two artifacts are produced. The unpack script materializes the whole
// tree: each directory's snapshot is copied or aliased to its relpath,
// patch steps run in place, placeholder mountpoints are created for
// nested directories, and copyfile/linkfile entries are installed. The
// patch script carries only the patch pipeline, one marker line per
// step, so a failing patch can be located and rerun against an already
// unpacked tree.
//
// Scripts are plain bash with fail-fast semantics. The first failing
// step aborts the run and its exit code becomes the script's exit
// code. Given the same composition the generated text is identical
// byte for byte.
package script
