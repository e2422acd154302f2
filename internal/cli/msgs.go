package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort     = "Compose a multi-repository source tree"
	MsgResolveShort  = "Evaluate the directory set without writing anything"
	MsgGenerateShort = "Write the unpack and patch scripts"
	MsgListShort     = "List directories with their groups and enablement"
	MsgSnapshotShort = "Import repo XML manifests into a snapshot file"
	MsgInitShort     = "Write a starter treesmith.toml"
	MsgVersionShort  = "Print version information"
	MsgVersionLong   = "Print detailed version information including commit hash and build date"
	MsgTopicsShort   = "List available help topics"
	MsgTopicsLong    = "Display all available documentation topics that can be viewed with 'treesmith help <topic>'"

	// Version output
	MsgVersionFormat = "treesmith version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun       = "Preview changes without writing anything"
	MsgFlagConfig       = "Config file to use instead of probing the working directory"
	MsgFlagFormat       = "Output format (auto, term, text, json)"
	MsgFlagUnder        = "Restrict generation to one relpath prefix (debug layout)"
	MsgFlagAll          = "Include directories disabled by group filtering"
	MsgFlagRepo         = "Manifest repository checkout to import from"
	MsgFlagURL          = "Fetch URL of the manifest repository itself"
	MsgFlagBranch       = "Branch to import, as NAME or NAME=FILE (repeatable)"
	MsgFlagManifestFile = "Manifest file read for plain branch specs"
	MsgFlagOutput       = "Snapshot file to write"
	MsgFlagLockfile     = "Also write a skeleton lockfile with unpinned entries"
	MsgFlagOutputDir    = "Directory for generated scripts, overriding output_dir"
)

// Long messages (multi-line)
const (
	MsgRootLong = `treesmith assembles a large multi-repository source tree into one
coherent filesystem hierarchy. It resolves manifest snapshots against
lockfiles, filters directories by group tags, detects nesting between
directories, and emits deterministic shell scripts that materialize and
patch the tree.`

	MsgResolveLong = `Resolve evaluates the configured manifest sources, applies per-directory
overrides and group filters, and prints the resulting directory set. No
files are written; use it to inspect what generate would act on.`

	MsgResolveExample = `  # Show the composition for the configured branch
  treesmith resolve

  # Machine-readable form
  treesmith resolve --format json`

	MsgGenerateLong = `Generate evaluates the composition and writes the unpack and patch
scripts into the configured output directory. The unpack script
materializes the full tree; the patch script reapplies patch pipelines
to an already unpacked tree.

With --under, generation is restricted to one relpath prefix and the
scripts switch to a debug layout: unpack materializes raw content and
every patch step moves to the patch script, so a failing patch can be
rerun and inspected in place.`

	MsgGenerateExample = `  # Write unpack.sh and patch.sh
  treesmith generate

  # Preview without writing
  treesmith generate --dry-run

  # Debug scripts for one subtree
  treesmith generate --under vendor/x`

	MsgListLong = `List prints every directory of the composition with its groups and
enablement. By default only enabled directories are shown; --all also
includes directories excluded by group filtering.`

	MsgListExample = `  # Enabled directories
  treesmith list

  # Everything, including group-disabled directories
  treesmith list --all`

	MsgSnapshotLong = `Snapshot reads git-repo style XML manifests from a repository checkout
and writes a manifest snapshot: a deterministic, path-sorted JSON file
the resolve and generate commands consume.

Each --branch records the manifest's projects under that branch name.
A spec of the form NAME=FILE reads FILE instead of the default
manifest, for repositories that keep several branch manifests side by
side.`

	MsgSnapshotExample = `  # Snapshot one branch
  treesmith snapshot --repo ./manifest --url https://example.com/org/manifest \
    --branch main -o platform.json

  # Two branches from files kept side by side, plus a lockfile skeleton
  treesmith snapshot --repo ./manifest --url https://example.com/org/manifest \
    --branch main --branch legacy=legacy.xml -o platform.json \
    --lockfile platform.lock.json`

	MsgInitLong = `Init writes a commented starter configuration to the workspace root.
Uncomment and edit the values to set the branch and point at your
manifest sources. Nothing is written if a configuration file already
exists.`

	MsgInitExample = `  # Write treesmith.toml into the workspace root
  treesmith init

  # Preview the starter content instead of writing it
  treesmith init --dry-run`
)
