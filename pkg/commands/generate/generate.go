package generate

import (
	"strings"

	"github.com/treesmith/treesmith/pkg/artifacts"
	"github.com/treesmith/treesmith/pkg/commands/internal"
	"github.com/treesmith/treesmith/pkg/compose"
	"github.com/treesmith/treesmith/pkg/config"
	"github.com/treesmith/treesmith/pkg/errors"
	"github.com/treesmith/treesmith/pkg/filesystem"
	"github.com/treesmith/treesmith/pkg/logging"
	"github.com/treesmith/treesmith/pkg/script"
	"github.com/treesmith/treesmith/pkg/types"
)

// Default artifact names. Restricting generation to a prefix switches
// to slugged names so debug scripts never clobber the full ones.
const (
	UnpackScriptName = "unpack.sh"
	PatchScriptName  = "patch.sh"
)

// GenerateOptions defines the options for the Generate command.
type GenerateOptions struct {
	// Config is the loaded workspace configuration.
	Config *config.Config

	// RootDir is the directory relative config paths resolve against.
	RootDir string

	// Under restricts generation to one relpath prefix and switches to
	// the debug script layout.
	Under string

	// DryRun logs the artifacts instead of writing them.
	DryRun bool

	// FileSystem reads manifests, lockfiles and patch files. Nil means
	// the real filesystem.
	FileSystem types.FS
}

// GenerateResult reports what was (or would have been) written.
type GenerateResult struct {
	Branch    string
	OutputDir string
	Artifacts []string
	DryRun    bool
}

// Generate evaluates the composition and writes the unpack and patch
// scripts into the configured output directory.
func Generate(opts GenerateOptions) (*GenerateResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().
		Str("command", "Generate").
		Str("under", opts.Under).
		Bool("dryRun", opts.DryRun).
		Msg("Executing command")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	comp, err := internal.Evaluate(internal.EvalOptions{
		Config:     opts.Config,
		RootDir:    opts.RootDir,
		FileSystem: fs,
	})
	if err != nil {
		return nil, err
	}

	if err := verifyPatchFiles(fs, comp, opts.Under); err != nil {
		return nil, err
	}

	gen := &script.Generator{Under: opts.Under}
	unpack, err := gen.UnpackScript(comp)
	if err != nil {
		return nil, err
	}
	patch, err := gen.PatchScript(comp)
	if err != nil {
		return nil, err
	}

	unpackName, patchName := scriptNames(opts.Under)
	outputDir := internal.ResolveAgainst(opts.RootDir, opts.Config.OutputDir)

	writer := artifacts.NewWriter(outputDir, opts.DryRun)
	err = writer.Write([]artifacts.Artifact{
		{Name: unpackName, Content: []byte(unpack), Mode: 0755},
		{Name: patchName, Content: []byte(patch), Mode: 0755},
	})
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Branch:    comp.Branch,
		OutputDir: outputDir,
		Artifacts: []string{unpackName, patchName},
		DryRun:    opts.DryRun,
	}

	log.Info().
		Str("command", "Generate").
		Str("outputDir", outputDir).
		Strs("artifacts", result.Artifacts).
		Bool("dryRun", opts.DryRun).
		Msg("Command finished")
	return result, nil
}

// scriptNames returns the artifact names for a generation run. A prefix
// run gets the prefix, slashes flattened, embedded in the names.
func scriptNames(under string) (string, string) {
	if under == "" {
		return UnpackScriptName, PatchScriptName
	}
	slug := strings.ReplaceAll(under, "/", "-")
	return "unpack-" + slug + ".sh", "patch-" + slug + ".sh"
}

// verifyPatchFiles stats every patch file the emitted scripts will
// reference. A missing file would only surface when the script runs,
// far from the configuration mistake that caused it.
func verifyPatchFiles(fs types.FS, comp *compose.Composition, under string) error {
	for _, en := range comp.Entries {
		if !inScope(en.RelPath, under) {
			continue
		}
		for _, p := range en.Dir.Patches {
			if _, err := fs.Stat(p); err != nil {
				return errors.Wrapf(err, errors.ErrPatchInvalid,
					"directory %s references missing patch %s", en.Dir.Name, p)
			}
		}
		for _, p := range en.Dir.GitPatches {
			if _, err := fs.Stat(p); err != nil {
				return errors.Wrapf(err, errors.ErrPatchInvalid,
					"directory %s references missing git patch %s", en.Dir.Name, p)
			}
		}
	}
	return nil
}

// inScope mirrors the generator's prefix filter.
func inScope(relpath, under string) bool {
	if under == "" {
		return true
	}
	return relpath == under || strings.HasPrefix(relpath, under+"/")
}
