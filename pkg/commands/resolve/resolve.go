package resolve

import (
	"github.com/treesmith/treesmith/pkg/commands/internal"
	"github.com/treesmith/treesmith/pkg/compose"
	"github.com/treesmith/treesmith/pkg/config"
	"github.com/treesmith/treesmith/pkg/logging"
	"github.com/treesmith/treesmith/pkg/types"
)

// ResolveOptions defines the options for the Resolve command.
type ResolveOptions struct {
	// Config is the loaded workspace configuration.
	Config *config.Config

	// RootDir is the directory relative config paths resolve against.
	RootDir string

	// FileSystem reads manifests and lockfiles. Nil means the real
	// filesystem.
	FileSystem types.FS
}

// ResolveResult carries the evaluated composition.
type ResolveResult struct {
	Composition *compose.Composition
}

// Resolve evaluates the configured sources, overrides and group filters
// into the final directory set without writing anything.
func Resolve(opts ResolveOptions) (*ResolveResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Resolve").Str("branch", opts.Config.Branch).Msg("Executing command")

	comp, err := internal.Evaluate(internal.EvalOptions{
		Config:     opts.Config,
		RootDir:    opts.RootDir,
		FileSystem: opts.FileSystem,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("command", "Resolve").
		Str("branch", comp.Branch).
		Int("enabled", len(comp.Entries)).
		Msg("Command finished")
	return &ResolveResult{Composition: comp}, nil
}
