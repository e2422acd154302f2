package list

import (
	"sort"

	"github.com/treesmith/treesmith/pkg/commands/internal"
	"github.com/treesmith/treesmith/pkg/config"
	"github.com/treesmith/treesmith/pkg/logging"
	"github.com/treesmith/treesmith/pkg/types"
)

// ListDirsOptions defines the options for the ListDirs command.
type ListDirsOptions struct {
	// Config is the loaded workspace configuration.
	Config *config.Config

	// RootDir is the directory relative config paths resolve against.
	RootDir string

	// All includes directories the group filter disabled.
	All bool

	// FileSystem reads manifests and lockfiles. Nil means the real
	// filesystem.
	FileSystem types.FS
}

// DirInfo is one directory row: identity, tags and enablement.
type DirInfo struct {
	Name    string
	RelPath string
	Groups  []string
	Enabled bool
}

// ListDirsResult carries the directory rows in name order.
type ListDirsResult struct {
	Branch string
	Dirs   []DirInfo
}

// ListDirs evaluates the composition and reports every directory it
// knows about, enabled or, with All, also disabled.
func ListDirs(opts ListDirsOptions) (*ListDirsResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "ListDirs").Bool("all", opts.All).Msg("Executing command")

	comp, err := internal.Evaluate(internal.EvalOptions{
		Config:     opts.Config,
		RootDir:    opts.RootDir,
		FileSystem: opts.FileSystem,
	})
	if err != nil {
		return nil, err
	}

	enabled := make(map[string]bool, len(comp.Entries))
	for _, en := range comp.Entries {
		enabled[en.Dir.Name] = true
	}

	result := &ListDirsResult{Branch: comp.Branch}
	for name, d := range comp.Dirs {
		if !enabled[name] && !opts.All {
			continue
		}
		result.Dirs = append(result.Dirs, DirInfo{
			Name:    name,
			RelPath: d.EffectiveRelPath(),
			Groups:  append([]string(nil), d.Groups...),
			Enabled: enabled[name],
		})
	}
	sort.Slice(result.Dirs, func(i, j int) bool {
		return result.Dirs[i].Name < result.Dirs[j].Name
	})

	log.Info().
		Str("command", "ListDirs").
		Int("dirCount", len(result.Dirs)).
		Msg("Command finished")
	return result, nil
}
