// Package cli builds the treesmith command tree.
package cli

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/treesmith/treesmith/internal/version"
	"github.com/treesmith/treesmith/pkg/cobrax/topics"
	"github.com/treesmith/treesmith/pkg/commands"
	"github.com/treesmith/treesmith/pkg/config"
	"github.com/treesmith/treesmith/pkg/logging"
	"github.com/treesmith/treesmith/pkg/paths"
	"github.com/treesmith/treesmith/pkg/ui"
	"github.com/treesmith/treesmith/pkg/ui/display"
)

//go:embed topics
var topicsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		dryRun     bool
		configPath string
		formatName string
	)

	rootCmd := &cobra.Command{
		Use:     "treesmith",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand was provided. Show help but return an error
			// to indicate incorrect usage.
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&formatName, "format", "auto", MsgFlagFormat)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Add all commands
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSnapshotCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help from the embedded docs.
	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".txt", ".md"},
			// Always use Glamour renderer for markdown files
			Renderer: topics.NewGlamourRenderer(),
		}
		_ = topics.InitializeWithOptions(rootCmd, sub, opts)
	}

	return rootCmd
}

// loadConfig loads the workspace configuration: an explicit --config
// file when given, otherwise the workspace root is discovered and
// probed. It returns the directory relative config paths resolve
// against.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	return loadConfigWithOverrides(cmd, nil)
}

// loadConfigWithOverrides is loadConfig with per-command flag values
// merged on top of the file and environment layers.
func loadConfigWithOverrides(cmd *cobra.Command, overrides map[string]interface{}) (*config.Config, string, error) {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")
	if configPath != "" {
		configPath = paths.ExpandHome(configPath)
		cfg, err := config.LoadFileWithOverrides(configPath, overrides)
		if err != nil {
			return nil, "", err
		}
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return nil, "", fmt.Errorf("cannot resolve config path %s: %w", configPath, err)
		}
		config.Initialize(cfg)
		return cfg, filepath.Dir(abs), nil
	}

	p, err := paths.New("")
	if err != nil {
		return nil, "", err
	}
	if p.UsedFallback() {
		log.Debug().Str("root", p.WorkspaceRoot()).Msg("No workspace root found, using working directory")
	}
	cfg, err := config.LoadWithOverrides(p.WorkspaceRoot(), overrides)
	if err != nil {
		return nil, "", err
	}
	config.Initialize(cfg)
	return cfg, p.WorkspaceRoot(), nil
}

// newRenderer builds the output renderer selected by --format.
func newRenderer(cmd *cobra.Command) (ui.Renderer, error) {
	name, _ := cmd.Root().PersistentFlags().GetString("format")
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "resolve",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		Example: MsgResolveExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			cfg, root, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Resolve(commands.ResolveOptions{
				Config:  cfg,
				RootDir: root,
			})
			if err != nil {
				return err
			}

			return renderer.RenderResult(display.NewCompositionView(result.Composition))
		},
	}
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			var overrides map[string]interface{}
			if cmd.Flags().Changed("output") {
				output, _ := cmd.Flags().GetString("output")
				overrides = map[string]interface{}{"output_dir": output}
			}
			cfg, root, err := loadConfigWithOverrides(cmd, overrides)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
			under, _ := cmd.Flags().GetString("under")

			result, err := commands.Generate(commands.GenerateOptions{
				Config:  cfg,
				RootDir: root,
				Under:   under,
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}

			return renderer.RenderResult(&display.GenerateResult{
				Branch:    result.Branch,
				OutputDir: result.OutputDir,
				Artifacts: result.Artifacts,
				DryRun:    result.DryRun,
			})
		},
	}

	cmd.Flags().String("under", "", MsgFlagUnder)
	cmd.Flags().StringP("output", "o", "", MsgFlagOutputDir)

	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			cfg, root, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			all, _ := cmd.Flags().GetBool("all")

			result, err := commands.ListDirs(commands.ListDirsOptions{
				Config:  cfg,
				RootDir: root,
				All:     all,
			})
			if err != nil {
				return err
			}

			view := &display.DirListView{Branch: result.Branch}
			for _, d := range result.Dirs {
				view.Dirs = append(view.Dirs, display.DirItem{
					Name:    d.Name,
					RelPath: d.RelPath,
					Groups:  d.Groups,
					Enabled: d.Enabled,
				})
			}
			return renderer.RenderResult(view)
		},
	}

	cmd.Flags().Bool("all", false, MsgFlagAll)

	return cmd
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshot",
		Short:   MsgSnapshotShort,
		Long:    MsgSnapshotLong,
		Example: MsgSnapshotExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			repo, _ := cmd.Flags().GetString("repo")
			url, _ := cmd.Flags().GetString("url")
			branches, _ := cmd.Flags().GetStringArray("branch")
			manifestFile, _ := cmd.Flags().GetString("manifest-file")
			output, _ := cmd.Flags().GetString("output")
			lockfile, _ := cmd.Flags().GetString("lockfile")

			result, err := commands.Snapshot(commands.SnapshotOptions{
				RepoDir:      repo,
				RootURL:      url,
				Branches:     branches,
				ManifestFile: manifestFile,
				Output:       output,
				Lockfile:     lockfile,
			})
			if err != nil {
				return err
			}

			return renderer.RenderResult(&display.SnapshotResult{
				Output:   result.Output,
				Lockfile: result.Lockfile,
				Branches: result.Branches,
				Projects: result.Projects,
			})
		},
	}

	cmd.Flags().String("repo", "", MsgFlagRepo)
	cmd.Flags().String("url", "", MsgFlagURL)
	cmd.Flags().StringArray("branch", nil, MsgFlagBranch)
	cmd.Flags().String("manifest-file", "", MsgFlagManifestFile)
	cmd.Flags().StringP("output", "o", "", MsgFlagOutput)
	cmd.Flags().String("lockfile", "", MsgFlagLockfile)
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("branch")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New("")
			if err != nil {
				return err
			}

			content, err := config.GenerateConfigContent()
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			// Both probed config file names count as existing config.
			for _, name := range []string{"." + paths.ConfigFileName, paths.ConfigFileName} {
				existing := filepath.Join(p.WorkspaceRoot(), name)
				if _, err := os.Stat(existing); err == nil {
					return fmt.Errorf("%s already exists", existing)
				}
			}

			target := filepath.Join(p.WorkspaceRoot(), paths.ConfigFileName)
			if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion script",
		Long:                  "Generate a completion script for the given shell and print it to stdout.",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
