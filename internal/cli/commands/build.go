package commands

import (
	"fmt"
	"os"
	"path/filepath"

	clicfg "github.com/mcpplang/mcpp/internal/cli/config"
	"github.com/mcpplang/mcpp/internal/cli/output"
	"github.com/mcpplang/mcpp/internal/config"
	"github.com/mcpplang/mcpp/pkg/datapack"
	"github.com/mcpplang/mcpp/pkg/mcfunction"
	"github.com/mcpplang/mcpp/pkg/scoreboard"
	"github.com/mcpplang/mcpp/pkg/sentence"
	"github.com/spf13/cobra"
)

// NewBuildCommand creates the build command: it parses a project's entry
// file, compiles it into a function tree, and emits a datapack under
// OutDir/ProjectName.
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Compile an MCPP project into a Minecraft datapack",
		Long: `Build parses src/main.mcpp (or the entry file configured in
MCPP.toml), compiles it into Minecraft function files, and writes a
complete datapack under target/<project_name>/.`,
		Example: `  # Build the project in the current directory
  mcpp build

  # Build a project in another directory
  mcpp build ./my-project`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg, err := clicfg.LoadConfig(filepath.Join(dir, "MCPP.toml"), cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load MCPP.toml: %w", err)
			}

			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
			return runBuild(r, cfg)
		},
	}
	return cmd
}

func runBuild(r *output.Renderer, cfg *config.ProjectConfig) error {
	scoreboard.SetAccuration(cfg.Accuration)

	entryPath := filepath.Join(cfg.SrcDir, cfg.EntryFile)
	source, err := os.ReadFile(entryPath)
	if err != nil {
		return fmt.Errorf("failed to read entry file %s: %w", entryPath, err)
	}

	tree, err := sentence.Parse(string(source))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", entryPath, err)
	}
	// The top-level block is the datapack's implicit main function.
	tree.Name = "main"

	task := mcfunction.NewRootTask(cfg.ProjectName, nil)
	root, err := task.Compile(tree)
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", entryPath, err)
	}

	for _, w := range task.Warnings {
		r.Warning(w)
	}

	if err := datapack.Write(cfg.OutDir, cfg.ProjectName, describeProject(cfg), root); err != nil {
		return fmt.Errorf("failed to write datapack: %w", err)
	}

	r.StatusLine(filepath.Join(cfg.OutDir, cfg.ProjectName, "pack.mcmeta"), "success", "")
	countFunctions(r, cfg.OutDir, cfg.ProjectName, root)
	r.Println("")
	r.Success(fmt.Sprintf("compiled %s into %s", entryPath, filepath.Join(cfg.OutDir, cfg.ProjectName)))
	return nil
}

func describeProject(cfg *config.ProjectConfig) string {
	if cfg.McVersion != "" {
		return fmt.Sprintf("%s (Minecraft %s)", cfg.ProjectName, cfg.McVersion)
	}
	return cfg.ProjectName
}

// countFunctions walks the compiled tree and reports every emitted
// .mcfunction path, mirroring the directory layout datapack.Write produces.
func countFunctions(r *output.Renderer, outDir, projectName string, fn *mcfunction.MCFunction) {
	base := filepath.Join(outDir, projectName, "data", projectName, "function")
	var walk func(*mcfunction.MCFunction)
	walk = func(f *mcfunction.MCFunction) {
		path := filepath.Join(append(append([]string{base}, f.Scope...), f.Name+".mcfunction")...)
		r.StatusLine(path, "success", "")
		for _, child := range f.Children {
			walk(child)
		}
	}
	walk(fn)
}
