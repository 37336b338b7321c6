package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcpplang/mcpp/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewNewCommand creates the `new` command, which scaffolds a fresh MCPP
// project directory.
func NewNewCommand() *cobra.Command {
	var force bool
	var testWorld string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Scaffold a new MCPP project",
		Long: `Scaffold a new MCPP project with a default directory structure
and configuration.

This creates:
  - MCPP.toml project configuration
  - src/main.mcpp entry file
  - .gitignore`,
		Example: `  # Scaffold a project in ./my-project
  mcpp new my-project

  # Force overwrite an existing project
  mcpp new my-project --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
			return scaffoldProject(r, dir, filepath.Base(dir), force, testWorld)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing MCPP.toml")
	cmd.Flags().StringVar(&testWorld, "test-world", "", "World name recorded in MCPP.toml for local testing")

	return cmd
}

// NewInitCommand creates the `init` command, which scaffolds the current
// directory as an MCPP project, reusing the `new` scaffolding logic with
// the directory's own name as the project name.
func NewInitCommand() *cobra.Command {
	var force bool
	var testWorld string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the current directory as an MCPP project",
		Long:  `Initialize the current directory as an MCPP project, equivalent to running "new" with the current directory's name.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to determine working directory: %w", err)
			}
			name := filepath.Base(wd)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
			return scaffoldProject(r, ".", name, force, testWorld)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing MCPP.toml")
	cmd.Flags().StringVar(&testWorld, "test-world", "", "World name recorded in MCPP.toml for local testing")

	return cmd
}

func scaffoldProject(r *output.Renderer, dir, projectName string, force bool, testWorld string) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "MCPP.toml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("MCPP.toml already exists. Use --force to overwrite")
	}

	srcDir := filepath.Join(dir, "src")
	if err := os.MkdirAll(srcDir, 0750); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", srcDir, err)
	}
	r.StatusLine(srcDir+"/", "success", "")

	if err := os.WriteFile(configPath, []byte(projectConfigTemplate(projectName, testWorld)), 0600); err != nil {
		return fmt.Errorf("failed to create MCPP.toml: %w", err)
	}
	r.StatusLine("MCPP.toml", "success", "")

	entryPath := filepath.Join(srcDir, "main.mcpp")
	if _, err := os.Stat(entryPath); os.IsNotExist(err) || force {
		if err := os.WriteFile(entryPath, []byte(exampleEntryFile), 0600); err != nil {
			return fmt.Errorf("failed to create example entry file: %w", err)
		}
		r.StatusLine(filepath.Join("src", "main.mcpp"), "success", "")
	}

	gitignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitignorePath); os.IsNotExist(err) || force {
		if err := os.WriteFile(gitignorePath, []byte(gitignoreContent), 0600); err != nil {
			r.Warning(fmt.Sprintf("failed to create .gitignore: %v", err))
		} else {
			r.StatusLine(".gitignore", "success", "")
		}
	}

	r.Println("")
	r.Success("MCPP project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Edit src/main.mcpp")
	r.Println("  2. Run 'mcpp build' to compile it into a datapack")

	return nil
}

func projectConfigTemplate(projectName, testWorld string) string {
	return fmt.Sprintf(`project_name = %q
mc_version = "1.21"
test_world = %q
src_dir = "src"
entry_file = "main.mcpp"
out_dir = "target"
`, projectName, testWorld)
}

const exampleEntryFile = `{
    counter:int = 0;
    counter = counter + 1;
}
`

const gitignoreContent = `# MCPP
target/

# OS
.DS_Store
Thumbs.db
`
