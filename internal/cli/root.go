// Package cli provides the command-line interface for mcpp.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mcpplang/mcpp/internal/cli/commands"
	"github.com/mcpplang/mcpp/internal/cli/config"
	"github.com/mcpplang/mcpp/internal/cli/output"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store the loaded config in a command's context.
type configKey struct{}

// rendererKey is used to store the output renderer in a command's context.
type rendererKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mcpp",
		Short: "mcpp - a source-to-source compiler for Minecraft datapacks",
		Long: `mcpp compiles a small imperative scripting language into Minecraft
function files, emitting a complete datapack with a scoreboard-backed
variable model.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			// A missing or unparsable MCPP.toml isn't fatal at this point:
			// `new`/`init` don't need one yet, and `build` surfaces its own
			// error when it loads the config itself.
			loaded, _ := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())

			ctx := cmd.Context()
			if loaded != nil {
				ctx = context.WithValue(ctx, configKey{}, loaded)
			}

			verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)

			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
			ctx = context.WithValue(ctx, rendererKey{}, renderer)
			cmd.SetContext(ctx)

			if verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./MCPP.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("project-name", "", "Override the project name for this invocation")
	rootCmd.PersistentFlags().String("mc-version", "", "Override the Minecraft version for this invocation")

	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))
	rootCmd.AddCommand(commands.NewBuildCommand())
	rootCmd.AddCommand(commands.NewNewCommand())
	rootCmd.AddCommand(commands.NewInitCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the loaded project config from the command context,
// if PersistentPreRunE found and loaded one.
func GetConfig(ctx context.Context) *config.ProjectConfig {
	if c, ok := ctx.Value(configKey{}).(*config.ProjectConfig); ok {
		return c
	}
	return nil
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}
