package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in a command's context. Shared with
// internal/cli via LoggerKey so the two packages never need to import one
// another just to agree on a key type.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree project
// discovery walks before giving up.
const maxUpwardSearchLevels = 10

var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *ProjectConfig
)

// findConfigFile returns the config file to use: an explicit path if given,
// otherwise MCPP.toml if it exists in the current directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range fileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// configExistsIn reports whether dir contains an MCPP.toml.
func configExistsIn(dir string) bool {
	for _, name := range fileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// findProjectRootUpward searches upward from startDir for a directory
// containing MCPP.toml, bounded by maxUpwardSearchLevels.
func findProjectRootUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// inferProjectRoot determines the project root: the directory holding
// MCPP.toml, found by searching upward from the working directory, or the
// working directory itself if none is found.
func inferProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	if root := findProjectRootUpward(cwd); root != "" {
		return root
	}
	return cwd
}

// ResetConfig resets the package-level koanf instance. Used by tests that
// load configuration more than once in the same process.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads MCPP.toml from cfgFile (or discovered via upward search
// if empty), layering project_name/mc_version overrides from flags on top.
// Precedence (highest to lowest): flags > config file > defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*ProjectConfig, error) {
	k = koanf.New(".")

	projectRoot := inferProjectRoot()
	if cfgFile == "" {
		if candidate := filepath.Join(projectRoot, "MCPP.toml"); configExistsIn(projectRoot) {
			cfgFile = candidate
		}
	} else if absPath, err := filepath.Abs(cfgFile); err == nil {
		// An explicit config file (e.g. from `build <path>`) names its own
		// project root, regardless of the working directory's upward search.
		projectRoot = filepath.Dir(absPath)
	}

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"src_dir":    sharedDefaultSrcDir,
		"entry_file": sharedDefaultEntryFile,
		"out_dir":    sharedDefaultOutDir,
		"accuration": DefaultAccuration,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			switch f.Name {
			case "project-name":
				return "project_name", posflag.FlagVal(flags, f)
			case "mc-version":
				return "mc_version", posflag.FlagVal(flags, f)
			default:
				return "", nil
			}
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg ProjectConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ApplyDefaults()

	if cfg.SrcDir != "" && !filepath.IsAbs(cfg.SrcDir) {
		cfg.SrcDir = filepath.Join(projectRoot, cfg.SrcDir)
	}
	if cfg.OutDir != "" && !filepath.IsAbs(cfg.OutDir) {
		cfg.OutDir = filepath.Join(projectRoot, cfg.OutDir)
	}

	currentConfig = &cfg
	return &cfg, nil
}

// GetConfigFileUsed returns the path of the config file that was loaded, if
// any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the most recently loaded configuration.
func GetCurrentConfig() *ProjectConfig {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger, so that
// internal/cli/commands can read it without importing internal/cli.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from ctx, falling back to a logger that
// discards everything if none was stored.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

const (
	sharedDefaultSrcDir    = DefaultSrcDir
	sharedDefaultEntryFile = DefaultEntryFile
	sharedDefaultOutDir    = DefaultOutDir
)
