// Package config loads MCPP.toml and exposes it to the CLI layer.
package config

import (
	sharedcfg "github.com/mcpplang/mcpp/internal/config"
)

// ProjectConfig is an alias for the shared project configuration, so CLI
// code can use config.ProjectConfig without importing internal/config.
type ProjectConfig = sharedcfg.ProjectConfig

// Default configuration values, re-exported from the shared package.
const (
	DefaultSrcDir     = sharedcfg.DefaultSrcDir
	DefaultEntryFile  = sharedcfg.DefaultEntryFile
	DefaultOutDir     = sharedcfg.DefaultOutDir
	DefaultAccuration = sharedcfg.DefaultAccuration
	DefaultOutput     = "auto"
)

// fileNames are the config file names searched for, in priority order.
var fileNames = []string{"MCPP.toml"}
